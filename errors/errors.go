/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrAlreadyDefined is returned when registering a key that is already taken
	ErrAlreadyDefined = errors.New("already defined")

	// ErrNotDefined is returned when looking up or unregistering an absent key
	ErrNotDefined = errors.New("not defined")

	// ErrUnknownFormat is returned when automatic identification finds no format
	ErrUnknownFormat = errors.New("format could not be identified")

	// ErrAmbiguousFormat is returned when automatic identification finds more
	// than one equally ranked format
	ErrAmbiguousFormat = errors.New("format is ambiguous")
)

// AlreadyDefinedError reports a duplicate registration for a (format, class) key.
// Kind is the entry kind: "identifier", "reader" or "writer".
type AlreadyDefinedError struct {
	Kind   string
	Format string
	Class  string
}

func (e *AlreadyDefinedError) Error() string {
	return fmt.Sprintf("%s for format '%s' and class '%s' is already defined",
		capitalize(e.Kind), e.Format, e.Class)
}

func (e *AlreadyDefinedError) Is(target error) bool {
	return target == ErrAlreadyDefined
}

// NotDefinedError reports a lookup or unregistration for an absent (format, class) key.
type NotDefinedError struct {
	Kind   string
	Format string
	Class  string
}

func (e *NotDefinedError) Error() string {
	return fmt.Sprintf("No %s defined for format '%s' and class '%s'",
		strings.ToLower(e.Kind), e.Format, e.Class)
}

func (e *NotDefinedError) Is(target error) bool {
	return target == ErrNotDefined
}

// UnknownFormatError reports that no registered identifier claimed the input.
type UnknownFormatError struct{}

func (e *UnknownFormatError) Error() string {
	return "Format could not be identified based on the file name or contents, " +
		"please provide a 'format' argument."
}

func (e *UnknownFormatError) Is(target error) bool {
	return target == ErrUnknownFormat
}

// AmbiguousFormatError reports that several equally ranked formats claimed the
// input. Options are listed in the order they were discovered.
type AmbiguousFormatError struct {
	Options []string
}

func (e *AmbiguousFormatError) Error() string {
	return fmt.Sprintf("Format is ambiguous - options are: %s", strings.Join(e.Options, ", "))
}

func (e *AmbiguousFormatError) Is(target error) bool {
	return target == ErrAmbiguousFormat
}

// Helper functions for creating errors

// NewAlreadyDefinedError creates a new AlreadyDefinedError
func NewAlreadyDefinedError(kind, format, class string) error {
	return &AlreadyDefinedError{Kind: kind, Format: format, Class: class}
}

// NewNotDefinedError creates a new NotDefinedError
func NewNotDefinedError(kind, format, class string) error {
	return &NotDefinedError{Kind: kind, Format: format, Class: class}
}

// NewUnknownFormatError creates a new UnknownFormatError
func NewUnknownFormatError() error {
	return &UnknownFormatError{}
}

// NewAmbiguousFormatError creates a new AmbiguousFormatError
func NewAmbiguousFormatError(options []string) error {
	return &AmbiguousFormatError{Options: options}
}

// IsAlreadyDefined checks if an error is a duplicate registration error
func IsAlreadyDefined(err error) bool {
	return errors.Is(err, ErrAlreadyDefined)
}

// IsNotDefined checks if an error is an absent key error
func IsNotDefined(err error) bool {
	return errors.Is(err, ErrNotDefined)
}

// IsUnknownFormat checks if an error is an unidentified format error
func IsUnknownFormat(err error) bool {
	return errors.Is(err, ErrUnknownFormat)
}

// IsAmbiguousFormat checks if an error is an ambiguous format error
func IsAmbiguousFormat(err error) bool {
	return errors.Is(err, ErrAmbiguousFormat)
}

// IsRegistryError checks if an error originated from the registry rather than
// from a reader, writer or identifier callback.
func IsRegistryError(err error) bool {
	return IsAlreadyDefined(err) || IsNotDefined(err) ||
		IsUnknownFormat(err) || IsAmbiguousFormat(err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
