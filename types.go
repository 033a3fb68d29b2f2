/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

import "io"

// Operation is the I/O direction an identifier is being asked about.
type Operation string

const (
	// OperationRead marks identification on behalf of a read dispatch.
	OperationRead Operation = "read"
	// OperationWrite marks identification on behalf of a write dispatch.
	OperationWrite Operation = "write"
)

// FormatKey identifies a registry entry: a format name bound to a data class.
// Two keys are equal iff both components match exactly; no normalization is
// applied to the format name.
type FormatKey struct {
	Format string
	Class  *DataClass
}

// String returns a human-readable "format/Class" representation.
func (k FormatKey) String() string {
	return k.Format + "/" + k.Class.Name()
}

// Identifier is a predicate reporting whether the given input looks like the
// format it is registered under, for the given operation. path is empty when
// no path-like argument was supplied; fileobj is nil when no open stream is
// available. args carries the dispatch arguments unmodified. Identifiers must
// tolerate empty and nil inputs; the registry rewinds a seekable fileobj
// before each call but identifiers that consume it should restore the offset
// for the reader that runs after them.
type Identifier func(op Operation, path string, fileobj io.Reader, args []any) bool

// Reader constructs a value from the dispatch arguments. The returned value
// is handed back to the caller unmodified; the registry performs no type
// checking on it.
type Reader func(args ...any) (any, error)

// Writer serializes data. Most writers return a nil result, but a non-nil
// result is permitted and propagated to the caller unmodified.
type Writer func(data Data, args ...any) (any, error)

// FormatRow describes one registered format for a data class, as returned by
// Formats and consumed by doc updaters.
type FormatRow struct {
	Format        string
	Class         *DataClass
	HasReader     bool
	HasWriter     bool
	HasIdentifier bool
	Deprecated    bool
}

// Registry is the capability shared by all registry variants: identifier
// bookkeeping, format identification and documentation upkeep. It performs
// no dispatch on its own.
type Registry interface {
	RegisterIdentifier(format string, cls *DataClass, fn Identifier, opts ...RegisterOption) error
	UnregisterIdentifier(format string, cls *DataClass) error
	HasIdentifier(format string, cls *DataClass) bool
	IdentifyFormat(op Operation, cls *DataClass, path string, fileobj io.Reader, args []any) []string
	Formats(cls *DataClass) []FormatRow
	DelayDocUpdates(cls *DataClass, fn func() error) error
}

// ReadRegistry is a registry that supports the input side.
type ReadRegistry interface {
	Registry
	RegisterReader(format string, cls *DataClass, fn Reader, opts ...RegisterOption) error
	UnregisterReader(format string, cls *DataClass) error
	HasReader(format string, cls *DataClass) bool
	GetReader(format string, cls *DataClass) (Reader, error)
	Read(cls *DataClass, args []any, opts ...DispatchOption) (any, error)
}

// WriteRegistry is a registry that supports the output side.
type WriteRegistry interface {
	Registry
	RegisterWriter(format string, cls *DataClass, fn Writer, opts ...RegisterOption) error
	UnregisterWriter(format string, cls *DataClass) error
	HasWriter(format string, cls *DataClass) bool
	GetWriter(format string, cls *DataClass) (Writer, error)
	Write(data Data, args []any, opts ...DispatchOption) (any, error)
}

// ReadWriteRegistry supports both sides.
type ReadWriteRegistry interface {
	ReadRegistry
	WriteRegistry
}
