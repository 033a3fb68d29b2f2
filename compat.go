/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

import "io"

// The process-wide default registry. It is constructed once at package
// initialization and never replaced; format packages populate it from their
// init functions. Tests that mutate it must restore its prior contents, as
// no automatic isolation exists.
var defaultRegistry = NewIORegistry()

// Default returns the process-wide default registry.
func Default() *IORegistry { return defaultRegistry }

// The free functions below mirror every registry operation. Each takes the
// target registry as its first argument; nil means the default registry.
// Data types implement their read/write methods as thin delegations to these
// functions, so type authors do not subclass or reimplement registries.

// RegisterIdentifier registers an identifier with reg, or the default
// registry when reg is nil.
func RegisterIdentifier(reg Registry, format string, cls *DataClass, fn Identifier, opts ...RegisterOption) error {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.RegisterIdentifier(format, cls, fn, opts...)
}

// UnregisterIdentifier removes an identifier from reg, or the default
// registry when reg is nil.
func UnregisterIdentifier(reg Registry, format string, cls *DataClass) error {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.UnregisterIdentifier(format, cls)
}

// IdentifyFormat runs format identification against reg, or the default
// registry when reg is nil.
func IdentifyFormat(reg Registry, op Operation, cls *DataClass, path string, fileobj io.Reader, args []any) []string {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.IdentifyFormat(op, cls, path, fileobj, args)
}

// Formats lists registered formats from reg, or the default registry when
// reg is nil.
func Formats(reg Registry, cls *DataClass) []FormatRow {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.Formats(cls)
}

// DelayDocUpdates suspends documentation updates for cls on reg, or the
// default registry when reg is nil, while fn runs.
func DelayDocUpdates(reg Registry, cls *DataClass, fn func() error) error {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.DelayDocUpdates(cls, fn)
}

// RegisterReader registers a reader with reg, or the default registry when
// reg is nil.
func RegisterReader(reg ReadRegistry, format string, cls *DataClass, fn Reader, opts ...RegisterOption) error {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.RegisterReader(format, cls, fn, opts...)
}

// UnregisterReader removes a reader from reg, or the default registry when
// reg is nil.
func UnregisterReader(reg ReadRegistry, format string, cls *DataClass) error {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.UnregisterReader(format, cls)
}

// GetReader resolves a reader from reg, or the default registry when reg is
// nil.
func GetReader(reg ReadRegistry, format string, cls *DataClass) (Reader, error) {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.GetReader(format, cls)
}

// Read dispatches a read through reg, or the default registry when reg is
// nil.
func Read(reg ReadRegistry, cls *DataClass, args []any, opts ...DispatchOption) (any, error) {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.Read(cls, args, opts...)
}

// RegisterWriter registers a writer with reg, or the default registry when
// reg is nil.
func RegisterWriter(reg WriteRegistry, format string, cls *DataClass, fn Writer, opts ...RegisterOption) error {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.RegisterWriter(format, cls, fn, opts...)
}

// UnregisterWriter removes a writer from reg, or the default registry when
// reg is nil.
func UnregisterWriter(reg WriteRegistry, format string, cls *DataClass) error {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.UnregisterWriter(format, cls)
}

// GetWriter resolves a writer from reg, or the default registry when reg is
// nil.
func GetWriter(reg WriteRegistry, format string, cls *DataClass) (Writer, error) {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.GetWriter(format, cls)
}

// Write dispatches a write through reg, or the default registry when reg is
// nil.
func Write(reg WriteRegistry, data Data, args []any, opts ...DispatchOption) (any, error) {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.Write(data, args, opts...)
}
