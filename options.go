/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

// RegisterOption modifies per-entry registration parameters.
type RegisterOption func(*regOptions)

type regOptions struct {
	priority   int
	force      bool
	deprecated bool
}

// WithPriority sets the handler priority. When several formats identify the
// same input, the handler registered with the highest priority wins. The
// default priority is 0. Priority is ignored for identifier registration.
func WithPriority(priority int) RegisterOption {
	return func(o *regOptions) { o.priority = priority }
}

// Force allows a registration to replace an existing entry for the same
// (format, class) key. Without it, duplicate registration is an error.
func Force() RegisterOption {
	return func(o *regOptions) { o.force = true }
}

// Deprecated marks the format as deprecated for this class. The flag only
// surfaces in format listings and generated documentation; dispatch is
// unaffected.
func Deprecated() RegisterOption {
	return func(o *regOptions) { o.deprecated = true }
}

// DispatchOption modifies a single Read or Write call.
type DispatchOption func(*dispatchOptions)

type dispatchOptions struct {
	format string
}

// WithFormat bypasses automatic format identification and dispatches to the
// named format directly.
func WithFormat(format string) DispatchOption {
	return func(o *dispatchOptions) { o.format = format }
}

func applyRegisterOptions(opts []RegisterOption) regOptions {
	var o regOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func applyDispatchOptions(opts []DispatchOption) dispatchOptions {
	var o dispatchOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
