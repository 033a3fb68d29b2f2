/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

import "io"

// outputSide implements the write capability over a shared core. It is
// embedded by OutputRegistry and IORegistry.
type outputSide struct {
	c       *core
	writers handlerTable[Writer]
}

func newOutputSide(c *core) outputSide {
	return outputSide{c: c, writers: newHandlerTable[Writer]("writer")}
}

// RegisterWriter registers a writer for (format, cls). The writer is stored
// with the priority from WithPriority (default 0). Unless Force is given,
// registering over an existing entry is an error.
func (s *outputSide) RegisterWriter(format string, cls *DataClass, fn Writer, opts ...RegisterOption) error {
	o := applyRegisterOptions(opts)
	key := FormatKey{Format: format, Class: cls}

	s.c.mu.Lock()
	err := s.writers.register(key, fn, o)
	s.c.mu.Unlock()
	if err != nil {
		return err
	}

	s.c.notify(cls)
	return nil
}

// UnregisterWriter removes the writer for the exact key. An absent key is an
// error. Unregistration is retained for compatibility with self-registering
// format packages and emits a warning.
func (s *outputSide) UnregisterWriter(format string, cls *DataClass) error {
	key := FormatKey{Format: format, Class: cls}

	s.c.mu.Lock()
	err := s.writers.unregister(key)
	s.c.mu.Unlock()
	if err != nil {
		return err
	}

	warnf("unregistering writer for format '%s' and class '%s'; unregistration is retained for compatibility and may be removed", format, cls.Name())
	s.c.notify(cls)
	return nil
}

// HasWriter reports whether a writer is registered for the exact key, without
// walking the ancestry.
func (s *outputSide) HasWriter(format string, cls *DataClass) bool {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return s.writers.has(FormatKey{Format: format, Class: cls})
}

// GetWriter resolves the writer for format and cls, walking the class
// ancestry nearest-first. It returns a NotDefinedError when no ancestor has
// one registered.
func (s *outputSide) GetWriter(format string, cls *DataClass) (Writer, error) {
	s.c.mu.RLock()
	empty := len(s.writers.entries) == 0
	fn, err := s.writers.resolve(format, cls)
	s.c.mu.RUnlock()

	if empty {
		warnf("writer lookup on a registry with no writers; register formats before dispatching")
	}
	return fn, err
}

// Write dispatches a write of data, resolving handlers by the dynamic class
// of the value. When no explicit format is given the destination is
// identified from the arguments: a leading string is treated as a path, a
// leading readable stream as the file object. The writer's return value is
// propagated unmodified; most writers return nil.
func (s *outputSide) Write(data Data, args []any, opts ...DispatchOption) (any, error) {
	cls := data.Class()
	o := applyDispatchOptions(opts)
	format := o.format

	if format == "" {
		path, fileobj := splitWriteInput(args)
		candidates := s.c.IdentifyFormat(OperationWrite, cls, path, fileobj, args)

		var err error
		s.c.mu.RLock()
		format, err = bestFormat(&s.writers, cls, candidates)
		s.c.mu.RUnlock()
		if err != nil {
			return nil, err
		}
	}

	fn, err := s.GetWriter(format, cls)
	if err != nil {
		return nil, err
	}
	return fn(data, args...)
}

// splitWriteInput extracts the path and file object for identification. The
// destination is never opened or created here; writers own that.
func splitWriteInput(args []any) (path string, fileobj io.Reader) {
	if len(args) == 0 {
		return "", nil
	}
	switch first := args[0].(type) {
	case string:
		return first, nil
	case io.Reader:
		return "", first
	default:
		return "", nil
	}
}

// OutputRegistry is an output-only registry: identifiers plus writers.
type OutputRegistry struct {
	core
	outputSide
}

// NewOutputRegistry creates an empty output-only registry.
func NewOutputRegistry() *OutputRegistry {
	r := &OutputRegistry{}
	r.core.init(r)
	r.outputSide = newOutputSide(&r.core)
	return r
}

// Formats lists the registered formats, optionally restricted to cls and its
// ancestry. Rows are ordered by class name, then format name.
func (r *OutputRegistry) Formats(cls *DataClass) []FormatRow {
	return r.formatRows(cls, nil, &r.writers)
}

var _ WriteRegistry = (*OutputRegistry)(nil)
