/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

import (
	"io"
	"os"
)

// inputSide implements the read capability over a shared core. It is embedded
// by InputRegistry and IORegistry.
type inputSide struct {
	c       *core
	readers handlerTable[Reader]
}

func newInputSide(c *core) inputSide {
	return inputSide{c: c, readers: newHandlerTable[Reader]("reader")}
}

// RegisterReader registers a reader for (format, cls). The reader is stored
// with the priority from WithPriority (default 0). Unless Force is given,
// registering over an existing entry is an error.
func (s *inputSide) RegisterReader(format string, cls *DataClass, fn Reader, opts ...RegisterOption) error {
	o := applyRegisterOptions(opts)
	key := FormatKey{Format: format, Class: cls}

	s.c.mu.Lock()
	err := s.readers.register(key, fn, o)
	s.c.mu.Unlock()
	if err != nil {
		return err
	}

	s.c.notify(cls)
	return nil
}

// UnregisterReader removes the reader for the exact key. An absent key is an
// error. Unregistration is retained for compatibility with self-registering
// format packages and emits a warning.
func (s *inputSide) UnregisterReader(format string, cls *DataClass) error {
	key := FormatKey{Format: format, Class: cls}

	s.c.mu.Lock()
	err := s.readers.unregister(key)
	s.c.mu.Unlock()
	if err != nil {
		return err
	}

	warnf("unregistering reader for format '%s' and class '%s'; unregistration is retained for compatibility and may be removed", format, cls.Name())
	s.c.notify(cls)
	return nil
}

// HasReader reports whether a reader is registered for the exact key, without
// walking the ancestry.
func (s *inputSide) HasReader(format string, cls *DataClass) bool {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return s.readers.has(FormatKey{Format: format, Class: cls})
}

// GetReader resolves the reader for format and cls, walking the class
// ancestry nearest-first. It returns a NotDefinedError when no ancestor has
// one registered.
func (s *inputSide) GetReader(format string, cls *DataClass) (Reader, error) {
	s.c.mu.RLock()
	empty := len(s.readers.entries) == 0
	fn, err := s.readers.resolve(format, cls)
	s.c.mu.RUnlock()

	if empty {
		warnf("reader lookup on a registry with no readers; register formats before dispatching")
	}
	return fn, err
}

// Read dispatches a read for cls. When no explicit format is given the input
// is identified: a leading string argument is treated as a path and, for
// regular files, opened so identifiers can sniff the content; a leading
// io.Reader argument is used as the file object directly. The chosen reader's
// result is returned unmodified.
func (s *inputSide) Read(cls *DataClass, args []any, opts ...DispatchOption) (any, error) {
	o := applyDispatchOptions(opts)
	format := o.format

	if format == "" {
		path, fileobj, closer, readArgs, err := splitReadInput(args)
		if err != nil {
			return nil, err
		}
		if closer != nil {
			defer closer()
		}
		args = readArgs

		candidates := s.c.IdentifyFormat(OperationRead, cls, path, fileobj, args)

		s.c.mu.RLock()
		format, err = bestFormat(&s.readers, cls, candidates)
		s.c.mu.RUnlock()
		if err != nil {
			return nil, err
		}
		rewind(fileobj)
	}

	fn, err := s.GetReader(format, cls)
	if err != nil {
		return nil, err
	}
	return fn(args...)
}

// splitReadInput extracts the path and file object for identification. A
// string first argument naming a regular file is opened and the open handle
// replaces the path in the arguments handed to the reader, mirroring how the
// dispatcher hands already-open inputs to format code. Directories are passed
// through as path-only. A failure to open the named file is returned to the
// caller unchanged (an *fs.PathError for missing files).
func splitReadInput(args []any) (path string, fileobj io.Reader, closer func(), out []any, err error) {
	out = args
	if len(args) == 0 {
		return "", nil, nil, out, nil
	}

	switch first := args[0].(type) {
	case string:
		info, statErr := os.Stat(first)
		if statErr == nil && info.IsDir() {
			return first, nil, nil, out, nil
		}
		f, openErr := os.Open(first)
		if openErr != nil {
			return "", nil, nil, nil, openErr
		}
		out = append([]any{io.Reader(f)}, args[1:]...)
		return first, f, func() { _ = f.Close() }, out, nil
	case io.Reader:
		return "", first, nil, out, nil
	default:
		return "", nil, nil, out, nil
	}
}

// InputRegistry is an input-only registry: identifiers plus readers.
type InputRegistry struct {
	core
	inputSide
}

// NewInputRegistry creates an empty input-only registry.
func NewInputRegistry() *InputRegistry {
	r := &InputRegistry{}
	r.core.init(r)
	r.inputSide = newInputSide(&r.core)
	return r
}

// Formats lists the registered formats, optionally restricted to cls and its
// ancestry. Rows are ordered by class name, then format name.
func (r *InputRegistry) Formats(cls *DataClass) []FormatRow {
	return r.formatRows(cls, &r.readers, nil)
}

var _ ReadRegistry = (*InputRegistry)(nil)
