/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

import (
	"io"
	"sort"
	"sync"

	regerrors "github.com/suparena/ioregistry/errors"
)

// formatLister is the slice of a registry the doc updater needs.
type formatLister interface {
	Formats(cls *DataClass) []FormatRow
}

// core holds the state shared by every registry variant: the identifier map,
// the doc updater and the delayed-update bookkeeping. Registration order of
// identifiers is preserved; it defines the discovery order during format
// identification.
//
// The mutex serializes individual operations. Callers that need cross-call
// invariants (check then register, for example) must serialize externally.
type core struct {
	mu          sync.RWMutex
	identifiers map[FormatKey]Identifier
	order       []FormatKey
	delayed     map[*DataClass]bool

	docs  DocUpdater
	owner formatLister
}

func (c *core) init(owner formatLister) {
	c.identifiers = make(map[FormatKey]Identifier)
	c.delayed = make(map[*DataClass]bool)
	c.docs = defaultDocUpdater
	c.owner = owner
}

// SetDocUpdater replaces the documentation observer. A nil updater disables
// documentation upkeep entirely.
func (c *core) SetDocUpdater(u DocUpdater) {
	c.mu.Lock()
	c.docs = u
	c.mu.Unlock()
}

// RegisterIdentifier binds an identifier predicate to (format, cls). Unless
// Force is given, registering over an existing entry is an error.
func (c *core) RegisterIdentifier(format string, cls *DataClass, fn Identifier, opts ...RegisterOption) error {
	o := applyRegisterOptions(opts)
	key := FormatKey{Format: format, Class: cls}

	c.mu.Lock()
	if _, exists := c.identifiers[key]; exists {
		if !o.force {
			c.mu.Unlock()
			return regerrors.NewAlreadyDefinedError("identifier", format, cls.Name())
		}
		// replacement keeps the original discovery position
	} else {
		c.order = append(c.order, key)
	}
	c.identifiers[key] = fn
	c.mu.Unlock()

	c.notify(cls)
	return nil
}

// UnregisterIdentifier removes the identifier for the exact key. An absent
// key is an error; nothing is removed in that case.
func (c *core) UnregisterIdentifier(format string, cls *DataClass) error {
	key := FormatKey{Format: format, Class: cls}

	c.mu.Lock()
	if _, exists := c.identifiers[key]; !exists {
		c.mu.Unlock()
		return regerrors.NewNotDefinedError("identifier", format, cls.Name())
	}
	delete(c.identifiers, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.notify(cls)
	return nil
}

// HasIdentifier reports whether an identifier is registered for the exact key.
func (c *core) HasIdentifier(format string, cls *DataClass) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.identifiers[FormatKey{Format: format, Class: cls}]
	return ok
}

// IdentifyFormat invokes every identifier whose class is cls or one of its
// ancestors and returns the format names that claimed the input, de-duplicated,
// in registration order. A seekable fileobj is rewound before each call.
// Identifier panics are not recovered; a misbehaving identifier is a bug in
// its format package.
func (c *core) IdentifyFormat(op Operation, cls *DataClass, path string, fileobj io.Reader, args []any) []string {
	c.mu.RLock()
	keys := make([]FormatKey, len(c.order))
	copy(keys, c.order)
	fns := make([]Identifier, len(keys))
	for i, k := range keys {
		fns[i] = c.identifiers[k]
	}
	c.mu.RUnlock()

	formats := []string{}
	seen := make(map[string]bool)
	for i, key := range keys {
		if fns[i] == nil || !cls.IsSubclassOf(key.Class) {
			continue
		}
		rewind(fileobj)
		if fns[i](op, path, fileobj, args) && !seen[key.Format] {
			seen[key.Format] = true
			formats = append(formats, key.Format)
		}
	}
	return formats
}

// DelayDocUpdates suspends documentation regeneration for cls while fn runs.
// On return the documentation is regenerated exactly once, from the final
// registration state, no matter how many mutations fn performed.
func (c *core) DelayDocUpdates(cls *DataClass, fn func() error) error {
	c.mu.Lock()
	c.delayed[cls] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.delayed, cls)
		c.mu.Unlock()
		c.update(cls)
	}()

	return fn()
}

// Formats returns no rows: the shared core tracks identifiers only. The
// concrete registry variants shadow this with real listings.
func (c *core) Formats(cls *DataClass) []FormatRow { return nil }

// notify triggers a documentation update for cls unless updates for it are
// currently delayed.
func (c *core) notify(cls *DataClass) {
	c.mu.RLock()
	suspended := c.delayed[cls]
	c.mu.RUnlock()
	if !suspended {
		c.update(cls)
	}
}

func (c *core) update(cls *DataClass) {
	c.mu.RLock()
	docs := c.docs
	owner := c.owner
	c.mu.RUnlock()
	if docs == nil || owner == nil {
		return
	}
	docs.Update(cls, owner.Formats(cls))
}

// formatRows builds the Formats listing for the given tables. A nil table
// contributes nothing. When cls is non-nil the listing is restricted to cls
// and its ancestry.
func (c *core) formatRows(cls *DataClass, readers *handlerTable[Reader], writers *handlerTable[Writer]) []FormatRow {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make(map[FormatKey]bool)
	for k := range c.identifiers {
		keys[k] = true
	}
	if readers != nil {
		for k := range readers.entries {
			keys[k] = true
		}
	}
	if writers != nil {
		for k := range writers.entries {
			keys[k] = true
		}
	}

	rows := make([]FormatRow, 0, len(keys))
	for k := range keys {
		if cls != nil && !cls.IsSubclassOf(k.Class) {
			continue
		}
		row := FormatRow{
			Format: k.Format,
			Class:  k.Class,
		}
		_, row.HasIdentifier = c.identifiers[k]
		if readers != nil {
			if e, ok := readers.entries[k]; ok {
				row.HasReader = true
				row.Deprecated = row.Deprecated || e.deprecated
			}
		}
		if writers != nil {
			if e, ok := writers.entries[k]; ok {
				row.HasWriter = true
				row.Deprecated = row.Deprecated || e.deprecated
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Class.Name() == rows[j].Class.Name() {
			return rows[i].Format < rows[j].Format
		}
		return rows[i].Class.Name() < rows[j].Class.Name()
	})
	return rows
}

func rewind(r io.Reader) {
	if s, ok := r.(io.Seeker); ok {
		_, _ = s.Seek(0, io.SeekStart)
	}
}
