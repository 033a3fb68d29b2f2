/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

import (
	regerrors "github.com/suparena/ioregistry/errors"
)

// handlerEntry is a registered reader or writer with its registration
// parameters.
type handlerEntry[F any] struct {
	fn         F
	priority   int
	deprecated bool
}

// handlerTable maps exact (format, class) keys to handlers of one kind.
// It is not safe for concurrent use on its own; callers hold the owning
// registry's lock.
type handlerTable[F any] struct {
	kind    string // "reader" or "writer", used in error messages
	entries map[FormatKey]handlerEntry[F]
}

func newHandlerTable[F any](kind string) handlerTable[F] {
	return handlerTable[F]{kind: kind, entries: make(map[FormatKey]handlerEntry[F])}
}

func (t *handlerTable[F]) register(key FormatKey, fn F, o regOptions) error {
	if _, exists := t.entries[key]; exists && !o.force {
		return regerrors.NewAlreadyDefinedError(t.kind, key.Format, key.Class.Name())
	}
	t.entries[key] = handlerEntry[F]{fn: fn, priority: o.priority, deprecated: o.deprecated}
	return nil
}

func (t *handlerTable[F]) unregister(key FormatKey) error {
	if _, exists := t.entries[key]; !exists {
		return regerrors.NewNotDefinedError(t.kind, key.Format, key.Class.Name())
	}
	delete(t.entries, key)
	return nil
}

func (t *handlerTable[F]) has(key FormatKey) bool {
	_, ok := t.entries[key]
	return ok
}

// resolve walks the class ancestry, nearest first, and returns the handler of
// the closest ancestor that has one registered for the format.
func (t *handlerTable[F]) resolve(format string, cls *DataClass) (F, error) {
	for _, ancestor := range cls.Ancestry() {
		if e, ok := t.entries[FormatKey{Format: format, Class: ancestor}]; ok {
			return e.fn, nil
		}
	}
	var zero F
	return zero, regerrors.NewNotDefinedError(t.kind, format, cls.Name())
}

// priorityFor returns the priority recorded for the exact key, or the default
// when the key has no handler.
func (t *handlerTable[F]) priorityFor(key FormatKey) int {
	if e, ok := t.entries[key]; ok {
		return e.priority
	}
	return 0
}

// bestFormat ranks identified formats by the priority of their handler for
// the exact class and returns the single best one. A tie among the top-ranked
// formats is ambiguous; the error lists the tied options in discovery order.
func bestFormat[F any](t *handlerTable[F], cls *DataClass, candidates []string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", regerrors.NewUnknownFormatError()
	case 1:
		return candidates[0], nil
	}

	var best []string
	bestPriority := 0
	for i, format := range candidates {
		p := t.priorityFor(FormatKey{Format: format, Class: cls})
		switch {
		case i == 0 || p > bestPriority:
			best = append(best[:0], format)
			bestPriority = p
		case p == bestPriority:
			best = append(best, format)
		}
	}
	if len(best) > 1 {
		return "", regerrors.NewAmbiguousFormatError(best)
	}
	return best[0], nil
}
