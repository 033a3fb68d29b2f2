/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

import (
	"fmt"
	"log"
	"sync"
)

// Compatibility warnings are non-fatal: the operation that emits one still
// completes. The handler is replaceable so embedding applications and tests
// can capture or silence them.

var (
	warnMu      sync.RWMutex
	warnHandler = func(msg string) { log.Printf("ioregistry: %s", msg) }
)

// SetWarningHandler replaces the handler that receives compatibility
// warnings. A nil handler silences them. It returns the previous handler.
func SetWarningHandler(fn func(msg string)) func(msg string) {
	warnMu.Lock()
	prev := warnHandler
	warnHandler = fn
	warnMu.Unlock()
	return prev
}

func warnf(format string, args ...any) {
	warnMu.RLock()
	fn := warnHandler
	warnMu.RUnlock()
	if fn != nil {
		fn(fmt.Sprintf(format, args...))
	}
}
