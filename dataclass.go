/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

// DataClass describes a data container type to the registry. Handlers and
// identifiers are keyed by (format, *DataClass), and handler lookup walks the
// class's ancestry so a handler registered for an ancestor also serves its
// descendants.
//
// Classes form a single-parent hierarchy. The linearized ancestry (the class
// itself first, then parents in order) is computed once at construction.
type DataClass struct {
	name     string
	parent   *DataClass
	ancestry []*DataClass

	readDoc  string
	writeDoc string
}

// NewDataClass creates a class descriptor. parent may be nil for a root class.
func NewDataClass(name string, parent *DataClass) *DataClass {
	c := &DataClass{name: name, parent: parent}
	c.ancestry = append(c.ancestry, c)
	for p := parent; p != nil; p = p.parent {
		c.ancestry = append(c.ancestry, p)
	}
	return c
}

// Name returns the class name used in error messages and format listings.
func (c *DataClass) Name() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// Parent returns the direct ancestor, or nil for a root class.
func (c *DataClass) Parent() *DataClass { return c.parent }

// Ancestry returns the linearized ancestor chain, nearest first, starting
// with the class itself. The returned slice must not be modified.
func (c *DataClass) Ancestry() []*DataClass { return c.ancestry }

// IsSubclassOf reports whether other is c or one of c's ancestors.
func (c *DataClass) IsSubclassOf(other *DataClass) bool {
	if c == nil {
		return other == nil
	}
	for _, a := range c.ancestry {
		if a == other {
			return true
		}
	}
	return false
}

// ReadDoc returns the generated documentation for reading this class,
// including the table of registered formats. It is maintained by the
// registry's doc updater.
func (c *DataClass) ReadDoc() string { return c.readDoc }

// WriteDoc returns the generated documentation for writing this class.
func (c *DataClass) WriteDoc() string { return c.writeDoc }

// Data is implemented by instances that know their registry class. Write
// dispatch resolves handlers by the dynamic class of the value being written.
type Data interface {
	Class() *DataClass
}
