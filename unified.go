/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

// IORegistry is a full registry: identifiers, readers and writers. The
// identifier map is shared between the two sides, so a single identifier can
// discriminate read and write dispatch by its operation argument.
type IORegistry struct {
	core
	inputSide
	outputSide
}

// NewIORegistry creates an empty full registry.
func NewIORegistry() *IORegistry {
	r := &IORegistry{}
	r.core.init(r)
	r.inputSide = newInputSide(&r.core)
	r.outputSide = newOutputSide(&r.core)
	return r
}

// Formats lists the registered formats, optionally restricted to cls and its
// ancestry. Rows are ordered by class name, then format name.
func (r *IORegistry) Formats(cls *DataClass) []FormatRow {
	return r.formatRows(cls, &r.readers, &r.writers)
}

var _ ReadWriteRegistry = (*IORegistry)(nil)
