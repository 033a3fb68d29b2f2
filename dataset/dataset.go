/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dataset

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/ioregistry"
)

// Class describes Dataset to the I/O registry. Format packages register
// their handlers against it.
var Class = ioregistry.NewDataClass("Dataset", nil)

// Dataset is a minimal column-oriented record container. It exists as the
// concrete thing format codecs read and write; richer table semantics
// (units, typed columns, per-column metadata) belong to the applications
// embedding the registry, not here.
type Dataset struct {
	Columns   []string
	Rows      [][]any
	Meta      map[string]string
	CreatedAt *strfmt.DateTime
}

// New creates an empty dataset with the given column names.
func New(columns ...string) *Dataset {
	now := strfmt.DateTime(time.Now().UTC())
	return &Dataset{
		Columns:   columns,
		Meta:      make(map[string]string),
		CreatedAt: &now,
	}
}

// Class implements ioregistry.Data.
func (d *Dataset) Class() *ioregistry.DataClass { return Class }

// Append adds a row. The row must have one value per column.
func (d *Dataset) Append(values ...any) error {
	if len(values) != len(d.Columns) {
		return fmt.Errorf("dataset: row has %d values, want %d", len(values), len(d.Columns))
	}
	d.Rows = append(d.Rows, values)
	return nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// Column returns the values of the named column.
func (d *Dataset) Column(name string) ([]any, bool) {
	idx := -1
	for i, c := range d.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]any, 0, len(d.Rows))
	for _, row := range d.Rows {
		out = append(out, row[idx])
	}
	return out, true
}

// Read reads a dataset through reg, or the default registry when reg is nil.
// It is the delegating read method data types built on the registry expose.
func Read(reg ioregistry.ReadRegistry, args []any, opts ...ioregistry.DispatchOption) (*Dataset, error) {
	v, err := ioregistry.Read(reg, Class, args, opts...)
	if err != nil {
		return nil, err
	}
	d, ok := v.(*Dataset)
	if !ok {
		return nil, fmt.Errorf("dataset: reader returned %T, want *dataset.Dataset", v)
	}
	return d, nil
}

// Write writes the dataset through reg, or the default registry when reg is
// nil, and propagates the writer's result.
func (d *Dataset) Write(reg ioregistry.WriteRegistry, args []any, opts ...ioregistry.DispatchOption) (any, error) {
	return ioregistry.Write(reg, d, args, opts...)
}
