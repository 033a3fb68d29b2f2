/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// DocUpdater observes registry mutations. Update is invoked with the current
// format listing for the affected class after every registration change,
// except inside a DelayDocUpdates scope, where it is invoked once on exit.
type DocUpdater interface {
	Update(cls *DataClass, rows []FormatRow)
}

// defaultDocUpdater renders format tables into the data class's read and
// write documentation. Registries install it at construction; SetDocUpdater
// replaces it.
var defaultDocUpdater DocUpdater = docTableUpdater{}

type docTableUpdater struct{}

func (docTableUpdater) Update(cls *DataClass, rows []FormatRow) {
	cls.readDoc = renderDoc(OperationRead, cls, rows)
	cls.writeDoc = renderDoc(OperationWrite, cls, rows)
}

func renderDoc(op Operation, cls *DataClass, rows []FormatRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The formats available for %sing a %s are:\n\n", op, cls.Name())
	b.WriteString(RenderFormatsTable(op, rows))
	return b.String()
}

// RenderFormatsTable renders the rows relevant to the given operation as an
// aligned text table. Rows that do not support the operation are skipped; the
// Deprecated column appears only when at least one listed format carries the
// flag.
func RenderFormatsTable(op Operation, rows []FormatRow) string {
	relevant := make([]FormatRow, 0, len(rows))
	anyDeprecated := false
	for _, row := range rows {
		if (op == OperationRead && !row.HasReader) || (op == OperationWrite && !row.HasWriter) {
			continue
		}
		relevant = append(relevant, row)
		anyDeprecated = anyDeprecated || row.Deprecated
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	if anyDeprecated {
		fmt.Fprintln(w, "Format\tClass\tAuto-identify\tDeprecated")
	} else {
		fmt.Fprintln(w, "Format\tClass\tAuto-identify")
	}
	for _, row := range relevant {
		autoIdentify := "No"
		if row.HasIdentifier {
			autoIdentify = "Yes"
		}
		if anyDeprecated {
			deprecated := "No"
			if row.Deprecated {
				deprecated = "Yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Format, row.Class.Name(), autoIdentify, deprecated)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\n", row.Format, row.Class.Name(), autoIdentify)
		}
	}
	_ = w.Flush()
	return b.String()
}
