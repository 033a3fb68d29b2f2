/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package ddbitem provides the built-in "ddbitem" dataset format: the
// DynamoDB JSON item interchange shape (the form used by the AWS CLI and
// table export tooling), one typed attribute map per record. Importing the
// package registers the codec with the default registry.
package ddbitem

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/ioregistry"
	"github.com/suparena/ioregistry/dataset"
)

// Format is the registered format name.
const Format = "ddbitem"

// Extension is the file extension the identifier claims.
const Extension = ".ddbjson"

func init() {
	if err := Register(nil); err != nil {
		panic(fmt.Sprintf("ddbitem: default registration failed: %v", err))
	}
}

// Register registers the codec with reg, or the default registry when reg
// is nil.
func Register(reg ioregistry.ReadWriteRegistry) error {
	if err := ioregistry.RegisterIdentifier(reg, Format, dataset.Class, Identify); err != nil {
		return err
	}
	if err := ioregistry.RegisterReader(reg, Format, dataset.Class, Read); err != nil {
		return err
	}
	return ioregistry.RegisterWriter(reg, Format, dataset.Class, Write)
}

// Identify claims inputs by the .ddbjson extension.
func Identify(op ioregistry.Operation, path string, fileobj io.Reader, args []any) bool {
	return path != "" && strings.HasSuffix(strings.ToLower(path), Extension)
}

// Read decodes a JSON array of DynamoDB items from the first argument, which
// must be an io.Reader or a path. Columns are ordered by first appearance
// across the items; attributes absent from an item yield nil cells.
func Read(args ...any) (any, error) {
	r, closeFn, err := openSource(args)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var rawItems []map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&rawItems); err != nil {
		return nil, fmt.Errorf("ddbitem: decode: %w", err)
	}

	var columns []string
	seen := make(map[string]bool)
	records := make([]map[string]any, 0, len(rawItems))
	for i, raw := range rawItems {
		item := make(map[string]types.AttributeValue, len(raw))
		for name, rawAttr := range raw {
			av, err := decodeAttribute(rawAttr)
			if err != nil {
				return nil, fmt.Errorf("ddbitem: item %d, attribute %q: %w", i, name, err)
			}
			item[name] = av
		}
		record := make(map[string]any, len(item))
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, fmt.Errorf("ddbitem: item %d: %w", i, err)
		}
		// column order follows the typed source, not Go map iteration
		for _, name := range attributeNames(raw) {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
		records = append(records, record)
	}

	d := dataset.New(columns...)
	for _, record := range records {
		row := make([]any, len(columns))
		for j, name := range columns {
			row[j] = record[name]
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

// Write encodes the dataset as a JSON array of DynamoDB items to the first
// argument, which must be an io.Writer or a path. Nil cells are skipped, so
// sparse datasets round-trip to sparse items.
func Write(data ioregistry.Data, args ...any) (any, error) {
	d, ok := data.(*dataset.Dataset)
	if !ok {
		return nil, fmt.Errorf("ddbitem: cannot write %T", data)
	}
	w, closeFn, err := openDestination(args)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]json.RawMessage, 0, len(d.Rows))
	for i, row := range d.Rows {
		record := make(map[string]any, len(d.Columns))
		for j, name := range d.Columns {
			if j < len(row) && row[j] != nil {
				record[name] = row[j]
			}
		}
		avs, err := attributevalue.MarshalMap(record)
		if err != nil {
			_ = closeFn()
			return nil, fmt.Errorf("ddbitem: row %d: %w", i, err)
		}
		item := make(map[string]json.RawMessage, len(avs))
		for name, av := range avs {
			encoded, err := encodeAttribute(av)
			if err != nil {
				_ = closeFn()
				return nil, fmt.Errorf("ddbitem: row %d, column %q: %w", i, name, err)
			}
			item[name] = encoded
		}
		items = append(items, item)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("ddbitem: encode: %w", err)
	}
	return nil, closeFn()
}

// attributeNames returns the attribute names of one raw item in stable
// (sorted) order so column discovery is deterministic.
func attributeNames(raw map[string]json.RawMessage) []string {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

func openSource(args []any) (io.Reader, func(), error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("ddbitem: no input given")
	}
	switch v := args[0].(type) {
	case io.Reader:
		return v, func() {}, nil
	case string:
		f, err := os.Open(v)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("ddbitem: cannot read from %T", args[0])
	}
}

func openDestination(args []any) (io.Writer, func() error, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("ddbitem: no output given")
	}
	switch v := args[0].(type) {
	case io.Writer:
		return v, func() error { return nil }, nil
	case string:
		f, err := os.Create(v)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("ddbitem: cannot write to %T", args[0])
	}
}
