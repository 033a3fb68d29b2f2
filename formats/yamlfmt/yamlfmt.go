/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package yamlfmt provides the built-in "yaml" dataset format. Importing it
// registers the codec with the default registry.
package yamlfmt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suparena/ioregistry"
	"github.com/suparena/ioregistry/dataset"

	"github.com/go-openapi/strfmt"
)

// Format is the registered format name.
const Format = "yaml"

func init() {
	if err := Register(nil); err != nil {
		panic(fmt.Sprintf("yamlfmt: default registration failed: %v", err))
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

// document is the on-disk shape of a dataset.
type document struct {
	Columns []string          `yaml:"columns"`
	Rows    [][]any           `yaml:"rows"`
	Meta    map[string]string `yaml:"meta,omitempty"`
	Created string            `yaml:"created,omitempty"`
}

// Identify claims inputs with a .yaml/.yml extension, and for reads without
// a usable path, inputs whose content starts with a YAML document marker.
func Identify(op ioregistry.Operation, path string, fileobj io.Reader, args []any) bool {
	if path != "" {
		lower := strings.ToLower(path)
		return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
	}
	if op != ioregistry.OperationRead || fileobj == nil {
		return false
	}
	head := make([]byte, 5)
	n, _ := io.ReadFull(fileobj, head)
	if s, ok := fileobj.(io.Seeker); ok {
		_, _ = s.Seek(int64(-n), io.SeekCurrent)
	}
	return bytes.HasPrefix(head[:n], []byte("---")) || bytes.HasPrefix(head[:n], []byte("%YAML"))
}

// Read decodes a YAML document from the first argument, which must be an
// io.Reader or a path.
func Read(args ...any) (any, error) {
	src, err := sourceFor(args)
	if err != nil {
		return nil, err
	}
	defer src.close()

	var doc document
	if err := yaml.NewDecoder(src.r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("yamlfmt: decode: %w", err)
	}

	d := dataset.New(doc.Columns...)
	d.Rows = doc.Rows
	if doc.Meta != nil {
		d.Meta = doc.Meta
	}
	if doc.Created != "" {
		created, err := strfmt.ParseDateTime(doc.Created)
		if err != nil {
			return nil, fmt.Errorf("yamlfmt: invalid created timestamp: %w", err)
		}
		d.CreatedAt = &created
	}
	return d, nil
}

// Write encodes the dataset as a YAML document to the first argument, which
// must be an io.Writer or a path.
func Write(data ioregistry.Data, args ...any) (any, error) {
	d, ok := data.(*dataset.Dataset)
	if !ok {
		return nil, fmt.Errorf("yamlfmt: cannot write %T", data)
	}
	dst, err := destinationFor(args)
	if err != nil {
		return nil, err
	}
	defer dst.close()

	doc := document{
		Columns: d.Columns,
		Rows:    d.Rows,
		Meta:    d.Meta,
	}
	if d.CreatedAt != nil {
		doc.Created = d.CreatedAt.String()
	}

	enc := yaml.NewEncoder(dst.w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("yamlfmt: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamlfmt: encode: %w", err)
	}
	return nil, dst.sync()
}

type source struct {
	r     io.Reader
	close func()
}

func sourceFor(args []any) (*source, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("yamlfmt: no input given")
	}
	switch v := args[0].(type) {
	case io.Reader:
		return &source{r: v, close: func() {}}, nil
	case string:
		f, err := os.Open(v)
		if err != nil {
			return nil, err
		}
		return &source{r: f, close: func() { _ = f.Close() }}, nil
	default:
		return nil, fmt.Errorf("yamlfmt: cannot read from %T", args[0])
	}
}

type destination struct {
	w     io.Writer
	close func()
	sync  func() error
}

func destinationFor(args []any) (*destination, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("yamlfmt: no output given")
	}
	switch v := args[0].(type) {
	case io.Writer:
		return &destination{w: v, close: func() {}, sync: func() error { return nil }}, nil
	case string:
		f, err := os.Create(v)
		if err != nil {
			return nil, err
		}
		return &destination{w: f, close: func() {}, sync: f.Close}, nil
	default:
		return nil, fmt.Errorf("yamlfmt: cannot write to %T", args[0])
	}
}
