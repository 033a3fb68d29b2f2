/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ioregistry

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	regerrors "github.com/suparena/ioregistry/errors"
)

type emptyData struct{ label string }

func (e *emptyData) Class() *DataClass { return emptyClass }

func emptyReader(args ...any) (any, error) {
	return &emptyData{}, nil
}

func TestRegisterReader(t *testing.T) {
	reg := NewInputRegistry()

	if reg.HasReader("test1", emptyClass) {
		t.Fatal("reader should not be registered yet")
	}

	if err := reg.RegisterReader("test1", emptyClass, emptyReader); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if err := reg.RegisterReader("test2", emptyClass, emptyReader); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	if !reg.HasReader("test1", emptyClass) || !reg.HasReader("test2", emptyClass) {
		t.Error("both readers should be registered")
	}
	// default priority is stored with the entry
	if p := reg.readers.priorityFor(FormatKey{Format: "test1", Class: emptyClass}); p != 0 {
		t.Errorf("Expected default priority 0, got %d", p)
	}
}

func TestRegisterReaderDuplicate(t *testing.T) {
	reg := NewInputRegistry()
	if err := reg.RegisterReader("test1", emptyClass, emptyReader); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	err := reg.RegisterReader("test1", emptyClass, emptyReader)
	if err == nil {
		t.Fatal("Expected duplicate registration to fail")
	}
	expected := "Reader for format 'test1' and class 'EmptyData' is already defined"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !regerrors.IsAlreadyDefined(err) {
		t.Error("duplicate registration should match ErrAlreadyDefined")
	}
}

func TestRegisterReaderForce(t *testing.T) {
	reg := NewInputRegistry()
	if err := reg.RegisterReader("test1", emptyClass, emptyReader); err != nil {
		t.Fatal(err)
	}

	replacement := func(args ...any) (any, error) { return &emptyData{label: "replacement"}, nil }
	if err := reg.RegisterReader("test1", emptyClass, replacement, Force()); err != nil {
		t.Fatalf("Forced registration failed: %v", err)
	}

	fn, err := reg.GetReader("test1", emptyClass)
	if err != nil {
		t.Fatalf("Failed to get reader: %v", err)
	}
	v, err := fn()
	if err != nil {
		t.Fatal(err)
	}
	if v.(*emptyData).label != "replacement" {
		t.Error("forced registration should replace the handler")
	}
}

func TestRegisterReadersWithSameNameOnDifferentClasses(t *testing.T) {
	reg := NewInputRegistry()
	if err := reg.RegisterReader("test", emptyClass, func(args ...any) (any, error) {
		return &emptyData{}, nil
	}); err != nil {
		t.Fatal(err)
	}
	type otherData struct{}
	if err := reg.RegisterReader("test", otherClass, func(args ...any) (any, error) {
		return &otherData{}, nil
	}); err != nil {
		t.Fatal(err)
	}

	v, err := reg.Read(emptyClass, nil, WithFormat("test"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(*emptyData); !ok {
		t.Errorf("Expected *emptyData, got %T", v)
	}

	v, err = reg.Read(otherClass, nil, WithFormat("test"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(*otherData); !ok {
		t.Errorf("Expected *otherData, got %T", v)
	}
}

func TestUnregisterReader(t *testing.T) {
	captured := captureWarnings(t)

	reg := NewInputRegistry()
	if err := reg.RegisterReader("test1", emptyClass, emptyReader); err != nil {
		t.Fatal(err)
	}

	if err := reg.UnregisterReader("test1", emptyClass); err != nil {
		t.Fatalf("Failed to unregister: %v", err)
	}
	if reg.HasReader("test1", emptyClass) {
		t.Error("reader should be gone after unregistration")
	}
	// unregistration succeeds but emits a compatibility warning
	if len(*captured) == 0 {
		t.Error("Expected a warning from UnregisterReader")
	}
}

func TestUnregisterReaderAbsent(t *testing.T) {
	reg := NewInputRegistry()
	err := reg.UnregisterReader("test1", emptyClass)
	if err == nil {
		t.Fatal("Expected unregistration of an absent key to fail")
	}
	expected := "No reader defined for format 'test1' and class 'EmptyData'"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestGetReader(t *testing.T) {
	silenceWarnings(t)

	reg := NewInputRegistry()
	if _, err := reg.GetReader("test1", emptyClass); err == nil {
		t.Fatal("Expected lookup on an empty registry to fail")
	}

	if err := reg.RegisterReader("test1", emptyClass, emptyReader); err != nil {
		t.Fatal(err)
	}
	fn, err := reg.GetReader("test1", emptyClass)
	if err != nil {
		t.Fatalf("Failed to get reader: %v", err)
	}
	if fn == nil {
		t.Fatal("GetReader returned a nil reader")
	}
}

func TestGetReaderAbsent(t *testing.T) {
	silenceWarnings(t)

	reg := NewInputRegistry()
	_, err := reg.GetReader("test1", emptyClass)
	if err == nil {
		t.Fatal("Expected error")
	}
	expected := "No reader defined for format 'test1' and class 'EmptyData'"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !regerrors.IsNotDefined(err) {
		t.Error("absent reader should match ErrNotDefined")
	}
}

func TestGetReaderEmptyRegistryWarns(t *testing.T) {
	captured := captureWarnings(t)

	reg := NewInputRegistry()
	_, _ = reg.GetReader("test1", emptyClass)
	if len(*captured) == 0 {
		t.Error("Expected a warning when looking up on a registry with no readers")
	}

	*captured = (*captured)[:0]
	if err := reg.RegisterReader("test1", emptyClass, emptyReader); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.GetReader("test1", emptyClass); err != nil {
		t.Fatal(err)
	}
	if len(*captured) != 0 {
		t.Errorf("Expected no warning on a populated registry, got %v", *captured)
	}
}

func TestInheritedReadRegistration(t *testing.T) {
	// multi-generation inheritance: a child resolves through parents before
	// grandparents
	child1 := NewDataClass("Child1", emptyClass)
	child2 := NewDataClass("Child2", child1)

	reg := NewInputRegistry()
	if err := reg.RegisterReader("test", emptyClass, func(args ...any) (any, error) {
		return &emptyData{label: "base"}, nil
	}); err != nil {
		t.Fatal(err)
	}

	// reader is inherited across two generations
	fn, err := reg.GetReader("test", child2)
	if err != nil {
		t.Fatalf("Failed to resolve inherited reader: %v", err)
	}
	v, _ := fn()
	if v.(*emptyData).label != "base" {
		t.Error("Child2 should inherit the base reader")
	}

	// the nearest ancestor wins over the more general one
	if err := reg.RegisterReader("test", child1, func(args ...any) (any, error) {
		return &emptyData{label: "child1"}, nil
	}); err != nil {
		t.Fatal(err)
	}
	fn, err = reg.GetReader("test", child2)
	if err != nil {
		t.Fatal(err)
	}
	v, _ = fn()
	if v.(*emptyData).label != "child1" {
		t.Error("Child2 should resolve Child1's reader, not the base one")
	}
}

func TestReadNoFormat(t *testing.T) {
	silenceWarnings(t)

	reg := NewInputRegistry()
	_, err := reg.Read(emptyClass, nil)
	if err == nil {
		t.Fatal("Expected error when no format can be identified")
	}
	expected := "Format could not be identified based on the file name or contents, " +
		"please provide a 'format' argument."
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !regerrors.IsUnknownFormat(err) {
		t.Error("error should match ErrUnknownFormat")
	}
}

func TestReadNoFormatArbitraryArg(t *testing.T) {
	silenceWarnings(t)

	reg := NewInputRegistry()
	_, err := reg.Read(emptyClass, []any{struct{}{}})
	if err == nil || !regerrors.IsUnknownFormat(err) {
		t.Fatalf("Expected unidentified format error for arbitrary input, got %v", err)
	}
}

func TestReadTooManyFormats(t *testing.T) {
	reg := NewInputRegistry()
	if err := reg.RegisterIdentifier("test1", emptyClass, trueIdentifier); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterIdentifier("test2", emptyClass, trueIdentifier); err != nil {
		t.Fatal(err)
	}

	_, err := reg.Read(emptyClass, nil)
	if err == nil {
		t.Fatal("Expected ambiguity error")
	}
	expected := "Format is ambiguous - options are: test1, test2"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !regerrors.IsAmbiguousFormat(err) {
		t.Error("error should match ErrAmbiguousFormat")
	}
}

func TestReadUsesPriority(t *testing.T) {
	reg := NewInputRegistry()
	counts := map[string]int{}

	if err := reg.RegisterReader("test1", emptyClass, func(args ...any) (any, error) {
		counts["test1"]++
		return &emptyData{}, nil
	}, WithPriority(1)); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterReader("test2", emptyClass, func(args ...any) (any, error) {
		counts["test2"]++
		return &emptyData{}, nil
	}, WithPriority(2)); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterIdentifier("test1", emptyClass, trueIdentifier); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterIdentifier("test2", emptyClass, trueIdentifier); err != nil {
		t.Fatal(err)
	}

	if _, err := reg.Read(emptyClass, nil); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if counts["test2"] != 1 {
		t.Errorf("Expected the priority-2 reader to run exactly once, ran %d times", counts["test2"])
	}
	if counts["test1"] != 0 {
		t.Errorf("Expected the priority-1 reader to never run, ran %d times", counts["test1"])
	}
}

func TestReadFormatNoReader(t *testing.T) {
	silenceWarnings(t)

	reg := NewInputRegistry()
	_, err := reg.Read(emptyClass, nil, WithFormat("test1"))
	if err == nil {
		t.Fatal("Expected error for a format with no reader")
	}
	expected := "No reader defined for format 'test1' and class 'EmptyData'"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestReadIdentifierByPath(t *testing.T) {
	silenceWarnings(t)

	reg := NewInputRegistry()
	if err := reg.RegisterIdentifier("test1", emptyClass,
		func(op Operation, path string, fileobj io.Reader, args []any) bool {
			return strings.HasSuffix(path, ".a")
		}); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterIdentifier("test2", emptyClass,
		func(op Operation, path string, fileobj io.Reader, args []any) bool {
			return strings.HasSuffix(path, ".b")
		}); err != nil {
		t.Fatal(err)
	}

	// identification succeeds; the missing reader tells us which format won
	dir := t.TempDir()
	fileA := filepath.Join(dir, "testfile.a")
	if err := os.WriteFile(fileA, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := reg.Read(emptyClass, []any{fileA})
	if err == nil || !strings.HasPrefix(err.Error(), "No reader defined for format 'test1'") {
		t.Errorf("Expected test1 to be identified, got %v", err)
	}

	fileB := filepath.Join(dir, "testfile.b")
	if err := os.WriteFile(fileB, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = reg.Read(emptyClass, []any{fileB})
	if err == nil || !strings.HasPrefix(err.Error(), "No reader defined for format 'test2'") {
		t.Errorf("Expected test2 to be identified, got %v", err)
	}
}

func TestReadValidReturn(t *testing.T) {
	reg := NewInputRegistry()
	if err := reg.RegisterReader("test1", emptyClass, emptyReader); err != nil {
		t.Fatal(err)
	}

	v, err := reg.Read(emptyClass, nil, WithFormat("test1"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if _, ok := v.(*emptyData); !ok {
		t.Errorf("Expected *emptyData, got %T", v)
	}
}

func TestReadEndToEndAutoIdentify(t *testing.T) {
	reg := NewInputRegistry()
	if err := reg.RegisterIdentifier("test1", emptyClass, trueIdentifier); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterReader("test1", emptyClass, emptyReader); err != nil {
		t.Fatal(err)
	}

	v, err := reg.Read(emptyClass, nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if _, ok := v.(*emptyData); !ok {
		t.Errorf("Expected *emptyData, got %T", v)
	}
}

func TestReadNonExistingFileUnknownExt(t *testing.T) {
	reg := NewInputRegistry()
	_, err := reg.Read(emptyClass, []any{"non-existing-file-with-unknown.ext"})
	if err == nil {
		t.Fatal("Expected an OS error for a missing file")
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("Expected *fs.PathError, got %T: %v", err, err)
	}
}

func TestReadDirectory(t *testing.T) {
	reg := NewInputRegistry()
	if err := reg.RegisterIdentifier("test_folder_format", emptyClass,
		func(op Operation, path string, fileobj io.Reader, args []any) bool {
			return op == OperationRead
		}); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterReader("test_folder_format", emptyClass, emptyReader); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()

	// with the format explicitly specified
	v, err := reg.Read(emptyClass, []any{dir}, WithFormat("test_folder_format"))
	if err != nil {
		t.Fatalf("Explicit-format read failed: %v", err)
	}
	if _, ok := v.(*emptyData); !ok {
		t.Errorf("Expected *emptyData, got %T", v)
	}

	// with automatic format identification
	v, err = reg.Read(emptyClass, []any{dir})
	if err != nil {
		t.Fatalf("Auto-identified read failed: %v", err)
	}
	if _, ok := v.(*emptyData); !ok {
		t.Errorf("Expected *emptyData, got %T", v)
	}
}

func TestReadOpensFileForSniffing(t *testing.T) {
	silenceWarnings(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "data.sniff")
	if err := os.WriteFile(file, []byte("MAGIC payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := NewInputRegistry()
	if err := reg.RegisterIdentifier("sniffed", emptyClass,
		func(op Operation, path string, fileobj io.Reader, args []any) bool {
			if fileobj == nil {
				return false
			}
			head := make([]byte, 5)
			n, _ := io.ReadFull(fileobj, head)
			return string(head[:n]) == "MAGIC"
		}); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterReader("sniffed", emptyClass, func(args ...any) (any, error) {
		// the dispatcher hands the reader the open, rewound stream
		content, err := io.ReadAll(args[0].(io.Reader))
		if err != nil {
			return nil, err
		}
		return &emptyData{label: string(content)}, nil
	}); err != nil {
		t.Fatal(err)
	}

	v, err := reg.Read(emptyClass, []any{file})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := v.(*emptyData).label; got != "MAGIC payload" {
		t.Errorf("Expected full content from the rewound stream, got %q", got)
	}
}
