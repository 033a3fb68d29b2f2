/*
Package errors provides semantic error types for the ioregistry library.

The package defines the failure modes of registry operations with specific
types that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrAlreadyDefined  = errors.New("already defined")
	    ErrNotDefined      = errors.New("not defined")
	    ErrUnknownFormat   = errors.New("format could not be identified")
	    ErrAmbiguousFormat = errors.New("format is ambiguous")
	)

Usage:

	// Check error type
	data, err := reg.Read(dataset.Class, []any{"input.yaml"})
	if err != nil {
	    if errors.IsUnknownFormat(err) {
	        // No identifier claimed the input; ask the caller for a format
	        return nil, fmt.Errorf("unrecognized input, pass an explicit format")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewAlreadyDefinedError("reader", "yaml", "Dataset")
	err := errors.NewNotDefinedError("writer", "ddbitem", "Dataset")
	err := errors.NewAmbiguousFormatError([]string{"yaml", "ddbitem"})

Errors raised by reader, writer and identifier callbacks are never wrapped
by the registry; IsRegistryError distinguishes registry failures from
callback failures.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
