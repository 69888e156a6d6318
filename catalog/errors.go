package catalog

import "errors"

// Sentinel errors for catalog operations.
var (
	// ErrUnknownMessage is returned when a message name is not in the catalog.
	ErrUnknownMessage = errors.New("unknown message")

	// ErrUnknownSyntax is returned for file extensions or syntaxes the
	// catalog cannot decode.
	ErrUnknownSyntax = errors.New("unknown catalog syntax")

	// ErrUnknownTransformer is returned when a transformer alias names no
	// known transformer.
	ErrUnknownTransformer = errors.New("unknown transformer")

	// ErrDecode is returned when a catalog file fails to decode.
	ErrDecode = errors.New("catalog decode error")

	// ErrNilFile is returned by New when given no file.
	ErrNilFile = errors.New("catalog file is nil")

	// ErrNoSource is returned by Reload and Watch for catalogs not loaded
	// from a file.
	ErrNoSource = errors.New("catalog has no source file")
)
