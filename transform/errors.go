package transform

import "errors"

var (
	// ErrUnknown is returned by Lookup for names it does not recognize.
	ErrUnknown = errors.New("unknown transformer")

	// ErrBadSpec is returned by Lookup for a parameterized name with an
	// invalid argument.
	ErrBadSpec = errors.New("invalid transformer spec")
)
