package format

import "errors"

// Sentinel errors for format operations.
var (
	// ErrNumberingConflict is returned when a template mixes implicit and
	// explicit field numbering.
	ErrNumberingConflict = errors.New("numbering conflict")

	// ErrUnknownTransformer is returned when a field names a transformer the
	// formatter was not created with.
	ErrUnknownTransformer = errors.New("unknown transformer")

	// ErrBadArgument is returned by methods that cannot use their arguments.
	// It never escapes Format; a failing method renders the missing value.
	ErrBadArgument = errors.New("bad method argument")
)

// ValueError reports a template structure error. Error returns the message
// alone; Unwrap exposes the sentinel for errors.Is.
type ValueError struct {
	Err error
	Msg string
}

func (e *ValueError) Error() string {
	return e.Msg
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func newValueError(sentinel error, msg string) *ValueError {
	return &ValueError{Err: sentinel, Msg: msg}
}
