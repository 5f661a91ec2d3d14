package uri

import "github.com/pkg/errors"

var (
	// ErrMalformed reports input that does not match the component grammar.
	ErrMalformed = errors.New("malformed input")
	// ErrOutOfRange reports an index outside of a path or a query field.
	ErrOutOfRange = errors.New("index out of range")
	// ErrMissingAuthority reports a URL that has a scheme but no authority.
	ErrMissingAuthority = errors.New("scheme requires an authority")
)

func malformed(format string, args ...any) error {
	return errors.Wrapf(ErrMalformed, format, args...)
}

func outOfRange(idx, count int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d, count %d", idx, count)
}
