package decode

import "errors"

var (
	// ErrEmptyLine is returned for blank or whitespace-only lines.
	ErrEmptyLine = errors.New("decode: empty line")

	// ErrComment is returned for comment lines.
	ErrComment = errors.New("decode: comment line")

	// ErrUnknownAction is returned when the action kind is not supported.
	ErrUnknownAction = errors.New("decode: unknown action kind")

	// ErrMalformed is returned when a line has the wrong field shape.
	ErrMalformed = errors.New("decode: malformed line")

	// ErrBadTimestamp is returned when the timestamp cannot be parsed.
	ErrBadTimestamp = errors.New("decode: bad timestamp")

	// ErrBadNumber is returned when a numeric field cannot be parsed.
	ErrBadNumber = errors.New("decode: bad numeric field")

	// ErrUnprintable is returned by Render for events carrying fields the
	// canonical form cannot express.
	ErrUnprintable = errors.New("decode: event not printable")

	// ErrUnknownLayout is returned when the layout selector is not valid.
	ErrUnknownLayout = errors.New("decode: unknown layout")
)
