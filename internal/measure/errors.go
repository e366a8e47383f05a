package measure

import "errors"

var (
	// ErrInputUnavailable is returned when the measurements file cannot be
	// opened or read. Nothing is processed.
	ErrInputUnavailable = errors.New("input unavailable")

	// ErrMalformedRecord is returned for a line that is not
	// "name;[-]digits.digit". The run is aborted, there is no partial result.
	ErrMalformedRecord = errors.New("malformed record")
)
