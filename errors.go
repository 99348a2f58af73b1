package ska

import "errors"

var (
	// ErrInvalidConfig is returned for missing or invalid configuration values.
	ErrInvalidConfig = errors.New("ska: invalid configuration")

	// ErrEmptySummary is returned when the model produces no usable text
	// for a node.
	ErrEmptySummary = errors.New("ska: model returned an empty summary")
)
