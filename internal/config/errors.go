package config

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrUnknownKey is returned by Get and Set for keys that do not exist.
	ErrUnknownKey = constError("unknown configuration key")

	// ErrInvalidValue is returned when a value cannot be parsed or fails validation.
	ErrInvalidValue = constError("invalid configuration value")
)
