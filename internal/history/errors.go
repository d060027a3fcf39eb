package history

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrStoreCorrupted indicates stored history that cannot be decoded.
	// Load absorbs it; it surfaces only from ReadAll.
	ErrStoreCorrupted = constError("history store corrupted")

	// ErrInvalidEntry indicates an entry without an id or timestamp.
	ErrInvalidEntry = constError("invalid history entry")

	// ErrUnknownBackend indicates an unsupported store backend name.
	ErrUnknownBackend = constError("unknown history backend")
)

func validateEntry(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidEntry)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("%w: zero timestamp", ErrInvalidEntry)
	}
	return nil
}
