package history

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the Store for backend at path, plus a function that releases
// it. An empty backend selects BackendJSON.
func Open(ctx context.Context, backend, path string) (Store, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case "", BackendJSON:
		s, err := NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case BackendSQLite:
		s, err := OpenSQLiteStore(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
