package cli

import (
	"context"
	"fmt"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/history"
)

// openHistoryStore opens the configured history backend. The returned
// function releases it.
func openHistoryStore(ctx context.Context) (history.Store, func() error, error) {
	cfg := config.GetGlobalConfig()
	store, closeFn, err := history.Open(ctx, cfg.History.Backend, cfg.HistoryPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s history store: %w", cfg.History.Backend, err)
	}
	return store, closeFn, nil
}

// closeStore runs closeFn and logs any failure.
func closeStore(ctx context.Context, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Warn().Ctx(ctx).Err(err).Msg("closing history store")
	}
}
