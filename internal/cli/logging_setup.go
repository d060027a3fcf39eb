package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/logging"
)

// logSession is the logging state of one command invocation.
type logSession struct {
	result  logging.LogPathResult
	started time.Time
}

// setupLogging builds the CLI logger from config with --debug applied,
// attaches it and a trace id to the command context, and reports where
// logs go.
func setupLogging(cmd *cobra.Command) *logSession {
	loggingCfg := config.GetLoggingConfig()

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	session := &logSession{
		result:  logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig()),
		started: time.Now(),
	}
	logger = logging.ComponentLogger(session.result.Logger, "cli")

	switch {
	case session.result.UsingFile:
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), session.result.FilePath)
	case session.result.FallbackUsed:
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), session.result.FallbackReason)
	}

	traceID := logging.GetOrGenerateTraceID(cmd.Context())
	ctx := logging.ContextWithTraceID(cmd.Context(), traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	cfg := config.GetGlobalConfig()
	logger.Debug().
		Ctx(ctx).
		Str("command", cmd.CommandPath()).
		Str("trace_id", traceID).
		Str("config_path", cfg.ConfigPath()).
		Str("history_backend", cfg.History.Backend).
		Msg("command started")

	return session
}

// cleanupLogging records the command duration and closes the log file.
func cleanupLogging(cmd *cobra.Command, session *logSession) error {
	if session == nil {
		return nil
	}
	logger.Debug().
		Ctx(cmd.Context()).
		Str("command", cmd.CommandPath()).
		Dur("elapsed", time.Since(session.started)).
		Msg("command finished")
	return session.result.Close()
}
