package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/cli"
	"github.com/rshade/ecotrack/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "ecotrack", root.Use)
	})
}

func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantExitCode int
	}{
		{
			name:         "GoalExitError with exit code 2",
			err:          &cli.GoalExitError{ExitCode: 2, Reason: "above goal"},
			wantExitCode: 2,
		},
		{
			name:         "GoalExitError with exit code 42",
			err:          &cli.GoalExitError{ExitCode: 42, Reason: "above goal"},
			wantExitCode: 42,
		},
		{
			name:         "wrapped GoalExitError",
			err:          errors.Join(errors.New("outer"), &cli.GoalExitError{ExitCode: 3, Reason: "wrapped"}),
			wantExitCode: 3,
		},
		{
			name:         "other errors exit 1",
			err:          errors.New("generic error"),
			wantExitCode: 1,
		},
		{
			name:         "nil error returns 0",
			err:          nil,
			wantExitCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantExitCode, extractExitCode(tt.err))
		})
	}
}
