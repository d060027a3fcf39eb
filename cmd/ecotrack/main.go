// Command ecotrack estimates personal carbon footprints, tracks them over
// time and reports local air quality.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/ecotrack/internal/cli"
	"github.com/rshade/ecotrack/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	err := root.ExecuteContext(ctx)
	if err != nil {
		var goalErr *cli.GoalExitError
		if !errors.As(err, &goalErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, goalErr.Reason)
		}
	}
	return extractExitCode(err)
}

// extractExitCode maps err to an exit code: 0 for nil, the carried code for
// a GoalExitError and 1 otherwise.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	var goalErr *cli.GoalExitError
	if errors.As(err, &goalErr) {
		return goalErr.ExitCode
	}
	return 1
}
