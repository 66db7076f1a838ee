// Command stashbench replays the classic slot table workloads against stash.Stash,
// uniquestash.UniqueStash and a plain Go map, and reports throughput.
//
// Usage:
//
//	stashbench --workload put_and_take --table all --iterations 1000000 --workers 4
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/amp-labs/amp-stash/logger"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}

		fmt.Fprintln(os.Stderr, err) //nolint:errcheck
		os.Exit(2)
	}

	logger.ConfigureLoggingWithOptions(logger.Options{
		Subsystem:   "stashbench",
		JSON:        cfg.json,
		MinLevel:    cfg.logLevel,
		LegacyLevel: slog.LevelInfo,
		Output:      os.Stderr,
	})

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		slog.Error("benchmark failed", "error", err)
		os.Exit(1)
	}
}
