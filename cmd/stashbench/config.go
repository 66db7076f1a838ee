package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/amp-labs/amp-stash/hashing"
	"github.com/spf13/pflag"
)

const (
	defaultIterations = 100_000
	defaultSize       = 100
)

var (
	workloadNames = []string{ //nolint:gochecknoglobals
		"put_and_take", "put_and_take_unchecked", "get", "iter", "iter_sparse",
	}

	tableNames = []string{"stash", "unique", "map"} //nolint:gochecknoglobals
)

type config struct {
	workloads  []string
	tables     []string
	iterations int
	size       int
	workers    int
	shared     bool
	json       bool
	metrics    bool
	version    bool
	quiet      bool
	logLevel   slog.Level
	hashName   string
	hashFunc   hashing.HashFunc
}

func parseFlags(args []string, output io.Writer) (config, error) {
	var (
		cfg      config
		workload string
		table    string
		level    string
	)

	flags := pflag.NewFlagSet("stashbench", pflag.ContinueOnError)
	flags.SetOutput(output)

	flags.StringVarP(&workload, "workload", "w", "all",
		"workload to run: all, put_and_take, put_and_take_unchecked, get, iter, iter_sparse")
	flags.StringVarP(&table, "table", "t", "all", "table to measure: all, stash, unique, map")
	flags.IntVarP(&cfg.iterations, "iterations", "n", defaultIterations, "iterations per worker")
	flags.IntVar(&cfg.size, "size", defaultSize, "number of entries each worker prefills")
	flags.IntVar(&cfg.workers, "workers", 1, "number of concurrent workers")
	flags.BoolVar(&cfg.shared, "shared", false, "share one thread-safe table between all workers")
	flags.BoolVar(&cfg.json, "json", false, "print results and logs as JSON")
	flags.BoolVar(&cfg.metrics, "metrics", false, "instrument the tables and print their prometheus metrics")
	flags.BoolVar(&cfg.version, "version", false, "print build information and exit")
	flags.BoolVarP(&cfg.quiet, "quiet", "q", false, "suppress progress logs")
	flags.StringVar(&level, "log-level", "info", "minimum log level: debug, info, warn, error")
	flags.StringVar(&cfg.hashName, "hash", "xxh3",
		"hash used to fingerprint the keys each table issues: "+strings.Join(hashing.Names, ", "))

	if err := flags.Parse(args); err != nil {
		return config{}, err
	}

	if err := cfg.logLevel.UnmarshalText([]byte(level)); err != nil {
		return config{}, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	var err error

	if cfg.hashFunc, err = hashing.ByName(cfg.hashName); err != nil {
		return config{}, fmt.Errorf("%w: --hash: %w", errInvalidFlag, err)
	}

	if cfg.workloads, err = selectNames("workload", workload, workloadNames); err != nil {
		return config{}, err
	}

	if cfg.tables, err = selectNames("table", table, tableNames); err != nil {
		return config{}, err
	}

	if cfg.iterations <= 0 || cfg.size <= 0 || cfg.workers <= 0 {
		return config{}, fmt.Errorf("%w: --iterations, --size and --workers must be positive", errInvalidFlag)
	}

	return cfg, nil
}

func selectNames(flag, value string, known []string) ([]string, error) {
	if value == "all" {
		return known, nil
	}

	if !slices.Contains(known, value) {
		return nil, fmt.Errorf("%w: unknown --%s %q", errInvalidFlag, flag, value)
	}

	return []string{value}, nil
}
