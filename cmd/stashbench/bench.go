package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-stash/build"
	stasherrors "github.com/amp-labs/amp-stash/errors"
	"github.com/amp-labs/amp-stash/hashing"
	"github.com/amp-labs/amp-stash/logger"
	"github.com/amp-labs/amp-stash/stash"
	"github.com/amp-labs/amp-stash/uniquestash"
	"go.uber.org/atomic"
)

type result struct {
	Table       string        `json:"table"`
	Workload    string        `json:"workload"`
	Workers     int           `json:"workers"`
	Shared      bool          `json:"shared"`
	Ops         int64         `json:"ops"`
	Elapsed     time.Duration `json:"elapsedNs"`
	NsPerOp     float64       `json:"nsPerOp"`
	OpsPerSec   float64       `json:"opsPerSec"`
	Fingerprint string        `json:"fingerprint"`
}

func run(ctx context.Context, cfg config, out io.Writer) error {
	if cfg.version {
		return writeVersion(out, cfg, build.Current())
	}

	if cfg.quiet {
		ctx = logger.WithMuted(ctx, true)
	}

	var results []result

	for _, workload := range cfg.workloads {
		for _, table := range cfg.tables {
			ctx := logger.With(ctx, "workload", workload, "table", table)
			log := logger.Get(ctx)

			log.Debug("running workload", "workers", cfg.workers)

			res, err := benchmark(ctx, cfg, table, workload)
			if errors.Is(err, errUnsupported) {
				log.Info("skipping workload", "shared", cfg.shared)

				continue
			}

			if err != nil {
				return logger.AnnotateError(err, "workload", workload, "table", table)
			}

			log.Debug("workload finished", "ops", res.Ops, "fingerprint", res.Fingerprint)

			results = append(results, res)
		}
	}

	if err := writeResults(out, cfg, results); err != nil {
		return err
	}

	if cfg.metrics {
		return writeMetrics(out)
	}

	return nil
}

func benchmark(ctx context.Context, cfg config, table, workload string) (result, error) {
	var metricsName string
	if cfg.metrics {
		metricsName = "stashbench_" + workload
	}

	switch table {
	case "stash":
		return measure(cfg, table, workload, hashKey, func() target[int] {
			s := stash.New[int](stash.WithCapacity(cfg.size), stash.WithMetrics(metricsName))
			if cfg.shared {
				return stash.NewThreadSafe(s)
			}

			return s
		})
	case "unique":
		log := logger.Get(logger.WithSubsystem(ctx, "uniquestash"))

		return measure(cfg, table, workload, hashTag, func() target[uniquestash.Tag] {
			s := uniquestash.New[int](
				uniquestash.WithCapacity(cfg.size),
				uniquestash.WithMetrics(metricsName),
				uniquestash.WithLogger(log))
			if cfg.shared {
				return uniquestash.NewThreadSafe(s)
			}

			return s
		})
	case "map":
		return measure(cfg, table, workload, hashKey, func() target[int] {
			return newMapTable(cfg.shared)
		})
	default:
		return result{}, fmt.Errorf("%w: unknown table %q", errInvalidFlag, table)
	}
}

func hashKey(key int) hashing.Hashable {
	return hashing.Uint64(key) //nolint:gosec
}

func hashTag(tag uniquestash.Tag) hashing.Hashable {
	return tag
}

// measure runs the workload on cfg.workers pool workers, each against its own table unless
// cfg.shared is set, then fingerprints a fresh table.
func measure[K any](
	cfg config, table, workload string, hashable func(K) hashing.Hashable, newTarget func() target[K],
) (result, error) {
	var shared target[K]
	if cfg.shared {
		shared = newTarget()
	}

	pool := pond.NewPool(cfg.workers)
	defer pool.StopAndWait()

	ops := atomic.NewInt64(0)
	tasks := make([]pond.Task, cfg.workers)
	start := time.Now()

	for i := range tasks {
		worker := shared
		if worker == nil {
			worker = newTarget()
		}

		tasks[i] = pool.SubmitErr(func() error {
			n, err := runWorkload(workload, worker, cfg.iterations, cfg.size)
			ops.Add(n)

			return err
		})
	}

	var errs stasherrors.Collection

	for _, task := range tasks {
		errs.Add(task.Wait())
	}

	elapsed := time.Since(start)

	if err := errs.GetError(); err != nil {
		return result{}, err
	}

	res := result{
		Table:    table,
		Workload: workload,
		Workers:  cfg.workers,
		Shared:   cfg.shared,
		Ops:      ops.Load(),
		Elapsed:  elapsed,
	}

	digest, err := fingerprint(newTarget(), cfg.size, cfg.hashFunc, hashable)
	if err != nil {
		return result{}, err
	}

	res.Fingerprint = digest

	if res.Ops > 0 {
		res.NsPerOp = float64(elapsed.Nanoseconds()) / float64(res.Ops)
	}

	if elapsed > 0 {
		res.OpsPerSec = float64(res.Ops) / elapsed.Seconds()
	}

	return res, nil
}
