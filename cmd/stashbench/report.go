package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/amp-labs/amp-stash/build"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
)

func writeResults(out io.Writer, cfg config, results []result) error {
	if cfg.json {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(results)
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(writer, "TABLE\tWORKLOAD\tWORKERS\tOPS\tNS/OP\tTHROUGHPUT\tFINGERPRINT") //nolint:errcheck

	for _, res := range results {
		workers := humanize.Comma(int64(res.Workers))
		if res.Shared {
			workers += " (shared)"
		}

		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n", //nolint:errcheck
			res.Table,
			res.Workload,
			workers,
			humanize.Comma(res.Ops),
			res.NsPerOp,
			humanize.SIWithDigits(res.OpsPerSec, 2, "ops/s"),
			res.Fingerprint)
	}

	return writer.Flush()
}

// writeMetrics prints the stash metric families from the default prometheus registry.
func writeMetrics(out io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		name := family.GetName()
		if !strings.HasPrefix(name, "stash_") && !strings.HasPrefix(name, "unique_stash_") {
			continue
		}

		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", label.GetName(), label.GetValue()))
			}

			value := metric.GetGauge().GetValue()
			if counter := metric.GetCounter(); counter != nil {
				value = counter.GetValue()
			}

			if _, err := fmt.Fprintf(out, "%s{%s} %s\n",
				name, strings.Join(labels, ","), humanize.Ftoa(value)); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeVersion(out io.Writer, cfg config, info *build.Info) error {
	if cfg.json {
		return json.NewEncoder(out).Encode(info)
	}

	_, err := fmt.Fprintln(out, info.Summary("stashbench"))

	return err
}
