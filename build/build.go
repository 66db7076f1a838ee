// Package build reports what a binary was built from. Release builds inject the details
// as JSON with -ldflags; otherwise they are read from the module build info Go embeds.
package build

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
)

// injected is set at link time:
//
//	go build -ldflags "-X 'github.com/amp-labs/amp-stash/build.injected={\"version\":\"v1.2.0\"}'"
var injected string //nolint:gochecknoglobals

// Info contains build metadata.
type Info struct {
	Version      string            `json:"version"`
	GitCommit    string            `json:"git_commit"` //nolint:tagliatelle
	GitDate      string            `json:"git_date"`   //nolint:tagliatelle
	Modified     bool              `json:"modified"`
	GoVersion    string            `json:"go_version"` //nolint:tagliatelle
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Parse deserializes a JSON string into build Info.
// Returns (nil, false) if the input is empty, "{}", or fails to parse.
func Parse(js string) (*Info, bool) {
	if js == "" || js == "{}" {
		return nil, false
	}

	var info Info

	if err := json.Unmarshal([]byte(js), &info); err != nil {
		slog.Warn("Failed to parse build info from JSON",
			"data", js,
			"error", err)

		return nil, false
	}

	return &info, true
}

// FromBuildInfo extracts Info from the build info embedded by the Go toolchain.
func FromBuildInfo(bi *debug.BuildInfo) *Info {
	info := &Info{
		Version:   bi.Main.Version,
		GoVersion: bi.GoVersion,
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
		case "vcs.time":
			info.GitDate = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}

	if len(bi.Deps) > 0 {
		info.Dependencies = make(map[string]string, len(bi.Deps))

		for _, dep := range bi.Deps {
			if dep.Replace != nil {
				dep = dep.Replace
			}

			info.Dependencies[dep.Path] = dep.Version
		}
	}

	return info
}

// Current returns the info injected at link time, falling back to the embedded build info.
func Current() *Info {
	if info, ok := Parse(injected); ok {
		return info
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return &Info{Version: "(unknown)"}
	}

	return FromBuildInfo(bi)
}

// Summary renders a one-line description such as "stashbench v1.2.0 (abc1234, go1.25.0)".
func (i *Info) Summary(program string) string {
	version := i.Version
	if version == "" {
		version = "(devel)"
	}

	details := make([]string, 0, 3) //nolint:mnd

	if i.GitCommit != "" {
		commit := i.GitCommit
		if len(commit) > 7 { //nolint:mnd
			commit = commit[:7]
		}

		if i.Modified {
			commit += "-dirty"
		}

		details = append(details, commit)
	}

	if i.GitDate != "" {
		details = append(details, i.GitDate)
	}

	if i.GoVersion != "" {
		details = append(details, i.GoVersion)
	}

	if len(details) == 0 {
		return fmt.Sprintf("%s %s", program, version)
	}

	return fmt.Sprintf("%s %s (%s)", program, version, strings.Join(details, ", "))
}
