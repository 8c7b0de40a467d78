// Package build holds build-time version information injected via ldflags
// and the check of library versions the output formats depend on.
//
//	go build -ldflags "-X github.com/KyungWonPark/corrdendro/internal/build.Version=v1.0.0 \
//	  -X github.com/KyungWonPark/corrdendro/internal/build.Commit=$(git rev-parse --short HEAD)"
package build

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"

	"golang.org/x/mod/semver"
)

// These variables are set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// PlotModule renders the figures; plot.New without an error return and
// tick label alignment first appear in MinPlotVersion.
const (
	PlotModule     = "gonum.org/v1/plot"
	MinPlotVersion = "v0.10.0"
)

// ErrVersionTooOld is returned when a linked module is older than required.
var ErrVersionTooOld = errors.New("build: module version too old")

// String returns a formatted version string.
func String() string {
	return fmt.Sprintf("dendrogram %s (%s) built %s %s/%s",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}

// Check verifies the plotting module linked into the running binary.
// Binaries without module information pass.
func Check() error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return CheckDependency(info, PlotModule, MinPlotVersion)
}

// CheckDependency verifies that module path in info is at least min. A
// module that is absent, or whose version is not semantic, passes.
func CheckDependency(info *debug.BuildInfo, path string, min string) error {
	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}

		version := dep.Version
		if dep.Replace != nil && dep.Replace.Version != "" {
			version = dep.Replace.Version
		}
		if !semver.IsValid(version) {
			return nil
		}
		if semver.Compare(version, min) < 0 {
			return fmt.Errorf("%w: %s %s, need %s or later", ErrVersionTooOld, path, version, min)
		}
		return nil
	}
	return nil
}
