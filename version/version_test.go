package version

import (
	"runtime/debug"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func stub(t *testing.T, version, commit, buildTime string, bi *debug.BuildInfo) {
	t.Helper()
	origVersion, origCommit, origBuildTime, origRead := Version, GitCommit, BuildTime, readBuildInfo
	t.Cleanup(func() {
		Version, GitCommit, BuildTime, readBuildInfo = origVersion, origCommit, origBuildTime, origRead
	})
	Version, GitCommit, BuildTime = version, commit, buildTime
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestGetFromLinkerVariables(t *testing.T) {
	stub(t, "v1.2.0", "abcdef1234567", "2026-01-15T10:30:00Z", nil)

	got := Get()
	want := Info{
		Version:   "v1.2.0",
		GitCommit: "abcdef1234567",
		BuildDate: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() (-want +got):\n%s", diff)
	}
	if !got.IsRelease() {
		t.Error("a stamped clean build is a release")
	}
	if got.Short() != "v1.2.0-abcdef1" {
		t.Errorf("Short() = %q", got.Short())
	}
}

func TestGetFromBuildInfo(t *testing.T) {
	stub(t, "dev", "", "", &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Main:      debug.Module{Path: "github.com/kbukum/lazyflow", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-03-01T08:00:00Z"},
		},
	})

	got := Get()
	if got.Version != "dev" || got.GoVersion != "go1.26.0" || got.Module != "github.com/kbukum/lazyflow" {
		t.Errorf("unexpected info %+v", got)
	}
	if !got.Dirty || got.IsRelease() {
		t.Error("a modified tree is dirty and not a release")
	}
	if got.Short() != "dev-0123456-dirty" {
		t.Errorf("Short() = %q", got.Short())
	}
	if want := "dev-0123456-dirty go1.26.0 (built 2026-03-01T08:00:00Z)"; got.String() != want {
		t.Errorf("String() = %q, want %q", got.String(), want)
	}
}

func TestGetModuleVersion(t *testing.T) {
	stub(t, "dev", "", "", &debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}})
	if got := Get().Version; got != "v0.3.1" {
		t.Errorf("module version should replace dev, got %q", got)
	}
}

func TestLinkerVariablesWin(t *testing.T) {
	stub(t, "v2.0.0", "feedface", "", &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0000000000"}},
	})
	got := Get()
	if got.Version != "v2.0.0" || got.GitCommit != "feedface" {
		t.Errorf("linker values must take precedence, got %+v", got)
	}
}

func TestFields(t *testing.T) {
	info := Info{Version: "v1.0.0", GitCommit: "abcdef1234", GoVersion: "go1.26.0"}
	want := map[string]interface{}{
		"version":    "v1.0.0",
		"go_version": "go1.26.0",
		"dirty":      false,
		"git_commit": "abcdef1",
	}
	if diff := cmp.Diff(want, info.Fields()); diff != "" {
		t.Errorf("Fields() (-want +got):\n%s", diff)
	}
}
