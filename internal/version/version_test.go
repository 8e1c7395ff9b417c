package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuildVars(t *testing.T, v, c, d string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = v, c, d
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})
}

func TestGetInfo(t *testing.T) {
	setBuildVars(t, "1.0.0", "abc123def456", "2024-01-01T12:00:00Z")

	info := GetInfo()

	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "abc123def456", info.Commit)
	assert.Equal(t, "2024-01-01T12:00:00Z", info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestFillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2025-03-01T00:00:00Z"},
		},
	}

	t.Run("fills defaults", func(t *testing.T) {
		info := Info{Version: "dev", Commit: "unknown", Date: "unknown"}
		fillFromBuildInfo(&info, bi)
		assert.Equal(t, "v1.2.3", info.Version)
		assert.Equal(t, "0123456789abcdef", info.Commit)
		assert.Equal(t, "2025-03-01T00:00:00Z", info.Date)
	})

	t.Run("ldflags win", func(t *testing.T) {
		info := Info{Version: "2.0.0", Commit: "feedface", Date: "today"}
		fillFromBuildInfo(&info, bi)
		assert.Equal(t, "2.0.0", info.Version)
		assert.Equal(t, "feedface", info.Commit)
		assert.Equal(t, "today", info.Date)
	})

	t.Run("devel build keeps dev", func(t *testing.T) {
		info := Info{Version: "dev"}
		fillFromBuildInfo(&info, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		assert.Equal(t, "dev", info.Version)
	})
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.0.0",
		Commit:    "abc123def456789",
		Date:      "2024-01-01",
		GoVersion: "go1.24.6",
		Platform:  "linux/amd64",
	}

	assert.Equal(t, "GBMS 1.0.0 (abc123de) built 2024-01-01 with go1.24.6 for linux/amd64", info.String())

	info.Commit = "abc"
	assert.True(t, strings.Contains(info.String(), "(abc)"))
}

func TestInfoShort(t *testing.T) {
	assert.Equal(t, "1.0.0", Info{Version: "1.0.0"}.Short())
}

func TestUserAgent(t *testing.T) {
	info := Info{Version: "1.0.0", Platform: "linux/amd64"}
	assert.Equal(t, "gbms-cli/1.0.0 (linux/amd64)", info.UserAgent())
}
