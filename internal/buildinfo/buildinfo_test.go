package buildinfo

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_Defaults(t *testing.T) {
	info := Get()

	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.Commit)
	assert.NotEmpty(t, info.BuildDate)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, info.Version, Version())
}

func TestFillFromBuildInfo(t *testing.T) {
	t.Parallel()

	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	var info Info
	fillFromBuildInfo(&info, bi)
	assert.Equal(t, "v1.4.0", info.Version)
	assert.Equal(t, "0123456789ab", info.Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildDate)

	// ldflags values win
	info = Info{Version: "v2.0.0", Commit: "abc"}
	fillFromBuildInfo(&info, bi)
	assert.Equal(t, "v2.0.0", info.Version)
	assert.Equal(t, "abc", info.Commit)

	// development builds keep the fallback
	info = Info{}
	fillFromBuildInfo(&info, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	assert.Empty(t, info.Version)
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	s := Info{Version: "v1", Commit: "c0ffee", BuildDate: "today", GoVersion: "go1.26", Platform: "linux/amd64"}.String()
	assert.Equal(t, "v1 (commit c0ffee, built today, go1.26 linux/amd64)", s)
}
