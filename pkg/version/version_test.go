package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	req := require.New(t)

	info := Get("")
	req.Equal(Version, info.Version)
	req.NotEmpty(info.GoVersion)
	req.Contains(info.Platform, "/")

	req.Equal("v1.2.3", Get("v1.2.3").Version)
	req.Equal(Version, Get("(devel)").Version)
}

func TestInfo_String(t *testing.T) {
	req := require.New(t)
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	info := Info{Version: "v1.0.0", GitCommit: "abc123", GitTag: "v1.0.0", BuildDate: "2024-01-01", GoVersion: "go1.24", Platform: "linux/amd64"}
	req.Equal("impsort version v1.0.0\nGit commit: abc123\nGit tag: v1.0.0\nBuild date: 2024-01-01\nGo version: go1.24\nPlatform: linux/amd64", info.String())
}
