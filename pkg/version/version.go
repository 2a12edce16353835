package version

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
)

var (
	// These variables are set at build time using ldflags
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildDate = "unknown"
)

var versionColor = color.New(color.FgGreen, color.Bold)

// Info holds version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GitTag    string `json:"gitTag"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns version information. A version read from the module build
// info replaces the "dev" default.
func Get(buildVersion string) Info {
	v := Version
	if v == "dev" && buildVersion != "" && buildVersion != "(devel)" {
		v = buildVersion
	}
	return Info{
		Version:   v,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("impsort version %s\nGit commit: %s\nGit tag: %s\nBuild date: %s\nGo version: %s\nPlatform: %s",
		versionColor.Sprint(i.Version), i.GitCommit, i.GitTag, i.BuildDate, i.GoVersion, i.Platform)
}
