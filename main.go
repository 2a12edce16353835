package main

import (
	"os"
	"runtime/debug"

	"github.com/siyuan-infoblox/impsort/pkg/cmd"
)

func main() {
	var buildVersion string
	if info, ok := debug.ReadBuildInfo(); ok {
		buildVersion = info.Main.Version
	}
	if err := cmd.Execute(buildVersion); err != nil {
		cmd.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
