package classifier

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/impsort/pkg/errors"
)

func TestNewEnvironment(t *testing.T) {
	req := require.New(t)
	env := NewEnvironment([]string{"_extra"}, []string{"", "/a", "", "/b"})

	req.True(env.IsStdlib("os"), "static table is always included")
	req.True(env.IsStdlib("operator"), "historical modules are always included")
	req.True(env.IsStdlib("_extra"))
	req.False(env.IsStdlib("requests"))
	req.Equal([]string{"/a", "/b"}, env.SearchPath())
	req.Equal(OriginStatic, env.Origin())
	req.NoError(env.ProbeError())

	// callers cannot mutate the environment through the returned slice
	paths := env.SearchPath()
	paths[0] = "/mutated"
	req.Equal([]string{"/a", "/b"}, env.SearchPath())

	modules := env.StdlibModules()
	req.Contains(modules, "_extra")
	req.IsIncreasing(modules)
}

func TestFromPythonPath(t *testing.T) {
	req := require.New(t)
	req.Empty(FromPythonPath("").SearchPath())

	list := strings.Join([]string{"/x", "", "/y"}, string(os.PathListSeparator))
	req.Equal([]string{"/x", "/y"}, FromPythonPath(list).SearchPath())
}

func TestDiscover_withoutInterpreter(t *testing.T) {
	req := require.New(t)
	env := Discover(context.Background(), Options{PythonPath: "/only"})
	req.Equal(OriginStatic, env.Origin())
	req.NoError(env.ProbeError())
	req.Equal([]string{"/only"}, env.SearchPath())
}

func TestDiscover_probeFailureFallsBack(t *testing.T) {
	req := require.New(t)
	missing := filepath.Join(t.TempDir(), "no-such-python")
	env := Discover(context.Background(), Options{Python: missing, PythonPath: "/fallback"})

	req.Equal(OriginStatic, env.Origin())
	req.Error(env.ProbeError())
	req.Equal([]string{"/fallback"}, env.SearchPath())
	req.True(env.IsStdlib("sys"))
}

// fakePython writes an executable shell script standing in for the
// interpreter.
func fakePython(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "python3")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755))
	return path
}

func TestProbe(t *testing.T) {
	req := require.New(t)
	python := fakePython(t, `echo '{"stdlib": ["_probed_only", "os"], "path": ["/usr/lib/python3/site-packages", "/home/me/lib"]}'`)

	result, err := Probe(context.Background(), python)
	req.NoError(err)
	req.Equal([]string{"_probed_only", "os"}, result.Stdlib)
	req.Equal([]string{"/usr/lib/python3/site-packages", "/home/me/lib"}, result.Path)
}

func TestDiscover_fromInterpreter(t *testing.T) {
	req := require.New(t)
	python := fakePython(t, `echo '{"stdlib": ["_probed_only"], "path": ["", "/site", "/lib"]}'`)

	env := Discover(context.Background(), Options{Python: python, PythonPath: "/ignored"})
	req.Equal(OriginInterpreter, env.Origin())
	req.NoError(env.ProbeError())
	req.True(env.IsStdlib("_probed_only"))
	req.True(env.IsStdlib("sys"), "static table is merged with the probed names")
	req.Equal([]string{"/site", "/lib"}, env.SearchPath())
}

func TestDiscover_undecodableReport(t *testing.T) {
	req := require.New(t)
	python := fakePython(t, `echo 'Python 2.7.18'`)

	env := Discover(context.Background(), Options{Python: python, PythonPath: "/fallback"})
	req.Equal(OriginStatic, env.Origin())
	req.Error(env.ProbeError())
	req.Contains(env.ProbeError().Error(), errors.ErrMsgFailedToDecodeProbe)
	req.False(env.IsStdlib("_probed_only"))
	req.Equal([]string{"/fallback"}, env.SearchPath())
}

func TestDiscover_failingInterpreter(t *testing.T) {
	req := require.New(t)
	python := fakePython(t, `echo 'No module named sysconfig' >&2; exit 1`)

	env := Discover(context.Background(), Options{Python: python})
	req.Equal(OriginStatic, env.Origin())
	req.Error(env.ProbeError())
	req.Contains(env.ProbeError().Error(), errors.ErrMsgFailedToProbePython)
	req.Contains(env.ProbeError().Error(), "No module named sysconfig")
	req.Empty(env.SearchPath())
}

func TestDiscover_timeout(t *testing.T) {
	req := require.New(t)
	python := fakePython(t, `exec sleep 5`)

	env := Discover(context.Background(), Options{Python: python, Timeout: 50 * time.Millisecond})
	req.Equal(OriginStatic, env.Origin())
	req.Error(env.ProbeError())
}
