package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/siyuan-infoblox/impsort/pkg/errors"
)

// DefaultPython is the interpreter probed when none is configured.
const DefaultPython = "python3"

// DefaultProbeTimeout bounds the interpreter probe.
const DefaultProbeTimeout = 10 * time.Second

// probeScript lists standard-library modules and the search path. It only
// reads interpreter metadata and directory listings, so no module other
// than the probe's own dependencies is ever imported.
const probeScript = `
import json, os, pkgutil, sys, sysconfig
stdlib = sysconfig.get_paths()["stdlib"]
names = set(sys.builtin_module_names)
names.update(getattr(sys, "stdlib_module_names", ()))
for d in (stdlib, os.path.join(stdlib, "lib-dynload")):
    if os.path.isdir(d):
        names.update(m.name for m in pkgutil.iter_modules([d]))
json.dump({"stdlib": sorted(names), "path": [p for p in sys.path if p]}, sys.stdout)
`

// ProbeResult is what the interpreter reports about itself.
type ProbeResult struct {
	Stdlib []string `json:"stdlib"`
	Path   []string `json:"path"`
}

// Options configures Discover.
type Options struct {
	// Python is the interpreter to probe; empty disables probing.
	Python string
	// PythonPath is used as search path when probing is disabled or fails.
	PythonPath string
	// Timeout bounds the probe; zero means DefaultProbeTimeout.
	Timeout time.Duration
}

// Probe runs the interpreter and decodes its report.
func Probe(ctx context.Context, python string) (*ProbeResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, python, "-c", probeScript)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%s: %w: %s", errors.ErrMsgFailedToProbePython, err, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToProbePython, err)
	}

	var result ProbeResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToDecodeProbe, err)
	}
	return &result, nil
}

// Discover builds the Environment for this run. It never fails: when the
// interpreter cannot be probed it falls back to the static standard module
// table and opts.PythonPath, and records the probe error.
func Discover(ctx context.Context, opts Options) *Environment {
	if opts.Python == "" {
		return FromPythonPath(opts.PythonPath)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := Probe(ctx, opts.Python)
	if err != nil {
		env := FromPythonPath(opts.PythonPath)
		env.probeErr = err
		return env
	}

	env := NewEnvironment(result.Stdlib, result.Path)
	env.origin = OriginInterpreter
	return env
}
