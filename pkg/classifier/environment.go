package classifier

import (
	"path/filepath"
	"sort"

	"github.com/siyuan-infoblox/impsort/pkg/std"
)

// Origin tells how an Environment was built.
type Origin string

const (
	OriginInterpreter Origin = "interpreter"
	OriginStatic      Origin = "static"
)

// Environment is the read-only view of the Python installation used for
// classification: the set of standard-library module names and the module
// search path. It is built once and never modified.
type Environment struct {
	stdlib     map[string]bool
	searchPath []string
	origin     Origin
	probeErr   error
}

// NewEnvironment creates an environment from extra standard-library names
// and a search path. The built-in standard module table is always included.
// Empty search path entries are dropped.
func NewEnvironment(stdlib []string, searchPath []string) *Environment {
	set := make(map[string]bool, len(std.StandardModules)+len(stdlib))
	for name := range std.StandardModules {
		set[name] = true
	}
	for _, name := range stdlib {
		set[name] = true
	}

	var paths []string
	for _, p := range searchPath {
		if p != "" {
			paths = append(paths, p)
		}
	}

	return &Environment{
		stdlib:     set,
		searchPath: paths,
		origin:     OriginStatic,
	}
}

// FromPythonPath creates a static environment whose search path is the
// content of a PYTHONPATH-style list.
func FromPythonPath(pythonPath string) *Environment {
	if pythonPath == "" {
		return NewEnvironment(nil, nil)
	}
	return NewEnvironment(nil, filepath.SplitList(pythonPath))
}

// IsStdlib checks if a top-level module name is part of the standard library.
func (e *Environment) IsStdlib(root string) bool {
	return e.stdlib[root]
}

// SearchPath returns a copy of the module search path.
func (e *Environment) SearchPath() []string {
	return append([]string(nil), e.searchPath...)
}

// StdlibModules returns the standard-library module names in sorted order.
func (e *Environment) StdlibModules() []string {
	names := make([]string, 0, len(e.stdlib))
	for name := range e.stdlib {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Origin reports whether the environment came from an interpreter probe.
func (e *Environment) Origin() Origin {
	return e.origin
}

// ProbeError is the reason the interpreter probe failed, if it did.
func (e *Environment) ProbeError() error {
	return e.probeErr
}
