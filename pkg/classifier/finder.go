package classifier

import (
	"os"
	"path/filepath"
	"strings"
)

// moduleSuffixes are the file suffixes a module can be loaded from.
var moduleSuffixes = []string{".py", ".pyc", ".pyw", ".so", ".pyd"}

// Locate reports whether a top-level module can be found on the search
// path. It only looks at the filesystem and never runs module code. Any
// lookup error counts as not found.
func Locate(name string, searchPath []string) bool {
	if !isModuleName(name) {
		return false
	}
	for _, dir := range searchPath {
		if locateIn(dir, name) {
			return true
		}
	}
	return false
}

func locateIn(dir, name string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		// zip and egg archives on the path are not inspected
		return false
	}

	base := filepath.Join(dir, name)
	if info, err := os.Stat(base); err == nil && info.IsDir() {
		// regular and namespace packages alike
		return true
	}

	for _, suffix := range moduleSuffixes {
		if isFile(base + suffix) {
			return true
		}
	}

	// extension modules carry a platform tag: name.cpython-311-x86_64-linux-gnu.so
	for _, suffix := range []string{".so", ".pyd"} {
		matches, err := filepath.Glob(filepath.Join(dir, name+".*"+suffix))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// isModuleName rejects names that could escape the search path directory
// or match glob patterns.
func isModuleName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\*?[]`+string(filepath.Separator))
}
