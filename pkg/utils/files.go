package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StdioPath selects standard input or output in place of a file path.
const StdioPath = "-"

// pythonSuffixes are the file suffixes of Python sources and stubs
var pythonSuffixes = []string{".py", ".pyi", ".pyw"}

// IsPythonFile checks if a file is a Python source or stub file
func IsPythonFile(filename string) bool {
	for _, suffix := range pythonSuffixes {
		if strings.HasSuffix(filename, suffix) {
			return true
		}
	}
	return false
}

// IsStdio reports whether path stands for standard input or output.
func IsStdio(path string) bool {
	return path == "" || path == StdioPath
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// ReadInput reads the whole input, from stdin when path is empty or "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if IsStdio(path) {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// WriteFileAtomic replaces path with data. The content goes to a temporary
// file in the same directory first, so path is never left half written.
// An existing file keeps its permissions.
func WriteFileAtomic(path string, data []byte) (err error) {
	perm := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
