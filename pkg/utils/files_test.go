package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPythonFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{
			name:     "regular python file",
			filename: "main.py",
			expected: true,
		},
		{
			name:     "python file with path",
			filename: "pkg/models/user.py",
			expected: true,
		},
		{
			name:     "stub file",
			filename: "typing_extensions.pyi",
			expected: true,
		},
		{
			name:     "windowed script",
			filename: "gui.pyw",
			expected: true,
		},
		{
			name:     "compiled file",
			filename: "main.pyc",
			expected: false,
		},
		{
			name:     "file with .py in middle",
			filename: "file.py.txt",
			expected: false,
		},
		{
			name:     "empty string",
			filename: "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result := IsPythonFile(tt.filename)
			req.Equal(tt.expected, result, "IsPythonFile(%q) = %v, want %v", tt.filename, result, tt.expected)
		})
	}
}

func TestIsStdio(t *testing.T) {
	req := require.New(t)
	req.True(IsStdio(""))
	req.True(IsStdio("-"))
	req.False(IsStdio("main.py"))
}

func TestIsDirectory(t *testing.T) {
	req := require.New(t)
	// Create a temporary directory for testing
	tempDir := t.TempDir()

	// Create a temporary file
	tempFile := filepath.Join(tempDir, "test.py")
	err := os.WriteFile(tempFile, []byte("import os\n"), 0644)
	req.NoError(err, "Failed to create temp file: %v", err)

	tests := []struct {
		name      string
		path      string
		expected  bool
		expectErr bool
	}{
		{
			name:      "existing directory",
			path:      tempDir,
			expected:  true,
			expectErr: false,
		},
		{
			name:      "existing file",
			path:      tempFile,
			expected:  false,
			expectErr: false,
		},
		{
			name:      "non-existent path",
			path:      "/non/existent/path",
			expected:  false,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := IsDirectory(tt.path)

			if tt.expectErr {
				req.Error(err, "IsDirectory(%q) expected error, got nil", tt.path)
			} else {
				req.NoError(err, "IsDirectory(%q) unexpected error: %v", tt.path, err)
				req.Equal(tt.expected, result, "IsDirectory(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestReadInput(t *testing.T) {
	req := require.New(t)
	tempFile := filepath.Join(t.TempDir(), "in.py")
	req.NoError(os.WriteFile(tempFile, []byte("import sys\n"), 0644))

	data, err := ReadInput(tempFile, strings.NewReader("ignored"))
	req.NoError(err)
	req.Equal("import sys\n", string(data))

	data, err = ReadInput("-", strings.NewReader("import os\n"))
	req.NoError(err)
	req.Equal("import os\n", string(data))

	data, err = ReadInput("", strings.NewReader("import re\n"))
	req.NoError(err)
	req.Equal("import re\n", string(data))

	_, err = ReadInput("/non/existent/file.py", nil)
	req.Error(err)
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates a new file", func(t *testing.T) {
		req := require.New(t)
		path := filepath.Join(t.TempDir(), "out.py")
		req.NoError(WriteFileAtomic(path, []byte("import os\n")))

		data, err := os.ReadFile(path)
		req.NoError(err)
		req.Equal("import os\n", string(data))
	})

	t.Run("replaces an existing file and keeps its mode", func(t *testing.T) {
		req := require.New(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "out.py")
		req.NoError(os.WriteFile(path, []byte("old content that is longer\n"), 0600))

		req.NoError(WriteFileAtomic(path, []byte("import sys\n")))

		data, err := os.ReadFile(path)
		req.NoError(err)
		req.Equal("import sys\n", string(data))

		info, err := os.Stat(path)
		req.NoError(err)
		req.Equal(os.FileMode(0600), info.Mode().Perm())

		entries, err := os.ReadDir(dir)
		req.NoError(err)
		req.Len(entries, 1, "temporary files should not be left behind")
	})

	t.Run("fails for a missing directory", func(t *testing.T) {
		req := require.New(t)
		err := WriteFileAtomic("/non/existent/dir/out.py", []byte("x"))
		req.Error(err)
	})
}
