package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeSitePackages creates a fake site-packages directory.
func makeSitePackages(t *testing.T) string {
	t.Helper()
	req := require.New(t)
	dir := t.TempDir()

	req.NoError(os.MkdirAll(filepath.Join(dir, "requests"), 0755))
	req.NoError(os.WriteFile(filepath.Join(dir, "requests", "__init__.py"), nil, 0644))
	req.NoError(os.MkdirAll(filepath.Join(dir, "google", "protobuf"), 0755))
	req.NoError(os.WriteFile(filepath.Join(dir, "six.py"), nil, 0644))
	req.NoError(os.WriteFile(filepath.Join(dir, "legacy.pyc"), nil, 0644))
	req.NoError(os.WriteFile(filepath.Join(dir, "_speedups.cpython-311-x86_64-linux-gnu.so"), nil, 0644))
	req.NoError(os.WriteFile(filepath.Join(dir, "README.txt"), nil, 0644))
	return dir
}

func TestLocate(t *testing.T) {
	site := makeSitePackages(t)
	tests := []struct {
		name       string
		module     string
		searchPath []string
		expected   bool
	}{
		{"regular package", "requests", []string{site}, true},
		{"namespace package", "google", []string{site}, true},
		{"source module", "six", []string{site}, true},
		{"bytecode module", "legacy", []string{site}, true},
		{"tagged extension module", "_speedups", []string{site}, true},
		{"missing module", "numpy", []string{site}, false},
		{"data file is not a module", "README", []string{site}, false},
		{"found in later entry", "six", []string{"/non/existent/path", site}, true},
		{"empty search path", "six", nil, false},
		{"path traversal", "../six", []string{site}, false},
		{"glob pattern", "s*", []string{site}, false},
		{"empty name", "", []string{site}, false},
		{"search path entry is a file", "six", []string{filepath.Join(site, "six.py")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result := Locate(tt.module, tt.searchPath)
			req.Equal(tt.expected, result, "Locate(%q)", tt.module)
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	site := makeSitePackages(t)
	c := New(NewEnvironment([]string{"_custom_builtin"}, []string{site}))

	tests := []struct {
		name     string
		module   string
		expected Provenance
	}{
		{"future", "__future__", Future},
		{"stdlib", "os", StandardLibrary},
		{"stdlib submodule", "os.path", StandardLibrary},
		{"historical stdlib", "itertools", StandardLibrary},
		{"extra stdlib name", "_custom_builtin", StandardLibrary},
		{"third party", "requests", ThirdParty},
		{"third party submodule", "google.protobuf.message", ThirdParty},
		{"unresolvable", "myproject", Other},
		{"relative import without module", "", Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.expected, c.Classify(tt.module), "Classify(%q)", tt.module)
		})
	}
}

func TestClassifier_memoizes(t *testing.T) {
	req := require.New(t)
	calls := 0
	c := New(NewEnvironment(nil, []string{"/some/path"}))
	c.locate = func(name string, searchPath []string) bool {
		calls++
		return name == "requests"
	}

	req.Equal(ThirdParty, c.Classify("requests"))
	req.Equal(ThirdParty, c.Classify("requests.adapters"))
	req.Equal(Other, c.Classify("mypkg"))
	req.Equal(Other, c.Classify("mypkg.sub"))
	req.Equal(2, calls, "each root should be located once")

	// the standard library never reaches the search path
	req.Equal(StandardLibrary, c.Classify("json"))
	req.Equal(2, calls)
}

func TestProvenance_String(t *testing.T) {
	req := require.New(t)
	req.Equal("future", Future.String())
	req.Equal("stdlib", StandardLibrary.String())
	req.Equal("thirdparty", ThirdParty.String())
	req.Equal("other", Other.String())
	req.Equal("unknown", Provenance(42).String())
}
