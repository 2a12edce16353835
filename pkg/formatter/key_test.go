package formatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/impsort/pkg/classifier"
	"github.com/siyuan-infoblox/impsort/pkg/pyast"
)

type bogusDeclaration struct{}

func (bogusDeclaration) declaration() {}

func TestKeyOf(t *testing.T) {
	c := newTestClassifier(t, "requests")
	tests := []struct {
		name     string
		decl     Declaration
		expected SortKey
		group    classifier.Provenance
	}{
		{
			name:     "future",
			decl:     &FromImport{Module: "__future__", Names: []pyast.Alias{{Name: "annotations"}}},
			expected: SortKey{Future: 0, Stdlib: 1, ThirdParty: 1, Kind: FromKind, Name: []string{"__future__"}, FromNames: []string{"annotations"}},
			group:    classifier.Future,
		},
		{
			name:     "stdlib plain",
			decl:     &PlainImport{Alias: pyast.Alias{Name: "os.path"}},
			expected: SortKey{Future: 1, Stdlib: 0, ThirdParty: 1, Kind: PlainKind, Name: []string{"os.path"}},
			group:    classifier.StandardLibrary,
		},
		{
			name:     "third party aliased",
			decl:     &PlainImport{Alias: pyast.Alias{Name: "requests", AsName: "r"}},
			expected: SortKey{Future: 1, Stdlib: 1, ThirdParty: 0, Kind: PlainKind, Name: []string{"requests", "r"}},
			group:    classifier.ThirdParty,
		},
		{
			name:     "local from-import with unsorted names",
			decl:     &FromImport{Module: "myapp", Names: []pyast.Alias{{Name: "b"}, {Name: "a", AsName: "z"}}},
			expected: SortKey{Future: 1, Stdlib: 1, ThirdParty: 1, Kind: FromKind, Name: []string{"myapp"}, FromNames: []string{"a", "b"}},
			group:    classifier.Other,
		},
		{
			name:     "relative without module",
			decl:     &FromImport{Level: 2, Names: []pyast.Alias{{Name: "x"}}},
			expected: SortKey{Future: 1, Stdlib: 1, ThirdParty: 1, Kind: FromKind, Name: []string{""}, FromNames: []string{"x"}},
			group:    classifier.Other,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			key, err := KeyOf(c, tt.decl)
			req.NoError(err)
			req.Equal(tt.expected.Group(), key.Group())
			req.Equal(tt.expected.Kind, key.Kind)
			req.Equal(tt.expected.Name, key.Name)
			req.Equal(tt.expected.FromNames, key.FromNames)
			req.Equal(tt.group, key.Provenance())
		})
	}
}

func TestKeyOf_malformed(t *testing.T) {
	req := require.New(t)
	c := newTestClassifier(t)

	_, err := KeyOf(c, bogusDeclaration{})
	req.Error(err)
	req.True(errors.Is(err, ErrMalformedDeclaration))
	req.Contains(err.Error(), "bogusDeclaration")

	_, err = KeyOf(c, nil)
	req.True(errors.Is(err, ErrMalformedDeclaration))
}

func TestSortKey_Compare(t *testing.T) {
	c := newTestClassifier(t, "requests")
	key := func(decl Declaration) SortKey {
		k, err := KeyOf(c, decl)
		require.NoError(t, err)
		return k
	}
	plain := func(name, as string) Declaration {
		return &PlainImport{Alias: pyast.Alias{Name: name, AsName: as}}
	}
	from := func(level int, module string, names ...string) Declaration {
		d := &FromImport{Level: level, Module: module}
		for _, n := range names {
			d.Names = append(d.Names, pyast.Alias{Name: n})
		}
		return d
	}

	tests := []struct {
		name string
		a, b Declaration
		want int
	}{
		{"future before stdlib", from(0, "__future__", "annotations"), plain("abc", ""), -1},
		{"stdlib before third party", plain("sys", ""), plain("requests", ""), -1},
		{"third party before local", plain("requests", ""), plain("aaa", ""), -1},
		{"module name before kind", from(0, "abc", "x"), plain("os", ""), -1},
		{"kind on equal module", plain("os", ""), from(0, "os", "path"), -1},
		{"no alias before alias", plain("os", ""), plain("os", "o"), -1},
		{"aliases compare", plain("os", "a"), plain("os", "b"), -1},
		{"from names break ties", from(1, "m", "b"), from(2, "m", "a"), 1},
		{"level breaks the last tie", from(2, "m", "a"), from(1, "m", "a"), 1},
		{"equal", plain("os", ""), plain("os", ""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			a, b := key(tt.a), key(tt.b)
			req.Equal(tt.want, a.Compare(b))
			req.Equal(-tt.want, b.Compare(a), "Compare must be antisymmetric")
		})
	}
}
