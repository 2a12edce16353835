package formatter

import (
	"strings"

	"github.com/siyuan-infoblox/impsort/pkg/pyast"
)

// Declaration is one import statement of the sorted block. The set of
// kinds is closed: *PlainImport and *FromImport.
type Declaration interface {
	declaration()
}

// PlainImport is `import module` or `import module as alias`; it always
// names exactly one module.
type PlainImport struct {
	pyast.Alias
}

// FromImport is `from <dots><module> import a, b as c`. Every name shares
// the same Level and Module.
type FromImport struct {
	Level  int    // leading dots, 0 for an absolute import
	Module string // empty for `from . import x`
	Names  []pyast.Alias
}

func (*PlainImport) declaration() {}
func (*FromImport) declaration()  {}

// Path returns the module reference as written in source.
func (d *FromImport) Path() string {
	return strings.Repeat(".", d.Level) + d.Module
}

// compareAliases orders by name, then by alias with "no alias" first.
func compareAliases(a, b pyast.Alias) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.AsName, b.AsName)
}
