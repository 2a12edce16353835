package formatter

import (
	"cmp"
	"slices"

	"github.com/siyuan-infoblox/impsort/pkg/pyast"
)

const starImport = "*"

type fromKey struct {
	level  int
	module string
}

// Collector accumulates the module-level imports of a parsed file.
// Plain imports are deduplicated by (name, alias); from-imports are merged
// per (level, module).
type Collector struct {
	imports     map[pyast.Alias]struct{}
	fromImports map[fromKey]map[pyast.Alias]struct{}
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		imports:     make(map[pyast.Alias]struct{}),
		fromImports: make(map[fromKey]map[pyast.Alias]struct{}),
	}
}

// Visit records the import statements found directly in the module body.
// Statements not starting at column zero are ignored: moving imports out of
// a block or a `;`-joined line would change what the program does.
func (c *Collector) Visit(mod *pyast.Module) {
	for _, stmt := range mod.Body {
		c.visit(stmt)
	}
}

func (c *Collector) visit(stmt pyast.Stmt) {
	if stmt.Pos().Column != 0 {
		return
	}
	switch s := stmt.(type) {
	case *pyast.Import:
		for _, alias := range s.Names {
			c.imports[alias] = struct{}{}
		}
	case *pyast.ImportFrom:
		key := fromKey{level: s.Level, module: s.Module}
		names, ok := c.fromImports[key]
		if !ok {
			names = make(map[pyast.Alias]struct{})
			c.fromImports[key] = names
		}
		for _, alias := range s.Names {
			names[alias] = struct{}{}
		}
	}
}

// Counts returns the number of distinct plain imports and of merged
// from-import modules collected so far.
func (c *Collector) Counts() (plain, from int) {
	return len(c.imports), len(c.fromImports)
}

// Declarations returns one PlainImport per collected module and one
// FromImport per (level, module), names sorted. A star import cannot share
// a statement with other names, so it gets its own FromImport.
func (c *Collector) Declarations() []Declaration {
	keys := make([]fromKey, 0, len(c.fromImports))
	for key := range c.fromImports {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b fromKey) int {
		if n := cmp.Compare(a.level, b.level); n != 0 {
			return n
		}
		return cmp.Compare(a.module, b.module)
	})

	var decls []Declaration
	for _, key := range keys {
		var names []pyast.Alias
		star := false
		for alias := range c.fromImports[key] {
			if alias.Name == starImport {
				star = true
				continue
			}
			names = append(names, alias)
		}
		if star {
			decls = append(decls, &FromImport{Level: key.level, Module: key.module, Names: []pyast.Alias{{Name: starImport}}})
		}
		if len(names) > 0 {
			slices.SortFunc(names, compareAliases)
			decls = append(decls, &FromImport{Level: key.level, Module: key.module, Names: names})
		}
	}

	plain := make([]pyast.Alias, 0, len(c.imports))
	for alias := range c.imports {
		plain = append(plain, alias)
	}
	slices.SortFunc(plain, compareAliases)
	for _, alias := range plain {
		decls = append(decls, &PlainImport{Alias: alias})
	}
	return decls
}
