package classifier

import (
	"github.com/siyuan-infoblox/impsort/pkg/std"
)

// Classifier assigns a Provenance to module names. Answers are memoized per
// top-level module, so a name is classified the same way for the whole run.
// A Classifier is not safe for concurrent use.
type Classifier struct {
	env    *Environment
	cache  map[string]Provenance
	locate func(name string, searchPath []string) bool
}

// New creates a Classifier over env.
func New(env *Environment) *Classifier {
	return &Classifier{
		env:    env,
		cache:  make(map[string]Provenance),
		locate: Locate,
	}
}

// Classify returns the provenance of a dotted module name. Only the first
// segment is looked at. An empty name, as in `from . import x`, is Other.
func (c *Classifier) Classify(module string) Provenance {
	root := std.RootModule(module)
	if root == "" {
		return Other
	}
	if p, ok := c.cache[root]; ok {
		return p
	}
	p := c.classifyRoot(root)
	c.cache[root] = p
	return p
}

func (c *Classifier) classifyRoot(root string) Provenance {
	switch {
	case root == FutureModule:
		return Future
	case c.env.IsStdlib(root):
		return StandardLibrary
	case c.locate(root, c.env.searchPath):
		return ThirdParty
	default:
		return Other
	}
}
