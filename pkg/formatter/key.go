package formatter

import (
	"cmp"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/siyuan-infoblox/impsort/pkg/classifier"
	"github.com/siyuan-infoblox/impsort/pkg/errors"
	"github.com/siyuan-infoblox/impsort/pkg/pyast"
)

// ErrMalformedDeclaration is returned for a declaration that is neither a
// PlainImport nor a FromImport.
var ErrMalformedDeclaration = stderrors.New(errors.ErrMsgMalformedDeclaration)

// Kind ranks: plain imports before from-imports of the same module.
const (
	PlainKind = 0
	FromKind  = 1
)

// Classifier resolves the provenance of a module name.
type Classifier interface {
	Classify(module string) classifier.Provenance
}

// SortKey is the ordering key of a declaration:
// (future, stdlib, thirdparty, kind, name, from-names).
// The rank fields are 0 when the declaration belongs to that group and 1
// otherwise, so local imports rank 1/1/1 and sort last.
type SortKey struct {
	Future     int
	Stdlib     int
	ThirdParty int
	Kind       int
	// Name is [module] or [module, alias] for plain imports and [module]
	// for from-imports. The relative level is not part of it.
	Name []string
	// FromNames are the sorted imported names; nil for plain imports.
	FromNames []string

	aliases []pyast.Alias
	level   int
}

// KeyOf builds the sort key of a declaration. Relative from-imports are
// always local; everything else is classified by its module.
func KeyOf(c Classifier, decl Declaration) (SortKey, error) {
	var key SortKey
	provenance := classifier.Other

	switch d := decl.(type) {
	case *PlainImport:
		key.Kind = PlainKind
		key.Name = []string{d.Name}
		if d.AsName != "" {
			key.Name = append(key.Name, d.AsName)
		}
		key.aliases = []pyast.Alias{d.Alias}
		provenance = c.Classify(d.Name)

	case *FromImport:
		key.Kind = FromKind
		key.Name = []string{d.Module}
		key.aliases = slices.Clone(d.Names)
		slices.SortFunc(key.aliases, compareAliases)
		key.FromNames = make([]string, 0, len(d.Names))
		for _, alias := range key.aliases {
			key.FromNames = append(key.FromNames, alias.Name)
		}
		key.level = d.Level
		if d.Level == 0 {
			provenance = c.Classify(d.Module)
		}

	default:
		return SortKey{}, fmt.Errorf("%w: %T", ErrMalformedDeclaration, decl)
	}

	key.Future = rank(provenance == classifier.Future)
	key.Stdlib = rank(provenance == classifier.StandardLibrary)
	key.ThirdParty = rank(provenance == classifier.ThirdParty)
	return key, nil
}

func rank(match bool) int {
	if match {
		return 0
	}
	return 1
}

// Group is the (future, stdlib, thirdparty) rank triple; declarations with
// the same Group are rendered without a blank line between them.
func (k SortKey) Group() [3]int {
	return [3]int{k.Future, k.Stdlib, k.ThirdParty}
}

// Compare returns -1, 0 or +1. Ranks compare first. Plain and from-imports
// then interleave by module name, and the kind only decides between a
// plain import and a from-import of the same module. Remaining ties fall
// to the alias, the imported names, and finally the relative level.
func (k SortKey) Compare(o SortKey) int {
	if c := cmp.Compare(k.Future, o.Future); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Stdlib, o.Stdlib); c != 0 {
		return c
	}
	if c := cmp.Compare(k.ThirdParty, o.ThirdParty); c != 0 {
		return c
	}
	if c := strings.Compare(k.module(), o.module()); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Kind, o.Kind); c != 0 {
		return c
	}
	if c := slices.Compare(k.Name, o.Name); c != 0 {
		return c
	}
	if c := slices.Compare(k.FromNames, o.FromNames); c != 0 {
		return c
	}
	if c := slices.CompareFunc(k.aliases, o.aliases, compareAliases); c != 0 {
		return c
	}
	return cmp.Compare(k.level, o.level)
}

// Provenance recovers the group a key was ranked into.
func (k SortKey) Provenance() classifier.Provenance {
	switch {
	case k.Future == 0:
		return classifier.Future
	case k.Stdlib == 0:
		return classifier.StandardLibrary
	case k.ThirdParty == 0:
		return classifier.ThirdParty
	default:
		return classifier.Other
	}
}

func (k SortKey) module() string {
	if len(k.Name) == 0 {
		return ""
	}
	return k.Name[0]
}
