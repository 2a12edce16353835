package formatter

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Entry pairs a declaration with its sort key.
type Entry struct {
	Key  SortKey
	Decl Declaration
}

// SortEntries orders entries by key.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.Key.Compare(b.Key)
	})
}

// Render writes sorted entries as source text, one statement per line, with
// a blank line wherever the group changes.
func Render(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	for i, entry := range entries {
		if i > 0 && entry.Key.Group() != entries[i-1].Key.Group() {
			buf.WriteByte('\n')
		}
		line, err := renderDeclaration(entry.Decl)
		if err != nil {
			return nil, err
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func renderDeclaration(decl Declaration) (string, error) {
	switch d := decl.(type) {
	case *PlainImport:
		return "import " + d.Alias.String(), nil
	case *FromImport:
		names := make([]string, 0, len(d.Names))
		for _, alias := range d.Names {
			names = append(names, alias.String())
		}
		return fmt.Sprintf("from %s import %s", d.Path(), strings.Join(names, ", ")), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrMalformedDeclaration, decl)
	}
}
