package pyast

import "strings"

// Position locates a statement in the source.
type Position struct {
	Line   int // 1-based
	Column int // 0-based byte offset in the line
}

// Pos returns the position itself so embedding types satisfy Stmt.
func (p Position) Pos() Position { return p }

// Stmt is one module-level statement. The set of kinds is closed:
// *Import, *ImportFrom and *Other.
type Stmt interface {
	Pos() Position
	stmt()
}

// Alias is one imported name with its optional local binding.
type Alias struct {
	Name   string
	AsName string // empty when there is no "as" clause
}

func (a Alias) String() string {
	if a.AsName == "" {
		return a.Name
	}
	return a.Name + " as " + a.AsName
}

// Import is `import a.b as c, d`.
type Import struct {
	Position
	Names []Alias
}

// ImportFrom is `from ..mod import a as b, c`.
type ImportFrom struct {
	Position
	Level  int    // leading dots; 0 for absolute imports
	Module string // empty for `from . import x`
	Names  []Alias
}

// Path returns the module reference as written: dots followed by the module.
func (s *ImportFrom) Path() string {
	return strings.Repeat(".", s.Level) + s.Module
}

// Other is any non-import statement, including a compound statement and
// its whole indented body.
type Other struct {
	Position
	EndLine int
}

func (*Import) stmt()     {}
func (*ImportFrom) stmt() {}
func (*Other) stmt()      {}

// Module is a parsed source file.
type Module struct {
	Filename string
	Body     []Stmt
}
