package pyast

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline ends a logical line.
	Newline
	// Name is an identifier or keyword.
	Name
	// Number is a numeric literal.
	Number
	// String is a string or bytes literal, prefix and quotes included.
	String
	// Op is an operator, delimiter or bracket.
	Op
)

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Newline: "Newline",
	Name:    "Name",
	Number:  "Number",
	String:  "String",
	Op:      "Op",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Token is a single lexical token.
type Token struct {
	Kind Kind
	Text string
	// Line is 1-based, Column is the 0-based byte offset in that line.
	Line   int
	Column int
	// Depth is the bracket nesting level in effect before the token.
	Depth int
}

// Is reports whether the token is of kind k with the given text.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && t.Text == text
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// IsKeyword reports whether name is a reserved Python keyword.
func IsKeyword(name string) bool {
	return keywords[name]
}

// compound statement heads; their bodies never hold top-level imports
var compoundKeywords = map[string]bool{
	"if": true, "elif": true, "else": true, "for": true, "while": true,
	"try": true, "except": true, "finally": true, "with": true, "def": true,
	"class": true, "async": true,
}
