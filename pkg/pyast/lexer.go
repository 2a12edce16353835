package pyast

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const utf8RuneSelf = 0x80

// Lexer turns Python source into tokens. Comments, blank lines and
// continuation lines never produce tokens; a Newline token is emitted only at
// the end of a non-empty logical line outside brackets.
type Lexer struct {
	filename  string
	cursor    Cursor
	line      int
	// lineStart is where columns are counted from. A form feed in the
	// indentation moves it, so "\f" restarts the indent count.
	lineStart uint32
	brackets  []byte
	// pending is true once the current logical line has a token.
	pending bool
}

// NewLexer creates a lexer over src. filename is only used in errors.
func NewLexer(filename string, src []byte) *Lexer {
	lx := &Lexer{
		filename: filename,
		cursor:   NewCursor(src),
		line:     1,
	}
	lx.skipBOM()
	return lx
}

func (lx *Lexer) skipBOM() {
	if lx.cursor.PeekAt(0) == 0xEF && lx.cursor.PeekAt(1) == 0xBB && lx.cursor.PeekAt(2) == 0xBF {
		lx.cursor.Off += 3
		lx.lineStart = lx.cursor.Off
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() (Token, error) {
	for {
		lx.skipSpace()
		if lx.cursor.EOF() {
			if len(lx.brackets) > 0 {
				return Token{}, lx.errorf(lx.cursor.Mark(), "'%c' was never closed", lx.brackets[len(lx.brackets)-1])
			}
			if lx.pending {
				lx.pending = false
				return lx.token(Newline, lx.cursor.Mark(), ""), nil
			}
			return lx.token(EOF, lx.cursor.Mark(), ""), nil
		}

		start := lx.cursor.Mark()
		ch := lx.cursor.Peek()
		switch {
		case ch == '#':
			lx.skipComment()
			continue

		case ch == '\\':
			lx.cursor.Bump()
			if !lx.eatNewline() {
				return Token{}, lx.errorf(start, "unexpected character after line continuation character")
			}
			if lx.cursor.EOF() {
				return Token{}, lx.errorAt(lx.line, 0, "unexpected EOF while parsing")
			}
			continue

		case ch == '\n' || ch == '\r':
			tok := lx.token(Newline, start, "")
			lx.eatNewline()
			if len(lx.brackets) > 0 || !lx.pending {
				continue
			}
			lx.pending = false
			return tok, nil

		case ch == '"' || ch == '\'':
			return lx.emit(lx.scanString(start))

		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			return lx.emit(lx.scanNameOrString(start))

		case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
			return lx.emit(lx.scanNumber(start), nil)

		default:
			return lx.emit(lx.scanOperator(start))
		}
	}
}

func (lx *Lexer) emit(tok Token, err error) (Token, error) {
	if err != nil {
		return Token{}, err
	}
	lx.pending = true
	return tok, nil
}

func (lx *Lexer) token(kind Kind, start Mark, text string) Token {
	return Token{
		Kind:   kind,
		Text:   text,
		Line:   lx.line,
		Column: int(uint32(start) - lx.lineStart),
		Depth:  len(lx.brackets),
	}
}

func (lx *Lexer) skipSpace() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t':
			lx.cursor.Bump()
		case '\f':
			lx.cursor.Bump()
			if lx.inIndent() {
				lx.lineStart = lx.cursor.Off
			}
		default:
			return
		}
	}
}

// inIndent reports whether only whitespace precedes the cursor on this line.
func (lx *Lexer) inIndent() bool {
	for _, b := range lx.cursor.Src[lx.lineStart:lx.cursor.Off] {
		if b != ' ' && b != '\t' && b != '\f' {
			return false
		}
	}
	return true
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			return
		}
		lx.cursor.Bump()
	}
}

// eatNewline consumes "\n", "\r\n" or "\r" and starts a new line.
func (lx *Lexer) eatNewline() bool {
	switch {
	case lx.cursor.Eat('\r'):
		lx.cursor.Eat('\n')
	case lx.cursor.Eat('\n'):
	default:
		return false
	}
	lx.line++
	lx.lineStart = lx.cursor.Off
	return true
}

func (lx *Lexer) scanNameOrString(start Mark) (Token, error) {
	line, col := lx.line, int(uint32(start)-lx.lineStart)
	if !lx.scanIdent() {
		r, _ := utf8.DecodeRune(lx.cursor.Src[lx.cursor.Off:])
		return Token{}, lx.errorf(start, "invalid character '%c' (U+%04X)", r, r)
	}
	text := lx.cursor.TextFrom(start)
	if q := lx.cursor.Peek(); (q == '"' || q == '\'') && isStringPrefix(text) {
		return lx.scanString(start)
	}
	if !isASCII(text) {
		text = norm.NFKC.String(text)
	}
	return Token{Kind: Name, Text: text, Line: line, Column: col, Depth: len(lx.brackets)}, nil
}

func (lx *Lexer) scanIdent() bool {
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return false
	}
	lx.cursor.Off += uint32(sz)
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				return true
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return true
		}
		lx.cursor.Off += uint32(sz)
	}
}

func (lx *Lexer) peekRune() (rune, int) {
	if lx.cursor.EOF() {
		return 0, 0
	}
	r, sz := utf8.DecodeRune(lx.cursor.Src[lx.cursor.Off:])
	if r == utf8.RuneError && sz <= 1 {
		return 0, 0
	}
	return r, sz
}

// scanString scans a string literal whose prefix, if any, starts at start
// and whose opening quote is under the cursor.
func (lx *Lexer) scanString(start Mark) (Token, error) {
	tok := lx.token(String, start, "")
	format := strings.ContainsAny(lx.cursor.TextFrom(start), "fFtT")
	quote := lx.cursor.Bump()
	triple := lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote
	if triple {
		lx.cursor.Bump()
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if !lx.eatNewline() {
				lx.cursor.Bump()
			}
		case b == '\n' || b == '\r':
			if !triple {
				return Token{}, lx.errorAt(tok.Line, tok.Column, "unterminated string literal")
			}
			lx.eatNewline()
		case format && b == '{':
			lx.cursor.Bump()
			if lx.cursor.Eat('{') {
				continue
			}
			if err := lx.scanField(tok); err != nil {
				return Token{}, err
			}
		case b == quote:
			lx.cursor.Bump()
			if !triple {
				tok.Text = lx.cursor.TextFrom(start)
				return tok, nil
			}
			if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				tok.Text = lx.cursor.TextFrom(start)
				return tok, nil
			}
		default:
			lx.cursor.Bump()
		}
	}
	if triple {
		return Token{}, lx.errorAt(tok.Line, tok.Column, "unterminated triple-quoted string literal")
	}
	return Token{}, lx.errorAt(tok.Line, tok.Column, "unterminated string literal")
}

// scanField skips a replacement field of an f-string or t-string; the
// cursor is past its opening '{'. Nested strings may reuse the enclosing
// quote.
func (lx *Lexer) scanField(tok Token) error {
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"' || b == '\'':
			if _, err := lx.scanString(lx.cursor.Mark()); err != nil {
				return err
			}
		case isIdentStartByte(b):
			m := lx.cursor.Mark()
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			if q := lx.cursor.Peek(); (q == '"' || q == '\'') && isStringPrefix(lx.cursor.TextFrom(m)) {
				if _, err := lx.scanString(m); err != nil {
					return err
				}
			}
		case b == '(' || b == '[' || b == '{':
			depth++
			lx.cursor.Bump()
		case b == ')' || b == ']':
			depth--
			lx.cursor.Bump()
		case b == '}':
			lx.cursor.Bump()
			if depth == 0 {
				return nil
			}
			depth--
		case b == ':' && depth == 0:
			lx.cursor.Bump()
			return lx.scanFormatSpec(tok)
		case b == '\\':
			lx.cursor.Bump()
			if !lx.eatNewline() {
				lx.cursor.Bump()
			}
		case b == '\n' || b == '\r':
			lx.eatNewline()
		default:
			lx.cursor.Bump()
		}
	}
	return lx.errorAt(tok.Line, tok.Column, "unterminated f-string literal")
}

// scanFormatSpec skips the format spec after ':' up to the closing '}'.
func (lx *Lexer) scanFormatSpec(tok Token) error {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '{':
			lx.cursor.Bump()
			if err := lx.scanField(tok); err != nil {
				return err
			}
		case b == '}':
			lx.cursor.Bump()
			return nil
		case b == '\n' || b == '\r':
			lx.eatNewline()
		default:
			lx.cursor.Bump()
		}
	}
	return lx.errorAt(tok.Line, tok.Column, "unterminated f-string literal")
}

func (lx *Lexer) scanNumber(start Mark) Token {
	tok := lx.token(Number, start, "")
	hex := lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X')
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b) || b == '.':
			lx.cursor.Bump()
		case (b == '+' || b == '-') && !hex && isExponent(lx.cursor.Src[lx.cursor.Off-1]):
			lx.cursor.Bump()
		default:
			tok.Text = lx.cursor.TextFrom(start)
			return tok
		}
	}
	tok.Text = lx.cursor.TextFrom(start)
	return tok
}

var operators3 = []string{"**=", "//=", ">>=", "<<="}

var operators2 = []string{
	"**", "//", "<<", ">>", "<=", ">=", "==", "!=", "->", ":=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
}

const operators1 = "+-*/%@&|^~<>=.,:;()[]{}"

func (lx *Lexer) scanOperator(start Mark) (Token, error) {
	// "..." is left as three dots so a relative level counts one per dot
	rest := lx.cursor.Src[lx.cursor.Off:]
	for _, group := range [][]string{operators3, operators2} {
		for _, op := range group {
			if bytes.HasPrefix(rest, []byte(op)) {
				tok := lx.token(Op, start, op)
				lx.cursor.Off += uint32(len(op))
				return tok, nil
			}
		}
	}

	ch := lx.cursor.Peek()
	if strings.IndexByte(operators1, ch) < 0 {
		return Token{}, lx.errorf(start, "invalid character '%c'", ch)
	}
	tok := lx.token(Op, start, string(ch))
	switch ch {
	case '(', '[', '{':
		lx.brackets = append(lx.brackets, ch)
	case ')', ']', '}':
		if len(lx.brackets) == 0 {
			return Token{}, lx.errorf(start, "unmatched '%c'", ch)
		}
		open := lx.brackets[len(lx.brackets)-1]
		if closing(open) != ch {
			return Token{}, lx.errorf(start, "closing parenthesis '%c' does not match opening parenthesis '%c'", ch, open)
		}
		lx.brackets = lx.brackets[:len(lx.brackets)-1]
	}
	lx.cursor.Bump()
	return tok, nil
}

// errorf reports an error at a mark on the current line.
func (lx *Lexer) errorf(at Mark, format string, args ...any) error {
	return lx.errorAt(lx.line, int(uint32(at)-lx.lineStart), fmt.Sprintf(format, args...))
}

func (lx *Lexer) errorAt(line, col int, msg string) error {
	return &SyntaxError{Filename: lx.filename, Line: line, Column: col, Msg: msg}
}

// Tokenize lexes the whole source, EOF token included.
func Tokenize(filename string, src []byte) ([]Token, error) {
	lx := NewLexer(filename, src)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func closing(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "t", "br", "rb", "fr", "rf", "tr", "rt":
		return true
	}
	return false
}

func isExponent(b byte) bool { return b == 'e' || b == 'E' }

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isIdentStartRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentStartByte(byte(r))
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_ID_Start, r)
}

func isIdentContinueRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentContinueByte(byte(r))
	}
	return isIdentStartRune(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc) ||
		unicode.Is(unicode.Other_ID_Continue, r)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8RuneSelf {
			return false
		}
	}
	return true
}
