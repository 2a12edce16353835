package pyast

import "fmt"

// Parse parses Python source into a Module. Only statements at the top
// level become Body entries; indented blocks are folded into the compound
// statement that opens them. Import statements are fully validated, other
// statements only lexically.
func Parse(filename string, src []byte) (*Module, error) {
	p := &parser{
		filename: filename,
		lexer:    NewLexer(filename, src),
		module:   &Module{Filename: filename},
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.module, nil
}

type parser struct {
	filename string
	lexer    *Lexer
	module   *Module

	// inBlock is set while indented lines belong to the last statement.
	inBlock bool
	// expectIndent is set after a line ending with ':'.
	expectIndent bool
}

func (p *parser) parse() error {
	for {
		line, err := p.logicalLine()
		if err != nil {
			return err
		}
		if line == nil {
			if p.expectIndent {
				return p.errorAt(p.lastLine(), 0, "expected an indented block")
			}
			return nil
		}
		if err := p.parseLine(line); err != nil {
			return err
		}
	}
}

// logicalLine returns the tokens of the next logical line without its
// Newline, or nil at EOF.
func (p *parser) logicalLine() ([]Token, error) {
	var line []Token
	for {
		tok, err := p.lexer.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case EOF:
			return nil, nil
		case Newline:
			return line, nil
		default:
			line = append(line, tok)
		}
	}
}

func (p *parser) parseLine(line []Token) error {
	first := line[0]
	last := line[len(line)-1]
	opensBlock := last.Is(Op, ":") && last.Depth == 0

	if first.Column > 0 {
		if !p.inBlock && !p.expectIndent {
			return p.errorAt(first.Line, first.Column, "unexpected indent")
		}
		p.inBlock = true
		p.expectIndent = false
		p.extendLast(last.Line)
		return nil
	}

	if p.expectIndent {
		return p.errorAt(first.Line, first.Column, "expected an indented block")
	}
	p.inBlock = false
	p.expectIndent = opensBlock

	if (first.Kind == Name && compoundKeywords[first.Text]) || first.Is(Op, "@") {
		p.appendOther(first, last.Line)
		return nil
	}
	return p.parseSimpleStatements(line)
}

// parseSimpleStatements splits a line on top-level semicolons.
func (p *parser) parseSimpleStatements(line []Token) error {
	start := 0
	for i := 0; i <= len(line); i++ {
		if i < len(line) && !(line[i].Is(Op, ";") && line[i].Depth == 0) {
			continue
		}
		stmt := line[start:i]
		switch {
		case len(stmt) > 0:
			if err := p.parseStatement(stmt); err != nil {
				return err
			}
		case i < len(line):
			return p.errorAt(line[i].Line, line[i].Column, "invalid syntax")
		}
		start = i + 1
	}
	return nil
}

func (p *parser) parseStatement(toks []Token) error {
	first := toks[0]
	pos := Position{Line: first.Line, Column: first.Column}
	switch {
	case first.Is(Name, "import"):
		names, err := p.parseImport(toks[1:], first)
		if err != nil {
			return err
		}
		p.module.Body = append(p.module.Body, &Import{Position: pos, Names: names})
	case first.Is(Name, "from"):
		stmt, err := p.parseFrom(toks[1:], first)
		if err != nil {
			return err
		}
		stmt.Position = pos
		p.module.Body = append(p.module.Body, stmt)
	default:
		p.appendOther(first, toks[len(toks)-1].Line)
	}
	return nil
}

// parseImport parses the dotted_as_names after "import".
func (p *parser) parseImport(toks []Token, kw Token) ([]Alias, error) {
	s := &stream{p: p, toks: toks, prev: kw}
	var names []Alias
	for {
		name, err := s.dottedName()
		if err != nil {
			return nil, err
		}
		alias := Alias{Name: name}
		if alias.AsName, err = s.asName(); err != nil {
			return nil, err
		}
		names = append(names, alias)
		if s.done() {
			return names, nil
		}
		if err := s.expectOp(","); err != nil {
			return nil, err
		}
		if s.done() {
			return nil, s.errorf("trailing comma not allowed without surrounding parentheses")
		}
	}
}

// parseFrom parses everything after "from".
func (p *parser) parseFrom(toks []Token, kw Token) (*ImportFrom, error) {
	s := &stream{p: p, toks: toks, prev: kw}
	stmt := &ImportFrom{}
	for s.peek().Is(Op, ".") {
		s.next()
		stmt.Level++
	}
	if !s.peek().Is(Name, "import") {
		module, err := s.dottedName()
		if err != nil {
			return nil, err
		}
		stmt.Module = module
	} else if stmt.Level == 0 {
		return nil, s.errorf("invalid syntax")
	}
	if !s.peek().Is(Name, "import") {
		return nil, s.errorf("expected 'import'")
	}
	s.next()

	if s.peek().Is(Op, "*") {
		s.next()
		stmt.Names = []Alias{{Name: "*"}}
		if !s.done() {
			return nil, s.errorf("invalid syntax")
		}
		return stmt, nil
	}

	parens := false
	if s.peek().Is(Op, "(") {
		s.next()
		parens = true
	}
	for {
		name, err := s.name()
		if err != nil {
			return nil, err
		}
		alias := Alias{Name: name}
		if alias.AsName, err = s.asName(); err != nil {
			return nil, err
		}
		stmt.Names = append(stmt.Names, alias)

		if parens && s.peek().Is(Op, ")") {
			s.next()
			break
		}
		if !parens && s.done() {
			break
		}
		if err := s.expectOp(","); err != nil {
			return nil, err
		}
		if parens && s.peek().Is(Op, ")") {
			s.next()
			break
		}
		if !parens && s.done() {
			return nil, s.errorf("trailing comma not allowed without surrounding parentheses")
		}
	}
	if !s.done() {
		return nil, s.errorf("invalid syntax")
	}
	return stmt, nil
}

func (p *parser) appendOther(first Token, endLine int) {
	p.module.Body = append(p.module.Body, &Other{
		Position: Position{Line: first.Line, Column: first.Column},
		EndLine:  endLine,
	})
}

// extendLast stretches the last statement over an indented line.
func (p *parser) extendLast(line int) {
	if n := len(p.module.Body); n > 0 {
		if other, ok := p.module.Body[n-1].(*Other); ok {
			other.EndLine = line
		}
	}
}

func (p *parser) lastLine() int {
	if n := len(p.module.Body); n > 0 {
		if other, ok := p.module.Body[n-1].(*Other); ok {
			return other.EndLine
		}
		return p.module.Body[n-1].Pos().Line
	}
	return 1
}

func (p *parser) errorAt(line, col int, msg string) error {
	return &SyntaxError{Filename: p.filename, Line: line, Column: col, Msg: msg}
}

// stream walks the tokens of one simple statement.
type stream struct {
	p    *parser
	toks []Token
	pos  int
	prev Token
}

func (s *stream) done() bool { return s.pos >= len(s.toks) }

func (s *stream) peek() Token {
	if s.done() {
		return Token{Kind: Newline}
	}
	return s.toks[s.pos]
}

func (s *stream) next() Token {
	tok := s.peek()
	if !s.done() {
		s.prev = tok
		s.pos++
	}
	return tok
}

func (s *stream) name() (string, error) {
	tok := s.peek()
	if tok.Kind != Name {
		return "", s.errorf("invalid syntax")
	}
	if IsKeyword(tok.Text) {
		return "", s.errorf("invalid syntax: '%s' is a keyword", tok.Text)
	}
	s.next()
	return tok.Text, nil
}

func (s *stream) dottedName() (string, error) {
	name, err := s.name()
	if err != nil {
		return "", err
	}
	for s.peek().Is(Op, ".") {
		s.next()
		part, err := s.name()
		if err != nil {
			return "", err
		}
		name += "." + part
	}
	return name, nil
}

// asName parses an optional "as NAME" clause.
func (s *stream) asName() (string, error) {
	if !s.peek().Is(Name, "as") {
		return "", nil
	}
	s.next()
	return s.name()
}

func (s *stream) expectOp(op string) error {
	if !s.peek().Is(Op, op) {
		return s.errorf("invalid syntax")
	}
	s.next()
	return nil
}

// errorf reports an error at the current token, or just after the last one.
func (s *stream) errorf(format string, args ...any) error {
	tok := s.peek()
	if s.done() {
		tok = s.prev
		tok.Column += len(tok.Text)
	}
	return s.p.errorAt(tok.Line, tok.Column, fmt.Sprintf(format, args...))
}
