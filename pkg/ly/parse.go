package ly

import (
	"fmt"
	"io"
)

// Parse reads LilyPond source from r and builds its AST.
func Parse(r io.Reader) (*File, error) {
	if r == nil {
		return nil, fmt.Errorf("parse lilypond: nil reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse lilypond: %w", err)
	}
	return ParseString(string(data))
}

// ParseString parses LilyPond source: top-level assignments and
// output definition blocks.
func ParseString(src string) (*File, error) {
	p := &parser{s: newScanner(src)}
	return p.parseFile()
}

type parser struct {
	s *scanner
}

func (p *parser) parseFile() (*File, error) {
	file := &File{}
	for {
		p.s.skipSpace()
		if p.s.eof() {
			return file, nil
		}
		switch c := p.s.peek(); {
		case c == '\\':
			p.s.advance()
			name, err := p.s.readName()
			if err != nil {
				return nil, err
			}
			switch name {
			case "header", "paper", "layout", "midi":
				def, err := p.parseOutputDef(OutputKind(name))
				if err != nil {
					return nil, err
				}
				file.OutputDefs = append(file.OutputDefs, def)
			case "version":
				if _, err := p.s.readString(); err != nil {
					return nil, err
				}
			default:
				return nil, p.s.errorf("unexpected \\%s at top level", name)
			}
		case isLetter(c):
			a, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			file.Assignments = append(file.Assignments, a)
		default:
			return nil, p.s.errorf("unexpected input %q", p.s.remainder())
		}
	}
}

func (p *parser) parseAssignment() (Assignment, error) {
	name, err := p.s.readName()
	if err != nil {
		return Assignment{}, err
	}
	if err := p.s.expect('='); err != nil {
		return Assignment{}, err
	}
	v, err := p.parseValue()
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{Name: name, Value: v}, nil
}

func (p *parser) parseOutputDef(kind OutputKind) (*OutputDef, error) {
	if err := p.s.expect('{'); err != nil {
		return nil, err
	}
	def := &OutputDef{Kind: kind}
	for {
		p.s.skipSpace()
		if p.s.eof() {
			return nil, p.s.errorf("unterminated \\%s block", kind)
		}
		switch c := p.s.peek(); {
		case c == '}':
			p.s.advance()
			return def, nil
		case c == '\\':
			p.s.advance()
			name, err := p.s.readName()
			if err != nil {
				return nil, err
			}
			if name != "context" {
				return nil, p.s.errorf("unexpected \\%s inside \\%s block", name, kind)
			}
			if !kind.AllowsContexts() {
				return nil, p.s.errorf("\\context is not permitted inside \\%s", kind)
			}
			block, err := p.parseContextBlock()
			if err != nil {
				return nil, err
			}
			def.Contexts = append(def.Contexts, block)
		case isLetter(c):
			a, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			def.Assignments = append(def.Assignments, a)
		default:
			return nil, p.s.errorf("unexpected input %q inside \\%s block", p.s.remainder(), kind)
		}
	}
}

func (p *parser) parseContextBlock() (ContextBlock, error) {
	if err := p.s.expect('{'); err != nil {
		return ContextBlock{}, err
	}
	var block ContextBlock
	for {
		p.s.skipSpace()
		if p.s.eof() {
			return ContextBlock{}, p.s.errorf("unterminated \\context block")
		}
		switch c := p.s.peek(); {
		case c == '}':
			p.s.advance()
			return block, nil
		case c == '\\':
			p.s.advance()
			item, err := p.parseContextItem()
			if err != nil {
				return ContextBlock{}, err
			}
			block.Items = append(block.Items, item)
		case isLetter(c):
			a, err := p.parseAssignment()
			if err != nil {
				return ContextBlock{}, err
			}
			block.Items = append(block.Items, a)
		default:
			return ContextBlock{}, p.s.errorf("unexpected input %q inside \\context block", p.s.remainder())
		}
	}
}

// parseContextItem parses one \-introduced context modification; the
// backslash itself has already been consumed.
func (p *parser) parseContextItem() (ContextItem, error) {
	name, err := p.s.readName()
	if err != nil {
		return nil, err
	}
	switch name {
	case "consists":
		arg, err := p.parseComponentName()
		if err != nil {
			return nil, err
		}
		return Consists{Name: arg}, nil
	case "remove":
		arg, err := p.parseComponentName()
		if err != nil {
			return nil, err
		}
		return Remove{Name: arg}, nil
	case "set":
		path, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		if err := p.s.expect('='); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return Set{Path: path, Value: v}, nil
	case "override":
		path, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		if err := p.s.expect('='); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return Override{Path: path, Value: v}, nil
	case "unset":
		path, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		return Unset{Path: path}, nil
	case "revert":
		path, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		return Revert{Path: path}, nil
	default:
		if name[0] >= 'A' && name[0] <= 'Z' {
			return ContextRef{Name: name}, nil
		}
		return nil, p.s.errorf("unexpected \\%s inside \\context block", name)
	}
}

// parseComponentName accepts a quoted or bare engraver name.
func (p *parser) parseComponentName() (string, error) {
	p.s.skipSpace()
	if p.s.peek() == '"' {
		return p.s.readString()
	}
	return p.s.readName()
}

func (p *parser) parsePath() (PropertyPath, error) {
	var path PropertyPath
	for {
		seg, err := p.s.readName()
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
		if p.s.peek() != '.' {
			return path, nil
		}
		p.s.advance()
	}
}

func (p *parser) parseValue() (Value, error) {
	p.s.skipSpace()
	if p.s.eof() {
		return nil, p.s.errorf("expected value, found end of input")
	}
	switch c := p.s.peek(); {
	case c == '"':
		str, err := p.s.readString()
		if err != nil {
			return nil, err
		}
		return String(str), nil

	case isDigit(c) || c == '-':
		n, err := p.s.readNumber()
		if err != nil {
			return nil, err
		}
		// A unit suffix binds immediately: 2\cm, no space.
		if p.s.peek() == '\\' {
			p.s.advance()
			unit, err := p.s.readName()
			if err != nil {
				return nil, err
			}
			return Unit{Amount: n, Name: unit}, nil
		}
		return Number(n), nil

	case c == '#':
		p.s.advance()
		expr, err := p.parseSchemeDatum()
		if err != nil {
			return nil, err
		}
		// ##t / ##f parse as native booleans, matching the way the
		// printer writes Bool values.
		if b, ok := expr.(SchemeBool); ok {
			return Bool(b), nil
		}
		return Scheme{Expr: expr}, nil

	case c == '\\':
		p.s.advance()
		name, err := p.s.readName()
		if err != nil {
			return nil, err
		}
		switch name {
		case "markup":
			body, err := p.parseMarkupNode()
			if err != nil {
				return nil, err
			}
			return Markup{Body: body}, nil
		case "markuplist":
			if err := p.s.expect('{'); err != nil {
				return nil, err
			}
			var items []MarkupNode
			for {
				p.s.skipSpace()
				if p.s.eof() {
					return nil, p.s.errorf("unterminated \\markuplist")
				}
				if p.s.peek() == '}' {
					p.s.advance()
					return MarkupList{Items: items}, nil
				}
				node, err := p.parseMarkupNode()
				if err != nil {
					return nil, err
				}
				items = append(items, node)
			}
		default:
			return Identifier(name), nil
		}

	case c == '{':
		seq, err := p.parseMusicSeq()
		if err != nil {
			return nil, err
		}
		return Music{Body: seq}, nil

	default:
		return nil, p.s.errorf("expected value, found %q", p.s.remainder())
	}
}

func (p *parser) parseSchemeDatum() (SchemeExpr, error) {
	p.s.skipSpace()
	if p.s.eof() {
		return nil, p.s.errorf("expected scheme datum, found end of input")
	}
	switch c := p.s.peek(); {
	case c == '#':
		p.s.advance()
		switch p.s.peek() {
		case 't':
			p.s.advance()
			return SchemeBool(true), nil
		case 'f':
			p.s.advance()
			return SchemeBool(false), nil
		default:
			return nil, p.s.errorf("expected #t or #f, found %q", p.s.remainder())
		}
	case c == '"':
		str, err := p.s.readString()
		if err != nil {
			return nil, err
		}
		return SchemeString(str), nil
	case c == '\'':
		p.s.advance()
		expr, err := p.parseSchemeDatum()
		if err != nil {
			return nil, err
		}
		return SchemeQuote{Expr: expr}, nil
	case c == '(':
		p.s.advance()
		var list SchemeList
		for {
			p.s.skipSpace()
			if p.s.eof() {
				return nil, p.s.errorf("unterminated scheme list")
			}
			if p.s.peek() == ')' {
				p.s.advance()
				return list, nil
			}
			expr, err := p.parseSchemeDatum()
			if err != nil {
				return nil, err
			}
			list = append(list, expr)
		}
	case isDigit(c) || (c == '-' && p.s.pos+1 < len(p.s.src) && isDigit(p.s.src[p.s.pos+1])):
		n, err := p.s.readNumber()
		if err != nil {
			return nil, err
		}
		return SchemeNumber(n), nil
	default:
		sym := p.readSchemeSymbol()
		if sym == "" {
			return nil, p.s.errorf("expected scheme datum, found %q", p.s.remainder())
		}
		return SchemeSymbol(sym), nil
	}
}

func (p *parser) readSchemeSymbol() string {
	start := p.s.pos
	for !p.s.eof() {
		c := p.s.peek()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' ||
			c == '(' || c == ')' || c == '"' || c == '\'' || c == '}' || c == '{' {
			break
		}
		p.s.advance()
	}
	return p.s.src[start:p.s.pos]
}

func (p *parser) parseMarkupNode() (MarkupNode, error) {
	p.s.skipSpace()
	if p.s.eof() {
		return nil, p.s.errorf("expected markup, found end of input")
	}
	switch c := p.s.peek(); {
	case c == '"':
		str, err := p.s.readString()
		if err != nil {
			return nil, err
		}
		return MarkupText(str), nil
	case c == '{':
		p.s.advance()
		var line MarkupLine
		for {
			p.s.skipSpace()
			if p.s.eof() {
				return nil, p.s.errorf("unterminated markup group")
			}
			if p.s.peek() == '}' {
				p.s.advance()
				return line, nil
			}
			node, err := p.parseMarkupNode()
			if err != nil {
				return nil, err
			}
			line = append(line, node)
		}
	case c == '\\':
		p.s.advance()
		name, err := p.s.readName()
		if err != nil {
			return nil, err
		}
		cmd := MarkupCommand{Name: name}
		// A markup command binds the single following node; a braced
		// group counts as one node.
		p.s.skipSpace()
		if !p.s.eof() && p.s.peek() != '}' {
			arg, err := p.parseMarkupNode()
			if err != nil {
				return nil, err
			}
			cmd.Args = append(cmd.Args, arg)
		}
		return cmd, nil
	default:
		word := p.readMarkupWord()
		if word == "" {
			return nil, p.s.errorf("expected markup, found %q", p.s.remainder())
		}
		return MarkupText(word), nil
	}
}

func (p *parser) readMarkupWord() string {
	start := p.s.pos
	for !p.s.eof() {
		c := p.s.peek()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' ||
			c == '{' || c == '}' || c == '"' || c == '\\' || c == '%' {
			break
		}
		p.s.advance()
	}
	return p.s.src[start:p.s.pos]
}

// parseMusicSeq parses a braced music sequence starting at '{'.
func (p *parser) parseMusicSeq() (*MusicSeq, error) {
	if err := p.s.expect('{'); err != nil {
		return nil, err
	}
	seq := &MusicSeq{}
	for {
		p.s.skipSpace()
		if p.s.eof() {
			return nil, p.s.errorf("unterminated music sequence")
		}
		switch c := p.s.peek(); {
		case c == '}':
			p.s.advance()
			return seq, nil
		case c == '{':
			nested, err := p.parseMusicSeq()
			if err != nil {
				return nil, err
			}
			seq.Events = append(seq.Events, nested)
		case c == '\\':
			p.s.advance()
			name, err := p.s.readName()
			if err != nil {
				return nil, err
			}
			seq.Events = append(seq.Events, MusicCommand{Name: name})
		case c >= 'a' && c <= 'z':
			event, err := p.parseMusicEvent()
			if err != nil {
				return nil, err
			}
			seq.Events = append(seq.Events, event)
		default:
			return nil, p.s.errorf("unexpected input %q in music", p.s.remainder())
		}
	}
}

func (p *parser) parseMusicEvent() (MusicNode, error) {
	start := p.s.pos
	for !p.s.eof() && p.s.peek() >= 'a' && p.s.peek() <= 'z' {
		p.s.advance()
	}
	word := p.s.src[start:p.s.pos]

	octave := 0
	for !p.s.eof() {
		switch p.s.peek() {
		case '\'':
			octave++
			p.s.advance()
			continue
		case ',':
			octave--
			p.s.advance()
			continue
		}
		break
	}

	duration := ""
	for !p.s.eof() && isDigit(p.s.peek()) {
		duration += string(p.s.advance())
	}
	dots := 0
	for !p.s.eof() && p.s.peek() == '.' {
		dots++
		p.s.advance()
	}

	if word == "r" {
		if octave != 0 {
			return nil, p.s.errorf("rest cannot carry octave marks")
		}
		return Rest{Duration: duration, Dots: dots}, nil
	}
	if !isPitchWord(word) {
		return nil, p.s.errorf("unknown music event %q", word)
	}
	return Note{Pitch: word, Octave: octave, Duration: duration, Dots: dots}, nil
}

// isPitchWord accepts a pitch letter with optional Dutch accidental
// suffixes: c, cis, ces, cisis, ceses, as, es.
func isPitchWord(word string) bool {
	if word == "" || word[0] < 'a' || word[0] > 'g' {
		return false
	}
	rest := word[1:]
	switch rest {
	case "", "is", "es", "s", "isis", "eses", "ses":
		return true
	}
	return false
}
