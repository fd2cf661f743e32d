package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rubyjs/ruby2go/pkg/ast"
)

// StubParser is a Parser implementation for tests and the CLI's
// -ast-sexp ingestion flag: it accepts a tiny textual s-expression
// notation, e.g. `(send nil :puts (str "hi"))`, and builds the
// equivalent *ast.Node tree directly, letting the whole pipeline run
// end to end without a real Ruby grammar (spec.md §6.3's "ready-made
// AST" external interface, not a parser).
type StubParser struct{}

// Parse implements Parser. filename is recorded nowhere since the
// s-expression notation carries no location information; every node
// StubParser produces has a nil Loc.
func (StubParser) Parse(source, filename string) (*ast.Node, []ast.Comment, error) {
	p := &sexpParser{src: source}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return ast.Nil, nil, nil
	}
	n, err := p.parseValue()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	node, ok := n.(*ast.Node)
	if !ok {
		return nil, nil, fmt.Errorf("%s: top-level s-expression must be a node", filename)
	}
	return node, nil, nil
}

// sexpParser is a minimal recursive-descent reader for the s-expression
// notation: `(tag child...)`, where a child is itself a nested
// s-expression, the bare word `nil`, a `:symbol` (read as a Go string),
// a double-quoted string, or an integer/float literal.
type sexpParser struct {
	src string
	pos int
}

func (p *sexpParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *sexpParser) parseValue() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch p.src[p.pos] {
	case '(':
		return p.parseSexp()
	case '"':
		return p.parseString()
	case ':':
		p.pos++
		return p.parseBareWord(), nil
	default:
		return p.parseAtom()
	}
}

func (p *sexpParser) parseSexp() (*ast.Node, error) {
	p.pos++ // consume '('
	p.skipSpace()
	tag := p.parseBareWord()
	if tag == "" {
		return nil, fmt.Errorf("expected a tag after '(' at offset %d", p.pos)
	}
	var children []any
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated s-expression for tag %q", tag)
		}
		if p.src[p.pos] == ')' {
			p.pos++
			break
		}
		child, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return ast.New(ast.NodeType(tag), children...), nil
}

func (p *sexpParser) parseBareWord() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '(' || c == ')' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		p.pos++
	}
	word := p.src[start:p.pos]
	return word
}

func (p *sexpParser) parseString() (string, error) {
	p.pos++ // consume opening quote
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '"' {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' && p.pos+1 < len(p.src) {
			p.pos++
			switch p.src[p.pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(p.src[p.pos])
			}
			p.pos++
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
	return "", fmt.Errorf("unterminated string literal")
}

// parseAtom reads `nil`, an integer, or a float; any other bare word is
// returned verbatim as a string, matching how a send node's method-name
// slot (`puts`, not `:puts`) appears unprefixed in real parser output.
func (p *sexpParser) parseAtom() (any, error) {
	word := p.parseBareWord()
	if word == "" {
		return nil, fmt.Errorf("unexpected character %q at offset %d", p.src[p.pos], p.pos)
	}
	if word == "nil" {
		return ast.Nil, nil
	}
	if i, err := strconv.ParseInt(word, 10, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return f, nil
	}
	return word, nil
}
