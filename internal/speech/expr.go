// Package speech renders short utterances from weighted, condition-gated
// templates. Patterns embed a small expression language inside {{ }} markers:
// either a dotted context path (with one optional trailing array index) or a
// conditional of the form `path op literal ? 'yes' : 'no'`. Conditional
// branches are plain string literals (the false branch may be a path);
// nesting a conditional inside a branch is not supported.
package speech

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Node is one parsed placeholder body.
type Node interface{ node() }

// PathNode is a dotted context path, e.g. market.trending_tokens[0].
// Index is -1 when no index was written.
type PathNode struct {
	Parts []string
	Index int
}

// LiteralKind tags a Literal.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitBool
)

// Literal is a quoted string, a number, or true/false.
type Literal struct {
	Kind LiteralKind
	Str  string
	Num  float64
	Bool bool
}

// ComparisonNode compares a resolved path against a literal.
type ComparisonNode struct {
	Left  *PathNode
	Op    string // == != > < >= <=
	Right Literal
}

// ConditionalNode selects one of two branches. Cond is a *PathNode
// (truthiness) or a *ComparisonNode. WhenFalse is a Literal or a *PathNode.
type ConditionalNode struct {
	Cond      Node
	WhenTrue  Literal
	WhenFalse Node
}

func (*PathNode) node()        {}
func (Literal) node()          {}
func (*ComparisonNode) node()  {}
func (*ConditionalNode) node() {}

// --- tokenizer ---

type tokenKind int

const (
	tEOF tokenKind = iota
	tIdent
	tNumber
	tString
	tOp       // comparison operator
	tQuestion // ?
	tColon    // :
	tDot      // .
	tLBracket // [
	tRBracket // ]
)

type token struct {
	kind tokenKind
	text string
}

type lexer struct {
	in  string
	pos int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.in) && unicode.IsSpace(rune(l.in[l.pos])) {
		l.pos++
	}
	if l.pos >= len(l.in) {
		return token{kind: tEOF}, nil
	}
	c := l.in[l.pos]
	switch c {
	case '?':
		l.pos++
		return token{kind: tQuestion, text: "?"}, nil
	case ':':
		l.pos++
		return token{kind: tColon, text: ":"}, nil
	case '.':
		l.pos++
		return token{kind: tDot, text: "."}, nil
	case '[':
		l.pos++
		return token{kind: tLBracket, text: "["}, nil
	case ']':
		l.pos++
		return token{kind: tRBracket, text: "]"}, nil
	case '\'', '"':
		quote := c
		end := l.pos + 1
		for end < len(l.in) && l.in[end] != quote {
			end++
		}
		if end >= len(l.in) {
			return token{}, fmt.Errorf("unterminated string literal")
		}
		text := l.in[l.pos+1 : end]
		l.pos = end + 1
		return token{kind: tString, text: text}, nil
	case '=', '!', '>', '<':
		if l.pos+1 < len(l.in) && l.in[l.pos+1] == '=' {
			op := l.in[l.pos : l.pos+2]
			l.pos += 2
			return token{kind: tOp, text: op}, nil
		}
		if c == '>' || c == '<' {
			l.pos++
			return token{kind: tOp, text: string(c)}, nil
		}
		return token{}, fmt.Errorf("unexpected %q", string(c))
	}
	if c >= '0' && c <= '9' || c == '-' {
		end := l.pos + 1
		for end < len(l.in) && (l.in[end] >= '0' && l.in[end] <= '9' || l.in[end] == '.') {
			end++
		}
		text := l.in[l.pos:end]
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return token{}, fmt.Errorf("bad number %q", text)
		}
		l.pos = end
		return token{kind: tNumber, text: text}, nil
	}
	if isIdentStart(c) {
		end := l.pos + 1
		for end < len(l.in) && isIdentPart(l.in[end]) {
			end++
		}
		text := l.in[l.pos:end]
		l.pos = end
		return token{kind: tIdent, text: text}, nil
	}
	return token{}, fmt.Errorf("unexpected %q", string(c))
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

// --- parser ---

type parser struct {
	lex  *lexer
	cur  token
	peek token
}

// Parse parses one placeholder body into a Node.
func Parse(body string) (Node, error) {
	p := &parser{lex: &lexer{in: body}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parsePlaceholder()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tEOF {
		return nil, fmt.Errorf("trailing input at %q", p.cur.text)
	}
	return n, nil
}

func (p *parser) advance() error {
	p.cur = p.peek
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.peek = t
	return nil
}

func (p *parser) parsePlaceholder() (Node, error) {
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	var cond Node = path
	if p.cur.kind == tOp {
		op := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		cond = &ComparisonNode{Left: path, Op: op, Right: lit}
	}

	if p.cur.kind != tQuestion {
		if _, isCmp := cond.(*ComparisonNode); isCmp {
			return nil, fmt.Errorf("comparison without ?: branches")
		}
		return path, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.kind != tString {
		return nil, fmt.Errorf("true branch must be a string literal")
	}
	whenTrue := Literal{Kind: LitString, Str: p.cur.text}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.kind != tColon {
		return nil, fmt.Errorf("expected : after true branch")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var whenFalse Node
	switch p.cur.kind {
	case tString:
		whenFalse = Literal{Kind: LitString, Str: p.cur.text}
		if err := p.advance(); err != nil {
			return nil, err
		}
	case tIdent:
		fp, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		whenFalse = fp
	default:
		return nil, fmt.Errorf("false branch must be a string literal or path")
	}

	return &ConditionalNode{Cond: cond, WhenTrue: whenTrue, WhenFalse: whenFalse}, nil
}

func (p *parser) parsePath() (*PathNode, error) {
	if p.cur.kind != tIdent {
		return nil, fmt.Errorf("expected identifier, got %q", p.cur.text)
	}
	parts := []string{p.cur.text}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.cur.kind == tDot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind != tIdent {
			return nil, fmt.Errorf("expected identifier after .")
		}
		parts = append(parts, p.cur.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	idx := -1
	if p.cur.kind == tLBracket {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind != tNumber || strings.Contains(p.cur.text, ".") || strings.HasPrefix(p.cur.text, "-") {
			return nil, fmt.Errorf("array index must be a non-negative integer")
		}
		n, err := strconv.Atoi(p.cur.text)
		if err != nil {
			return nil, fmt.Errorf("array index: %w", err)
		}
		idx = n
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind != tRBracket {
			return nil, fmt.Errorf("expected ]")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &PathNode{Parts: parts, Index: idx}, nil
}

func (p *parser) parseLiteral() (Literal, error) {
	switch p.cur.kind {
	case tString:
		lit := Literal{Kind: LitString, Str: p.cur.text}
		return lit, p.advance()
	case tNumber:
		n, err := strconv.ParseFloat(p.cur.text, 64)
		if err != nil {
			return Literal{}, err
		}
		return Literal{Kind: LitNumber, Num: n}, p.advance()
	case tIdent:
		switch p.cur.text {
		case "true":
			return Literal{Kind: LitBool, Bool: true}, p.advance()
		case "false":
			return Literal{Kind: LitBool, Bool: false}, p.advance()
		}
	}
	return Literal{}, fmt.Errorf("expected literal, got %q", p.cur.text)
}
