// Package syntax tokenizes XDR interface definition source.  The
// grammar itself lives in package ast; this package only turns bytes
// into positioned tokens.
package syntax

import (
	"strings"

	"xdrgen/diag"
)

type Kind int

const (
	EOF Kind = iota
	Ident
	Number

	// keywords
	Const
	Struct
	Union
	Enum
	Typedef
	Program
	Namespace
	Bool
	Unsigned
	Int
	Hyper
	Float
	Double
	Quadruple
	Void
	Version
	Switch
	Case
	Default
	Opaque
	String

	// punctuation
	Equal
	Semi
	LBrace
	RBrace
	LAngle
	RAngle
	LBracket
	RBracket
	Star
	Comma
	Colon
	LParen
	RParen
)

type Token struct {
	Kind  Kind
	Value string
	Pos   diag.Pos
}

var keywords = map[string]Kind{
	"const":     Const,
	"struct":    Struct,
	"union":     Union,
	"enum":      Enum,
	"typedef":   Typedef,
	"program":   Program,
	"namespace": Namespace,
	"bool":      Bool,
	"unsigned":  Unsigned,
	"int":       Int,
	"hyper":     Hyper,
	"float":     Float,
	"double":    Double,
	"quadruple": Quadruple,
	"void":      Void,
	"version":   Version,
	"switch":    Switch,
	"case":      Case,
	"default":   Default,
	"opaque":    Opaque,
	"string":    String,
}

var punct = map[byte]Kind{
	'=': Equal,
	';': Semi,
	'{': LBrace,
	'}': RBrace,
	'<': LAngle,
	'>': RAngle,
	'[': LBracket,
	']': RBracket,
	'*': Star,
	',': Comma,
	':': Colon,
	'(': LParen,
	')': RParen,
}

const eofRune rune = -1

type Lexer struct {
	filename  string
	input     string
	pos       int
	lineno    int
	linestart int
	midline   bool
}

func NewLexer(filename, input string) *Lexer {
	return &Lexer{
		filename: filename,
		input:    input,
		lineno:   1,
	}
}

func (l *Lexer) at(i int) rune {
	i += l.pos
	if i < 0 || i >= len(l.input) {
		return eofRune
	}
	return rune(l.input[i])
}

func (l *Lexer) here() diag.Pos {
	return diag.Pos{
		File: l.filename,
		Line: l.lineno,
		Col:  l.pos - l.linestart + 1,
	}
}

func (l *Lexer) advance(length int) {
	if length < 0 || l.pos+length > len(l.input) {
		panic("Lexer::advance: length out of range")
	}
	if length > 0 {
		end := l.pos + length
		l.midline = l.input[end-1] != '\n'
		for i := l.pos; i < end; i++ {
			if l.input[i] == '\n' {
				l.lineno++
				l.linestart = i + 1
			}
		}
		l.pos = end
	}
}

func (l *Lexer) makeToken(kind Kind, n int) Token {
	t := Token{
		Kind:  kind,
		Value: l.input[l.pos : l.pos+n],
		Pos:   l.here(),
	}
	l.advance(n)
	return t
}

func (l *Lexer) errf(msg string) *diag.SyntaxError {
	return &diag.SyntaxError{Pos: l.here(), Msg: msg}
}

func (l *Lexer) skipLine() {
	rest := l.input[l.pos:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		l.advance(i + 1)
	} else {
		l.advance(len(rest))
	}
}

func (l *Lexer) skipSpace() error {
	for {
		rest := l.input[l.pos:]
		if i := strings.IndexFunc(rest, func(c rune) bool {
			return !strings.ContainsRune(" \t\r\n", c)
		}); i > 0 {
			l.advance(i)
			continue
		} else if i < 0 {
			l.advance(len(rest))
			return nil
		}
		if strings.HasPrefix(rest, "//") {
			l.skipLine()
		} else if strings.HasPrefix(rest, "/*") {
			i := strings.Index(rest[2:], "*/")
			if i < 0 {
				return l.errf("unterminated comment")
			}
			l.advance(i + 4)
		} else {
			return nil
		}
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	if isDigit(c) {
		return true
	}
	c &^= 0x20
	return c >= 'A' && c <= 'F'
}

func isIdStart(c rune) bool {
	if c == '_' {
		return true
	}
	c &^= 0x20
	return c >= 'A' && c <= 'Z'
}

func isIdRest(c rune) bool {
	return isIdStart(c) || isDigit(c)
}

func (l *Lexer) identifier() Token {
	i := 1
	for ; isIdRest(l.at(i)); i++ {
	}
	t := l.makeToken(Ident, i)
	if kw, ok := keywords[t.Value]; ok {
		t.Kind = kw
	}
	return t
}

func (l *Lexer) integer() Token {
	i, c := 0, l.at(0)
	if c == '+' || c == '-' {
		i, c = 1, l.at(1)
	}
	if l.at(i) == '0' && l.at(i+1)|0x20 == 'x' && isHexDigit(l.at(i+2)) {
		for i += 2; isHexDigit(l.at(i)); i++ {
		}
	} else {
		for ; isDigit(l.at(i)); i++ {
		}
	}
	return l.makeToken(Number, i)
}

// Next returns the next token, with Kind == EOF at end of input.
// Lines starting with '%' are pass-through directives in the XDR
// grammar and are skipped entirely.
func (l *Lexer) Next() (Token, error) {
again:
	if err := l.skipSpace(); err != nil {
		return Token{}, err
	}
	switch c := l.at(0); {
	case c == eofRune:
		return Token{Kind: EOF, Pos: l.here()}, nil
	case isIdStart(c):
		return l.identifier(), nil
	case isDigit(c) || c == '+' || c == '-':
		return l.integer(), nil
	case c == '%' && !l.midline:
		l.skipLine()
		goto again
	default:
		if k, ok := punct[byte(c)]; ok {
			return l.makeToken(k, 1), nil
		}
		return Token{}, l.errf("bad character " + string(c))
	}
}
