package syntax

import (
	"testing"

	"xdrgen/diag"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer("test.x", src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if tok.Kind == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestTokens(t *testing.T) {
	toks := lexAll(t, "const FOO = 0x1f;\ntypedef opaque id<16>;")
	want := []struct {
		kind  Kind
		value string
	}{
		{Const, "const"}, {Ident, "FOO"}, {Equal, "="}, {Number, "0x1f"},
		{Semi, ";"},
		{Typedef, "typedef"}, {Opaque, "opaque"}, {Ident, "id"},
		{LAngle, "<"}, {Number, "16"}, {RAngle, ">"}, {Semi, ";"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Value != w.value {
			t.Errorf("token %d = (%d, %q), want (%d, %q)",
				i, toks[i].Kind, toks[i].Value, w.kind, w.value)
		}
	}
}

func TestPositions(t *testing.T) {
	toks := lexAll(t, "struct\n  foo")
	if p := toks[0].Pos; p.Line != 1 || p.Col != 1 {
		t.Errorf("struct at %v, want 1:1", p)
	}
	if p := toks[1].Pos; p.Line != 2 || p.Col != 3 {
		t.Errorf("foo at %v, want 2:3", p)
	}
}

func TestComments(t *testing.T) {
	toks := lexAll(t, "int /* a\nmultiline comment */ x // trailing\n;")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if toks[2].Pos.Line != 3 {
		t.Errorf("semicolon on line %d, want 3", toks[2].Pos.Line)
	}
}

func TestPassthroughLines(t *testing.T) {
	toks := lexAll(t, "%#include <stdio.h>\nint x;\n% another directive\n")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if toks[0].Kind != Int {
		t.Errorf("first token kind %d, want Int", toks[0].Kind)
	}
}

func TestPercentMidlineRejected(t *testing.T) {
	l := NewLexer("test.x", "int x %bad\n")
	var err error
	for err == nil {
		var tok Token
		tok, err = l.Next()
		if err == nil && tok.Kind == EOF {
			t.Fatal("mid-line % lexed without error")
		}
	}
	if _, ok := err.(*diag.SyntaxError); !ok {
		t.Fatalf("error %T, want *diag.SyntaxError", err)
	}
}

func TestSignedNumbers(t *testing.T) {
	toks := lexAll(t, "-12 +34 0xFF")
	want := []string{"-12", "+34", "0xFF"}
	for i, w := range want {
		if toks[i].Kind != Number || toks[i].Value != w {
			t.Errorf("token %d = (%d, %q), want Number %q",
				i, toks[i].Kind, toks[i].Value, w)
		}
	}
}

func TestUnterminatedComment(t *testing.T) {
	l := NewLexer("test.x", "int /* never closed")
	if _, err := l.Next(); err != nil {
		t.Fatalf("int: %v", err)
	}
	_, err := l.Next()
	serr, ok := err.(*diag.SyntaxError)
	if !ok {
		t.Fatalf("error %T, want *diag.SyntaxError", err)
	}
	if serr.Pos.File != "test.x" {
		t.Errorf("error file %q, want test.x", serr.Pos.File)
	}
}

func TestBadCharacter(t *testing.T) {
	l := NewLexer("test.x", "@")
	if _, err := l.Next(); err == nil {
		t.Fatal("@ lexed without error")
	}
}
