package diag

import "testing"

func TestPosString(t *testing.T) {
	p := Pos{File: "a.x", Line: 3, Col: 7}
	if got := p.String(); got != "a.x:3:7" {
		t.Errorf("Pos.String() = %q", got)
	}
	p.Col = 0
	if got := p.String(); got != "a.x:3" {
		t.Errorf("line-granular Pos.String() = %q", got)
	}
}

func TestErrorMessages(t *testing.T) {
	pos := Pos{File: "f.x", Line: 1, Col: 1}
	cases := []struct {
		err  error
		want string
	}{
		{&SyntaxError{Pos: pos, Msg: "expected ';'"},
			"f.x:1:1: expected ';'"},
		{&UndefinedReference{Pos: pos, Name: "widget"},
			"f.x:1:1: undefined reference to widget"},
		{&DuplicateDefinition{Pos: pos, Name: "s"},
			"f.x:1:1: s redefined"},
		{&CyclicTypedef{Chain: []string{"a", "b", "a"}},
			"cyclic type definition: a -> b -> a"},
		{&DuplicateEnumValue{Pos: pos, Enum: "e", Label: "B", Value: 1},
			"f.x:1:1: enum e: label B duplicates value 1"},
		{&NonConstantBound{Pos: pos, Name: "N"},
			"f.x:1:1: bound N is not a non-negative constant"},
		{&InvalidUnionCaseSet{Pos: pos, Union: "u", Reason: "duplicate case value 1"},
			"f.x:1:1: union u: duplicate case value 1"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("Error() = %q, want %q", got, c.want)
		}
	}
}
