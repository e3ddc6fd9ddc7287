package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdrgen/ast"
	"xdrgen/resolve"
)

func generate(t *testing.T, src string, opts *Options) string {
	t.Helper()
	prog, err := ast.Parse("test.x", src)
	require.NoError(t, err)
	g, err := resolve.Resolve(prog)
	require.NoError(t, err)
	return Generate(g, []string{"test.x"}, opts)
}

func TestGolden(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "point.x"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("testdata", "point.golden"))
	require.NoError(t, err)

	prog, err := ast.Parse("point.x", string(src))
	require.NoError(t, err)
	g, err := resolve.Resolve(prog)
	require.NoError(t, err)
	got := Generate(g, []string{"point.x"}, &Options{Package: "shapes"})

	if got != string(want) {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(want)),
			B:        difflib.SplitLines(got),
			FromFile: "point.golden",
			ToFile:   "generated",
			Context:  3,
		})
		t.Errorf("generated output differs:\n%s", diff)
	}
}

func TestEnumOutput(t *testing.T) {
	out := generate(t, "enum color { RED = 0, GREEN = 1 };", nil)
	assert.Contains(t, out, "package main")
	assert.Contains(t, out, "\"fmt\"")
	assert.Contains(t, out, "type Color int32")
	assert.Contains(t, out, "RED Color = 0")
	assert.Contains(t, out, "func (v Color) Valid() bool")
	assert.Contains(t, out, `xdr.InvalidEnumValueError{Enum: "Color", Value: n}`)
}

func TestStructOnlySkipsFmt(t *testing.T) {
	out := generate(t, "struct p { int a; };", nil)
	assert.NotContains(t, out, "\"fmt\"")
	assert.Contains(t, out, `import xdr "xdrgen/xdr"`)
}

func TestConstOnlyHasNoImports(t *testing.T) {
	out := generate(t, "const A = 1;", nil)
	assert.NotContains(t, out, "import")
	assert.Contains(t, out, "const A = 1")
}

func TestTypedefOutput(t *testing.T) {
	out := generate(t, "typedef opaque short_id<4>;", nil)
	assert.Contains(t, out, "type Short_id []byte // bound 4")
	assert.Contains(t, out, "func DecodeShort_id(c *xdr.Cursor) (Short_id, error)")
	assert.Contains(t, out, "c.VarBytes(4)")
	assert.Contains(t, out, "b.PutVarBytes(4, v)")
}

func TestNominalTypedefCasts(t *testing.T) {
	out := generate(t, "typedef int count;", nil)
	assert.Contains(t, out, "type Count int32")
	assert.Contains(t, out, "v = Count(t0)")
	assert.Contains(t, out, "b.PutInt32(int32(v))")
}

func TestOptionField(t *testing.T) {
	out := generate(t, `
		struct point { unsigned int x; unsigned int y; };
		struct node { point *next; };`, nil)
	assert.Contains(t, out, "Next *Point")
	assert.Contains(t, out, "v.Next = new(Point)")
	assert.Contains(t, out, "if v.Next != nil {")
	assert.Contains(t, out, "b.PutBool(false)")
}

func TestVarArrayField(t *testing.T) {
	out := generate(t, "struct s { int weights<3>; };", nil)
	assert.Contains(t, out, "Weights []int32 // bound 3")
	assert.Contains(t, out, "c.Length(3)")
	assert.Contains(t, out, "c.SliceCap(t0, 4)")
	assert.Contains(t, out, "b.PutLen(3, uint32(len(v.Weights)))")
}

func TestUnbounded(t *testing.T) {
	out := generate(t, "typedef opaque blob<>;", nil)
	assert.Contains(t, out, "c.VarBytes(xdr.MaxBound)")
	assert.NotContains(t, out, "// bound")
}

func TestUnionOutput(t *testing.T) {
	out := generate(t, `
		enum color { RED = 0, GREEN = 1 };
		union shape switch (color kind) {
		case RED:
			int edges;
		case GREEN:
			void;
		};`, nil)
	assert.Contains(t, out, "Kind Color")
	assert.Contains(t, out, "_u interface{}")
	assert.Contains(t, out, "func (u *Shape) Edges() *int32")
	assert.Contains(t, out, "case 0: // RED")
	assert.Contains(t, out, `panic(fmt.Sprintf("Shape.Edges accessed when Kind is %v", u.Kind))`)
	assert.Contains(t, out, `xdr.InvalidUnionDiscriminantError{Union: "Shape", Value: int64(int32(t0))}`)
	assert.Contains(t, out, `xdr.InvalidUnionDiscriminantError{Union: "Shape", Value: int64(u.Kind)}`)
}

func TestUnionDefaultArm(t *testing.T) {
	out := generate(t, `
		union r switch (int code) {
		case 0:
			void;
		default:
			string message<>;
		};`, nil)
	assert.Contains(t, out, "func (u *R) Message() *string")
	assert.NotContains(t, out, "InvalidUnionDiscriminantError")
}

func TestFixedStructFastPath(t *testing.T) {
	out := generate(t, "struct v3 { double x; double y; double z; };", nil)
	assert.Contains(t, out, "c.Need(24)")
	assert.Contains(t, out, "v.X = c.GetDouble()")
	assert.NotContains(t, out, "var err error")
}

func TestBoolFieldSkipsFastPath(t *testing.T) {
	out := generate(t, "struct f { bool on; };", nil)
	assert.Contains(t, out, "c.Bool()")
	assert.NotContains(t, out, "c.Need(")
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(filepath.Join("testdata", "options.toml"))
	require.NoError(t, err)
	assert.Equal(t, "wire", opts.Package)
	assert.Equal(t, "example.com/rt/xdr", opts.Runtime)

	out := generate(t, "struct point { unsigned int x; unsigned int y; };", opts)
	assert.Contains(t, out, "package wire")
	assert.Contains(t, out, `import xdr "example.com/rt/xdr"`)
	idx := strings.Index(out, "//go:generate keep")
	require.GreaterOrEqual(t, idx, 0)
	assert.Greater(t, strings.Index(out, "type Point struct"), idx)
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join("testdata", "nope.toml"))
	assert.Error(t, err)
}
