package frontend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsltools/internal/diag"
	"hlsltools/internal/source"
)

func maskString(t *testing.T, text string) (*masked, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("mask.hlsl", []byte(text)))
	bag := diag.NewBag(0)
	m := mask(file, diag.BagReporter{Bag: bag})
	require.Len(t, m.Text, len(text))
	return m, bag
}

func TestMaskKeepsOffsetsAndLines(t *testing.T) {
	src := "#define X 1\nfloat4 p : SV_Position;\n"
	m, bag := maskString(t, src)
	assert.Empty(t, bag.Items())
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(string(m.Text), "\n"))
	assert.Equal(t, "           \nfloat4 p              ;\n", string(m.Text))

	require.Len(t, m.Semantics, 1)
	assert.Equal(t, "SV_Position", m.Semantics[0].Name)
	assert.Equal(t, uint32(strings.Index(src, ":")), m.Semantics[0].Colon) //nolint:gosec // test input
}

func TestMaskLeavesCppColons(t *testing.T) {
	src := "int f(int a) { switch (a) { case 1: return a ? 2 : 3; default: return 0; } }\nclass B : A { public: int x; };"
	m, _ := maskString(t, src)
	assert.Equal(t, src, string(m.Text))
	assert.Empty(t, m.Semantics)
}

func TestMaskRegistersAndModifiers(t *testing.T) {
	src := "Texture2D t : register(t0);\nvoid f(inout float a, uniform float b) {}"
	m, _ := maskString(t, src)
	assert.Equal(t, "Texture2D t               ;\nvoid f(      float a,         float b) {}", string(m.Text))
	require.Len(t, m.Modifiers, 2)
	assert.Equal(t, "inout", m.Modifiers[0].Text)
	assert.Equal(t, "uniform", m.Modifiers[1].Text)
	assert.Equal(t, []string{"inout"}, m.modifiersBefore(uint32(strings.Index(src, "float a")))) //nolint:gosec // test input
}

func TestMaskBufferRegion(t *testing.T) {
	src := "cbuffer C : register(b2) { float x; };"
	m, _ := maskString(t, src)
	assert.Equal(t, "                           float x;   ", string(m.Text))
	require.Len(t, m.Buffers, 1)
	r := m.Buffers[0]
	assert.Equal(t, "C", r.Name)
	assert.Equal(t, "b2", r.Register)
	assert.Less(t, r.Open.End, r.Close.Start)
}

func TestMaskTechnique(t *testing.T) {
	src := "technique10 T { pass P { SetVertexShader(CompileShader(vs_4_0, VS())); } };\nfloat y;"
	m, bag := maskString(t, src)
	assert.Empty(t, bag.Items())
	head, tail, ok := strings.Cut(string(m.Text), "\n")
	require.True(t, ok)
	assert.Empty(t, strings.TrimSpace(head))
	assert.Equal(t, "float y;", tail)
	require.Len(t, m.Techniques, 1)
	assert.Equal(t, "technique10", m.Techniques[0].Keyword)
}

func TestMaskSemanticAfter(t *testing.T) {
	src := "float a : A; float b; float c : C;"
	m, _ := maskString(t, src)
	after := func(name string) string {
		off := uint32(strings.Index(src, name) + 1) //nolint:gosec // test input
		if s := m.semanticAfter(off); s != nil {
			return s.Name
		}
		return ""
	}
	assert.Equal(t, "A", after("a :"))
	assert.Equal(t, "", after("b;"))
	assert.Equal(t, "C", after("c :"))
}

func TestNumberKind(t *testing.T) {
	cases := map[string]string{
		"1": "int", "1u": "uint", "0x10": "int", "0xFFu": "uint",
		"1.0": "float", "1.0f": "float", "2e3": "float", "1.5h": "half", "1.5l": "double", "3L": "int",
	}
	names := map[int]string{0: "int", 1: "uint", 2: "float", 3: "half", 4: "double"}
	for text, want := range cases {
		assert.Equal(t, want, names[int(numberKind(text))], text)
	}
}
