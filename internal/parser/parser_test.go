package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid JSX", func(t *testing.T) {
		res, err := Parse(ctx, []byte("function App() { return <div>hi</div>; }\n"), JSX)
		require.NoError(t, err)
		defer res.Close()

		assert.Equal(t, "program", res.Root.Type())
		assert.False(t, res.Root.HasError())
	})

	t.Run("Valid TSX", func(t *testing.T) {
		source := "const n: number = 1;\nfunction App(): any { return <div />; }\n"
		res, err := Parse(ctx, []byte(source), TSX)
		require.NoError(t, err)
		defer res.Close()

		assert.False(t, res.Root.HasError())
	})

	t.Run("Syntax Error", func(t *testing.T) {
		_, err := Parse(ctx, []byte("const A = ;\n"), JSX)
		require.Error(t, err)

		perr, ok := err.(*ParseError)
		require.True(t, ok, "should be a ParseError")
		assert.Contains(t, perr.Error(), "syntax error")
	})

	t.Run("Unterminated Markup Tag", func(t *testing.T) {
		// The error message is built from tree nodes; it must be assembled
		// before the tree is released, not after.
		_, err := Parse(ctx, []byte("function App() { return <div>; }\n"), JSX)
		require.Error(t, err)

		perr, ok := err.(*ParseError)
		require.True(t, ok, "should be a ParseError")
		assert.Contains(t, perr.Message, "syntax error")
	})
}

func TestLanguageForFile(t *testing.T) {
	assert.Equal(t, JSX, LanguageForFile("src/App.jsx"))
	assert.Equal(t, JSX, LanguageForFile("src/App.js"))
	assert.Equal(t, TSX, LanguageForFile("src/App.tsx"))
	assert.Equal(t, TSX, LanguageForFile("src/util.ts"))
	assert.Equal(t, ".jsx", JSX.Ext())
	assert.Equal(t, ".tsx", TSX.Ext())
}

func TestExcise(t *testing.T) {
	source := []byte("aaa\nbbb\nccc\nddd\n")

	t.Run("Removes Span And Its Newline", func(t *testing.T) {
		start := uint32(strings.Index(string(source), "bbb"))
		out := Excise(source, []Span{{Start: start, End: start + 3}})
		assert.Equal(t, "aaa\nccc\nddd\n", string(out))
	})

	t.Run("Multiple Spans Out Of Order", func(t *testing.T) {
		b := uint32(strings.Index(string(source), "bbb"))
		d := uint32(strings.Index(string(source), "ddd"))
		out := Excise(source, []Span{{Start: d, End: d + 3}, {Start: b, End: b + 3}})
		assert.Equal(t, "aaa\nccc\n", string(out))
	})

	t.Run("No Spans", func(t *testing.T) {
		out := Excise(source, nil)
		assert.Equal(t, string(source), string(out))
	})

	t.Run("Duplicate Span Removed Once", func(t *testing.T) {
		b := uint32(strings.Index(string(source), "bbb"))
		sp := Span{Start: b, End: b + 3}
		out := Excise(source, []Span{sp, sp})
		assert.Equal(t, "aaa\nccc\nddd\n", string(out))
	})
}

func TestExcised(t *testing.T) {
	source := []byte("aaa\nbbb\nccc\n")
	b := uint32(strings.Index(string(source), "bbb"))
	spans := []Span{{Start: b, End: b + 3}}

	// Offset at the start of ccc loses the four bytes of "bbb\n".
	c := uint32(strings.Index(string(source), "ccc"))
	assert.Equal(t, uint32(4), Excised(source, spans, c))
	// Offset before the span is unaffected.
	assert.Equal(t, uint32(0), Excised(source, spans, b))
}

func TestAdvancePastLine(t *testing.T) {
	source := []byte("import x;  \nnext")
	end := uint32(strings.Index(string(source), ";")) + 1
	assert.Equal(t, uint32(strings.Index(string(source), "next")), AdvancePastLine(source, end))
}
