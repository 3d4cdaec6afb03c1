// Package parser wraps tree-sitter parsing for React source files.
//
// JSX input is parsed with the javascript grammar, TSX with the
// typescript/tsx grammar. Parse results retain the original source bytes so
// callers can serialize subtrees and excise byte spans without re-reading.
package parser

import (
	"context"
	"path/filepath"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// Language selects the grammar used for parsing.
type Language string

const (
	// JSX is JavaScript with embedded markup.
	JSX Language = "jsx"
	// TSX is TypeScript with embedded markup.
	TSX Language = "tsx"
)

// LanguageForFile returns the language for a source file path, defaulting
// to JSX for anything that is not a TypeScript extension.
func LanguageForFile(path string) Language {
	switch filepath.Ext(path) {
	case ".ts", ".tsx":
		return TSX
	default:
		return JSX
	}
}

// Ext returns the output file extension for the language.
func (l Language) Ext() string {
	if l == TSX {
		return ".tsx"
	}
	return ".jsx"
}

// Result holds a parsed tree together with the source it was parsed from.
type Result struct {
	Tree   *sitter.Tree
	Root   *sitter.Node
	Source []byte
}

// Parse parses source text into a syntax tree. Inputs containing syntax
// errors are rejected with a *ParseError; the engine never operates on a
// partially recognized tree.
func Parse(ctx context.Context, source []byte, lang Language) (*Result, error) {
	p := sitter.NewParser()
	defer p.Close()

	switch lang {
	case TSX:
		p.SetLanguage(tsx.GetLanguage())
	default:
		p.SetLanguage(javascript.GetLanguage())
	}

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}

	root := tree.RootNode()
	if root.HasError() {
		// Build the message before Close; the nodes point into the tree's
		// C memory and are invalid afterwards.
		msg := describeSyntaxError(root, source)
		tree.Close()
		return nil, &ParseError{Message: msg}
	}

	return &Result{Tree: tree, Root: root, Source: source}, nil
}

// Close releases the parse tree.
func (r *Result) Close() {
	if r.Tree != nil {
		r.Tree.Close()
		r.Tree = nil
		r.Root = nil
	}
}

// Text returns the source text covered by a node.
func (r *Result) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(r.Source)
}

// SpanOf returns the byte span covered by a node.
func (r *Result) SpanOf(n *sitter.Node) Span {
	return Span{Start: n.StartByte(), End: n.EndByte()}
}

// Span is a half-open byte range [Start, End) within a source buffer.
type Span struct {
	Start uint32
	End   uint32
}

// Excise returns source with every span removed. Each span is extended
// through its trailing newline so the cut does not leave empty lines behind.
// Spans are applied in ascending order regardless of input order.
func Excise(source []byte, spans []Span) []byte {
	if len(spans) == 0 {
		return source
	}

	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	out := make([]byte, 0, len(source))
	cursor := uint32(0)
	for _, sp := range ordered {
		if sp.Start < cursor {
			// Overlapping or duplicate span, already removed.
			if sp.End > cursor {
				cursor = extendThroughNewline(source, sp.End)
			}
			continue
		}
		out = append(out, source[cursor:sp.Start]...)
		cursor = extendThroughNewline(source, sp.End)
	}
	if cursor < uint32(len(source)) {
		out = append(out, source[cursor:]...)
	}
	return out
}

// Excised reports how many bytes Excise removes before offset, so callers
// can translate a pre-excision offset into the pruned buffer.
func Excised(source []byte, spans []Span, offset uint32) uint32 {
	var removed uint32
	for _, sp := range spans {
		end := extendThroughNewline(source, sp.End)
		if end <= offset {
			removed += end - sp.Start
		}
	}
	return removed
}

// AdvancePastLine moves an offset past trailing whitespace and the line
// break that follows it, landing on the start of the next line.
func AdvancePastLine(source []byte, offset uint32) uint32 {
	return extendThroughNewline(source, offset)
}

func extendThroughNewline(source []byte, end uint32) uint32 {
	n := uint32(len(source))
	for end < n && (source[end] == ' ' || source[end] == '\t') {
		end++
	}
	if end < n && source[end] == '\r' {
		end++
	}
	if end < n && source[end] == '\n' {
		end++
	}
	return end
}

func describeSyntaxError(root *sitter.Node, source []byte) string {
	// Report the first ERROR or missing node for a usable message.
	var find func(n *sitter.Node) *sitter.Node
	find = func(n *sitter.Node) *sitter.Node {
		if n.IsError() || n.IsMissing() {
			return n
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if !child.HasError() {
				continue
			}
			if found := find(child); found != nil {
				return found
			}
		}
		return nil
	}

	if n := find(root); n != nil {
		point := n.StartPoint()
		return newSyntaxErrorMessage(int(point.Row)+1, int(point.Column)+1)
	}
	return "syntax error"
}
