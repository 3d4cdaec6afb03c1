// Package extractor finds extractable component declarations in a parsed
// host file and snapshots everything later stages need to split them out.
package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"modjsx/internal/parser"
)

// Form distinguishes how a component is declared in the host file.
type Form string

const (
	// FormFunction is a hoisted named declaration: function Header() {...}
	FormFunction Form = "function"
	// FormBinding is a name bound to a function-valued expression:
	// const Sidebar = () => {...}
	FormBinding Form = "binding"
)

// Candidate is one discovered sub-component. Body is captured at discovery
// time, before any host mutation, and is immutable afterwards.
type Candidate struct {
	Name        string
	Form        Form
	Body        string
	UsesRuntime bool

	// Node is the full declaration statement, valid only for the run that
	// produced it.
	Node *sitter.Node
	// Declared holds every name the statement itself binds. For a
	// multi-binding statement this includes sibling bindings, which travel
	// with the verbatim statement into the generated module.
	Declared map[string]bool
}

// ScanResult is everything one read-only pass over the host tree yields:
// the candidates in declaration order, the statement spans to remove, and
// the pre-existing top-level imports that anchor new import insertion.
type ScanResult struct {
	Candidates  []*Candidate
	Removals    []parser.Span
	ImportLines []string
	// ImportsEnd is the byte offset just past the last top-level import
	// statement, zero when the host has none.
	ImportsEnd uint32
	// TopLevelNames is every name declared at the top level of the host,
	// extractable or not. Generated modules referencing one of these (other
	// than their own) carry a dangling reference worth warning about.
	TopLevelNames map[string]bool
}
