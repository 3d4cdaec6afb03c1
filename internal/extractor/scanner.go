package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"modjsx/internal/parser"
)

// Scan walks every top-level statement of the host file exactly once, in
// source order, and returns the extraction candidates together with the
// statement spans to remove. The traversal is read-only; removal happens
// later against the collected spans, never while visiting.
func Scan(res *parser.Result, reserved map[string]bool) *ScanResult {
	out := &ScanResult{
		Candidates:    []*Candidate{},
		Removals:      []parser.Span{},
		ImportLines:   []string{},
		TopLevelNames: map[string]bool{},
	}

	root := res.Root
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		recordTopLevelNames(res, stmt, out.TopLevelNames)
		switch stmt.Type() {
		case "import_statement":
			out.ImportLines = append(out.ImportLines, res.Text(stmt))
			out.ImportsEnd = stmt.EndByte()

		case "function_declaration", "generator_function_declaration":
			name := fieldText(res, stmt, "name")
			if !IsComponentName(name, reserved) {
				continue
			}
			out.Candidates = append(out.Candidates, &Candidate{
				Name:     name,
				Form:     FormFunction,
				Body:     res.Text(stmt),
				Node:     stmt,
				Declared: map[string]bool{name: true},
			})
			out.Removals = append(out.Removals, res.SpanOf(stmt))

		case "lexical_declaration", "variable_declaration":
			// A single statement can bind several names; each is checked
			// independently, but removal is whole-statement only.
			declared := map[string]bool{}
			recordTopLevelNames(res, stmt, declared)
			matched := false
			for j := 0; j < int(stmt.NamedChildCount()); j++ {
				decl := stmt.NamedChild(j)
				if decl.Type() != "variable_declarator" {
					continue
				}
				nameNode := decl.ChildByFieldName("name")
				if nameNode == nil || nameNode.Type() != "identifier" {
					continue
				}
				name := res.Text(nameNode)
				if !IsComponentName(name, reserved) {
					continue
				}
				if !isFunctionValued(decl.ChildByFieldName("value")) {
					continue
				}
				out.Candidates = append(out.Candidates, &Candidate{
					Name:     name,
					Form:     FormBinding,
					Body:     res.Text(stmt),
					Node:     stmt,
					Declared: declared,
				})
				matched = true
			}
			if matched {
				out.Removals = append(out.Removals, res.SpanOf(stmt))
			}
		}
	}

	return out
}

// isFunctionValued reports whether an initializer is an arrow function or an
// anonymous function expression. Both grammar spellings of the latter are
// accepted.
func isFunctionValued(value *sitter.Node) bool {
	if value == nil {
		return false
	}
	switch value.Type() {
	case "arrow_function", "function_expression", "function", "generator_function":
		return true
	}
	return false
}

func recordTopLevelNames(res *parser.Result, stmt *sitter.Node, names map[string]bool) {
	switch stmt.Type() {
	case "function_declaration", "generator_function_declaration", "class_declaration":
		if name := fieldText(res, stmt, "name"); name != "" {
			names[name] = true
		}
	case "lexical_declaration", "variable_declaration":
		for j := 0; j < int(stmt.NamedChildCount()); j++ {
			decl := stmt.NamedChild(j)
			if decl.Type() != "variable_declarator" {
				continue
			}
			if nameNode := decl.ChildByFieldName("name"); nameNode != nil && nameNode.Type() == "identifier" {
				names[res.Text(nameNode)] = true
			}
		}
	}
}

func fieldText(res *parser.Result, n *sitter.Node, field string) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return res.Text(child)
}
