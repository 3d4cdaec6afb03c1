// Package resolver decides what a candidate component's generated module
// needs to import. The check is structural: it walks the candidate's
// subtree for markup, hook calls, and runtime-namespace references instead
// of substring matching, so text inside string literals never triggers it.
package resolver

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// Options names the runtime library's markers in source code.
type Options struct {
	// Global is the runtime namespace identifier, e.g. "React".
	Global string
	// HookPrefix is the stateful-primitive naming prefix, e.g. "use".
	HookPrefix string
}

// UsesRuntime reports whether a declaration's body depends on the runtime
// library: it embeds markup, calls a hook, or references the runtime
// namespace. A false positive costs one redundant import; a false negative
// would produce a broken module, so the walk errs on the inclusive side.
func UsesRuntime(n *sitter.Node, source []byte, opts Options) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	case "call_expression":
		if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" {
			if isHookName(fn.Content(source), opts.HookPrefix) {
				return true
			}
		}
	case "identifier":
		if opts.Global != "" && n.Content(source) == opts.Global {
			return true
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if UsesRuntime(n.NamedChild(i), source, opts) {
			return true
		}
	}
	return false
}

// ReferencedNames collects every identifier referenced in a subtree,
// including component names inside markup tags. Used to warn about
// references to host-local declarations that will dangle in the generated
// module.
func ReferencedNames(n *sitter.Node, source []byte) map[string]bool {
	names := make(map[string]bool)
	collectIdentifiers(n, source, names)
	return names
}

func collectIdentifiers(n *sitter.Node, source []byte, names map[string]bool) {
	if n == nil {
		return
	}
	if n.Type() == "identifier" {
		names[n.Content(source)] = true
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		collectIdentifiers(n.NamedChild(i), source, names)
	}
}

// isHookName matches the React hook convention: the prefix followed by an
// uppercase letter, as in useState or useMyThing. The bare prefix alone is
// not a hook.
func isHookName(name, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := name[len(prefix):]
	if rest == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(first)
}
