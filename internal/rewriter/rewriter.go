// Package rewriter produces the updated host file text: extracted
// declarations removed, one import line spliced in per extracted component.
package rewriter

import (
	"fmt"
	"strings"

	"modjsx/internal/parser"
)

// Rewrite removes every marked statement span from source and splices the
// import lines in after the last surviving top-level import (at the top of
// the file when there are none). Surviving statements keep their relative
// order; nothing else about them changes.
//
// importsEnd is the byte offset just past the host's last pre-existing
// top-level import statement, zero when it has none, as reported by the
// scanner against the unmodified source.
func Rewrite(source []byte, removals []parser.Span, importsEnd uint32, importLines []string) string {
	pruned := parser.Excise(source, removals)
	if len(importLines) == 0 {
		return string(pruned)
	}

	var insertAt uint32
	if importsEnd > 0 {
		insertAt = parser.AdvancePastLine(source, importsEnd)
		insertAt -= parser.Excised(source, removals, insertAt)
	}
	if insertAt > uint32(len(pruned)) {
		insertAt = uint32(len(pruned))
	}

	block := strings.Join(importLines, "\n")
	if importsEnd > 0 {
		block = "\n" + block + "\n"
	} else {
		block = block + "\n\n"
	}

	var b strings.Builder
	b.Grow(len(pruned) + len(block))
	b.Write(pruned[:insertAt])
	b.WriteString(block)
	b.Write(pruned[insertAt:])
	return b.String()
}

// ImportLine renders one default-import statement for an extracted
// component, e.g. import Header from './components/Header';
func ImportLine(name, pathPrefix, quote string, semicolon bool) string {
	path := strings.TrimSuffix(pathPrefix, "/") + "/" + name
	line := fmt.Sprintf("import %s from %s%s%s", name, quote, path, quote)
	if semicolon {
		line += ";"
	}
	return line
}
