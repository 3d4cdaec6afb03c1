// Package generator renders each extraction candidate as a self-contained,
// default-exported module and canonicalizes output text.
package generator

import (
	"fmt"

	"modjsx/internal/extractor"
)

// ModuleOptions configures rendered module text.
type ModuleOptions struct {
	// RuntimeModule is the runtime library's module specifier, e.g. "react".
	RuntimeModule string
	// RuntimeGlobal is the local name bound to its default import, e.g. "React".
	RuntimeGlobal string
	Format        FormatOptions
}

// Assemble builds the unformatted module text for one candidate: the
// runtime import when the body needs it, then the declaration converted to
// a default-exported form.
//
// A hoisted declaration is re-exported in place (function Header(...)
// becomes export default function Header(...), async preserved because the
// original keyword sequence follows the inserted prefix unchanged). A bound
// expression keeps its binding statement verbatim and gains a separate
// export default statement, since export default const is not valid syntax.
func Assemble(c *extractor.Candidate, opts ModuleOptions) string {
	var text string
	if c.UsesRuntime {
		quote, ok := quoteChar(opts.Format.Quote)
		if !ok {
			quote = '\''
		}
		semi := ""
		if opts.Format.Semicolons {
			semi = ";"
		}
		text = fmt.Sprintf("import %s from %c%s%c%s\n\n",
			opts.RuntimeGlobal, quote, opts.RuntimeModule, quote, semi)
	}

	switch c.Form {
	case extractor.FormBinding:
		semi := ""
		if opts.Format.Semicolons {
			semi = ";"
		}
		text += fmt.Sprintf("%s\n\nexport default %s%s\n", c.Body, c.Name, semi)
	default:
		text += "export default " + c.Body + "\n"
	}
	return text
}

// Render assembles and formats a candidate's module. A formatter fallback
// returns the assembled text unchanged; the flag lets the caller log it.
func Render(c *extractor.Candidate, opts ModuleOptions) (string, bool) {
	res := Format(Assemble(c, opts), opts.Format)
	return res.Text, res.Fallback
}
