package generator

import (
	"strings"
	"unicode/utf8"
)

// FormatOptions configures output canonicalization.
type FormatOptions struct {
	Quote      string // "single" or "double"
	Indent     int    // spaces per indentation level
	Semicolons bool
}

// FormatResult carries formatted text, or the untouched input when
// formatting had to bail out. Fallback is an explicit branch so callers can
// log the degradation and tests can exercise it; it is never a run failure.
type FormatResult struct {
	Text     string
	Fallback bool
}

// Format canonicalizes source text: trailing whitespace stripped, blank-line
// runs collapsed, leading tabs converted to the configured indent, module
// specifier quotes in import/export statements normalized, and a single
// trailing newline ensured. It deliberately leaves statement bodies and
// markup untouched. Unformattable input degrades to the raw text.
func Format(text string, opts FormatOptions) FormatResult {
	quote, ok := quoteChar(opts.Quote)
	if !ok || !utf8.ValidString(text) {
		return FormatResult{Text: text, Fallback: true}
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		line = expandLeadingTabs(line, opts.Indent)
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		if isModuleStatement(line) {
			line = normalizeSpecifierQuotes(line, quote)
			line = applySemicolon(line, quote, opts.Semicolons)
		}
		out = append(out, line)
	}

	formatted := strings.Join(out, "\n")
	formatted = strings.TrimRight(formatted, "\n") + "\n"
	return FormatResult{Text: formatted}
}

func quoteChar(style string) (byte, bool) {
	switch style {
	case "single", "":
		return '\'', true
	case "double":
		return '"', true
	}
	return 0, false
}

func expandLeadingTabs(line string, indent int) string {
	if indent <= 0 {
		return line
	}
	i := 0
	for i < len(line) && line[i] == '\t' {
		i++
	}
	if i == 0 {
		return line
	}
	return strings.Repeat(" ", i*indent) + line[i:]
}

// isModuleStatement matches the only statements the formatter rewrites:
// imports and re-exports with a module specifier.
func isModuleStatement(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if strings.HasPrefix(trimmed, "import ") {
		return true
	}
	return strings.HasPrefix(trimmed, "export ") && strings.Contains(trimmed, " from ")
}

// normalizeSpecifierQuotes rewrites the quotes around the trailing module
// specifier. The specifier is the last quoted region on the line; anything
// containing the target quote character is left alone.
func normalizeSpecifierQuotes(line string, quote byte) string {
	other := byte('"')
	if quote == '"' {
		other = '\''
	}

	end := strings.LastIndexByte(line, other)
	if end < 0 {
		return line
	}
	start := strings.LastIndexByte(line[:end], other)
	if start < 0 {
		return line
	}
	spec := line[start+1 : end]
	if strings.IndexByte(spec, quote) >= 0 {
		return line
	}
	return line[:start] + string(quote) + spec + string(quote) + line[end+1:]
}

func applySemicolon(line string, quote byte, want bool) string {
	trimmed := strings.TrimRight(line, " ")
	switch {
	case want && strings.HasSuffix(trimmed, string(quote)):
		return trimmed + ";"
	case !want && strings.HasSuffix(trimmed, ";"):
		return strings.TrimSuffix(trimmed, ";")
	}
	return line
}
