package parser

import "fmt"

// ParseError indicates the input is not syntactically valid. It aborts the
// whole run; no partial output is produced after one.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse %s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("parse: %s", e.Message)
}

func newSyntaxErrorMessage(line, col int) string {
	return fmt.Sprintf("syntax error at line %d, column %d", line, col)
}
