package grammar

import "fmt"

// SyntaxError reports a structural defect in a grammar specification's
// surface syntax, found while reading rule definitions. It is never
// caught by the parse engine's backtracking.
type SyntaxError struct {
	Line    int // 1-based physical line on which the offending definition starts, 0 if not applicable
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func syntaxErrorf(line int, format string, args ...any) error {
	return &SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)}
}
