package peg

import (
	"fmt"
	"strings"
)

// ParseFail is the currency of backtracking: raised when the input
// does not conform to an alternative. It is a plain value, not a
// panic/exception, to avoid throw/catch overhead on hot backtracking
// paths (spec.md §9).
type ParseFail struct {
	Position  int
	Message   string
	Children  []*ParseFail
	Triggered bool
}

// Fail constructs an ordinary (non-triggered) ParseFail at pos.
func Fail(pos int, format string, args ...any) *ParseFail {
	return &ParseFail{Position: pos, Message: fmt.Sprintf(format, args...)}
}

// Trigger marks f as a triggered failure: the engine re-raises it
// immediately without trying further alternatives in the rule that
// raised it, but unwraps it to an ordinary failure one frame up
// (spec.md §7).
func (f *ParseFail) Trigger() *ParseFail {
	return &ParseFail{Position: f.Position, Message: f.Message, Children: f.Children, Triggered: true}
}

// Untriggered returns a copy of f with Triggered cleared.
func (f *ParseFail) Untriggered() *ParseFail {
	if !f.Triggered {
		return f
	}
	return &ParseFail{Position: f.Position, Message: f.Message, Children: f.Children}
}

// Error renders Message alone when there are no Children, or Message
// followed by each child's own rendering indented one level — the
// single place that builds the cascade, so a combined failure's text
// is never baked into Message as well (that would render it twice).
func (f *ParseFail) Error() string {
	if len(f.Children) == 0 {
		return f.Message
	}
	lines := make([]string, len(f.Children))
	for i, c := range f.Children {
		lines[i] = "    " + c.Error()
	}
	return f.Message + "\n" + strings.Join(lines, "\n")
}

// combineFailures implements spec.md §4.2 step 3: a single failure is
// re-raised as-is; more than one is combined into one ParseFail whose
// Message names the cascade and whose Children hold the originals —
// Error() does the indenting, so Message never pre-bakes the list.
func combineFailures(pos int, fails []*ParseFail) *ParseFail {
	if len(fails) == 1 {
		return fails[0]
	}
	return &ParseFail{
		Position: pos,
		Message:  "All alternatives failed:",
		Children: fails,
	}
}
