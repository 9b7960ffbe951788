package action

// SyntaxError reports a malformed action expression: the grammar
// reader only validated brace balance and string-literal skipping
// (spec.md §4.1), so malformed expressions surface here instead, at
// evaluation time.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string { return e.Message }

// NameError reports an identifier not found in the action's merged
// scope (context ⊕ bindings), or a field missing from a map value.
type NameError struct {
	Name string
}

func (e *NameError) Error() string { return "name not found: " + e.Name }

// TypeError reports a value used in a way its runtime type doesn't
// support: calling a non-function, accessing a field of a non-map
// value, or adding two operands of which neither is a string and
// which are not both numbers.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }
