package peg

import "fmt"

// NameError reports a Ref whose name resolves against neither the
// active Specification nor an in-scope rule parameter. It is a
// structural error: raised outside of backtracking and aborts the
// enclosing Parse call.
type NameError struct {
	Name string
}

func (e *NameError) Error() string { return fmt.Sprintf("rule unknown: %q", e.Name) }

// TypeError reports a rule invoked with the wrong number of
// parameter arguments, or an Extern rule whose context binding is
// missing or not callable.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }
