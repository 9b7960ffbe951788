// Package action implements the small embedded expression language
// actions are written in (spec.md §9's option (a): "a small expression
// sub-language with a dedicated evaluator"), in place of the host
// `eval` the source language used. It satisfies internal/peg's
// ActionEvaluator interface without importing internal/peg, so the
// two packages never depend on each other.
package action

// Evaluator evaluates action expression source against a scope map.
// Its zero value is ready to use; it holds no state of its own; all
// per-parse state lives in the scope passed to Eval.
type Evaluator struct{}

// NewEvaluator returns a ready Evaluator.
func NewEvaluator() *Evaluator { return &Evaluator{} }

// Eval parses source (the action body extracted by the grammar reader)
// and evaluates it against scope, which is context overlaid with the
// current alternative's bindings (spec.md §4.2.2.c).
func (e *Evaluator) Eval(source string, scope map[string]any) (any, error) {
	tree, err := parse(source)
	if err != nil {
		return nil, err
	}
	return tree.eval(scope)
}
