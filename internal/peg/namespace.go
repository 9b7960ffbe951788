package peg

import (
	"fmt"

	"github.com/adamtc007/pegspec/internal/rule"
)

// namespace maps rule-parameter names to concrete Rules, threaded
// immutably through the recursive matcher rather than cloned per call
// (spec.md §9): extending it only ever allocates one new frame, never
// rewrites the rule bodies it closes over.
type namespace struct {
	parent *namespace
	name   string
	rule   *rule.Rule
}

// lookup walks the namespace chain for name, matching spec.md §4.2
// step 2.a: parameter bindings introduced by an enclosing
// parameterised call remain visible to child rule matches within that
// call tree.
func (ns *namespace) lookup(name string) (*rule.Rule, bool) {
	for n := ns; n != nil; n = n.parent {
		if n.name == name {
			return n.rule, true
		}
	}
	return nil, false
}

// extend returns a new namespace with name bound to r, chained in
// front of ns.
func (ns *namespace) extend(name string, r *rule.Rule) *namespace {
	return &namespace{parent: ns, name: name, rule: r}
}

// checkArity reports a structural TypeError when a call supplies more
// arguments than r declares, or fewer than r requires once parameters
// with defaults are discounted — the arity check original_source/
// parser.py:48-49 raises unconditionally, generalised here for
// defaults per spec.md §4.2 step 1 (a caller may omit any trailing
// parameter that has a default, but never more than that).
func checkArity(r *rule.Rule, args []*rule.Rule) error {
	if len(args) > len(r.Params) {
		return &TypeError{Message: fmt.Sprintf(
			"rule %q takes %d parameter(s), got %d", ruleName(r), len(r.Params), len(args),
		)}
	}
	for i := len(args); i < len(r.Params); i++ {
		if r.Params[i].Default == nil {
			return &TypeError{Message: fmt.Sprintf(
				"rule %q missing argument for parameter %q", ruleName(r), r.Params[i].Name,
			)}
		}
	}
	return nil
}

func ruleName(r *rule.Rule) string {
	if r.Name == "" {
		return "<anonymous>"
	}
	return r.Name
}

// buildNamespace implements spec.md §4.2 step 1: take the rule's
// parameter defaults, then overlay the positional arguments supplied
// by the caller.
func buildNamespace(parent *namespace, r *rule.Rule, args []*rule.Rule) *namespace {
	ns := parent
	for _, p := range r.Params {
		if p.Default != nil {
			ns = ns.extend(p.Name, p.Default)
		}
	}
	for i, p := range r.Params {
		if i < len(args) {
			ns = ns.extend(p.Name, args[i])
		}
	}
	return ns
}
