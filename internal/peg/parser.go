// Package peg implements the backtracking match engine: given a rule
// lookup and a starting rule name, it walks the rule AST (internal/rule)
// against an input string using ordered-choice PEG semantics (spec.md
// §4.2). It depends on neither internal/spec nor internal/action
// directly — RuleLookup and ActionEvaluator are satisfied structurally
// by those packages — so the three stay free of import cycles.
package peg

import (
	"fmt"

	"github.com/adamtc007/pegspec/internal/rule"
)

// RuleLookup resolves a name to its Rule. *spec.Specification satisfies
// this without either package importing the other.
type RuleLookup interface {
	Lookup(name string) (*rule.Rule, bool)
}

// ActionEvaluator evaluates an action expression's source against a
// scope (the ambient context overlaid with the alternative's captured
// bindings) and returns its value. internal/action.Evaluator satisfies
// this.
type ActionEvaluator interface {
	Eval(source string, scope map[string]any) (any, error)
}

// ExternFunc is a host callback bound to an Extern rule (spec.md §5).
// Unlike an action function call, an extern callback receives the
// Parser itself and resolves its own formal parameters as unmatched
// Rule values via Parser.Param — a rule like "lookahead<pattern>" must
// inspect pattern's grammar without committing to match it, which a
// pre-evaluated argument value cannot express.
type ExternFunc func(p *Parser) (any, error)

// Tracer receives rule-entry, rule-exit and backtrack notifications as
// the engine runs, for diagnostic tooling (internal/trace).
type Tracer interface {
	Enter(rule string, pos int)
	Exit(rule string, pos int, ok bool)
	Backtrack(rule string, pos int, message string)
}

// Parser holds one parse's mutable state: the input, the current
// cursor, and the collaborators injected at construction. A Parser is
// not safe for concurrent use; build a fresh one per Parse call.
type Parser struct {
	input []rune
	pos   int

	lookup  RuleLookup
	context map[string]any
	eval    ActionEvaluator
	tracer  Tracer

	ns *namespace
}

// NewParser builds a Parser over input. context supplies both the
// ExternFunc values keyed by extern rule name and the ambient
// identifiers actions see merged with their alternative's bindings.
func NewParser(input string, lookup RuleLookup, context map[string]any, eval ActionEvaluator) *Parser {
	return &Parser{
		input:   []rune(input),
		lookup:  lookup,
		context: context,
		eval:    eval,
	}
}

// SetTracer attaches a Tracer; nil disables tracing.
func (p *Parser) SetTracer(t Tracer) { p.tracer = t }

// Pos returns the current cursor position, in runes.
func (p *Parser) Pos() int { return p.pos }

// Len returns the input length, in runes.
func (p *Parser) Len() int { return len(p.input) }

// Input returns the full input as runes. Callers must not mutate it.
func (p *Parser) Input() []rune { return p.input }

// Parse matches startRule against the full input from position 0. When
// closed is true, any input remaining after a successful match is a
// failure (spec.md §4.3's "closed" parse mode); when false, a
// successful partial match is returned as-is.
func (p *Parser) Parse(startRule string, closed bool) (any, error) {
	p.pos = 0
	r, ok := p.lookup.Lookup(startRule)
	if !ok {
		return nil, &NameError{Name: startRule}
	}
	val, err := p.matchRule(r, nil, nil)
	if err != nil {
		if pf, ok := err.(*ParseFail); ok {
			return nil, pf.Untriggered()
		}
		return nil, err
	}
	if closed && p.pos != len(p.input) {
		return nil, Fail(p.pos, "Expected EOF, found %q", string(p.input[p.pos:]))
	}
	return val, nil
}

// MatchRule matches r against the current position using the Parser's
// currently active namespace, for use by ExternFunc implementations
// that need to match a sub-pattern (e.g. lookahead's pattern
// parameter). It is equivalent to matching an anonymous, argument-less
// reference to r from the call site that is currently executing.
func (p *Parser) MatchRule(r *rule.Rule) (any, error) {
	return p.matchRule(r, nil, p.ns)
}

// Param resolves name against the namespace active for the Extern rule
// currently being matched — i.e. the rule's own formal parameters and
// whatever it inherited from its caller's namespace. It returns a
// structural NameError if name is not bound.
func (p *Parser) Param(name string) (*rule.Rule, error) {
	r, ok := p.ns.lookup(name)
	if !ok {
		return nil, &NameError{Name: name}
	}
	return r, nil
}

// ConsumeChar consumes and returns exactly one rune, or fails at the
// current position with "Unexpected EOF" if the input is exhausted
// (spec.md §4.4).
func (p *Parser) ConsumeChar() (string, error) {
	if p.pos >= len(p.input) {
		return "", Fail(p.pos, "Unexpected EOF")
	}
	c := p.input[p.pos]
	p.pos++
	return string(c), nil
}

// ConsumeString consumes len(s) runes and returns them if they
// case-sensitively equal s, without advancing on failure. Running out
// of input mid-literal is "Unexpected EOF" (spec.md §8 scenario 1); a
// literal mismatch with enough input remaining names what was expected.
func (p *Parser) ConsumeString(s string) (string, error) {
	rs := []rune(s)
	if p.pos+len(rs) > len(p.input) {
		return "", Fail(p.pos, "Unexpected EOF")
	}
	for i, c := range rs {
		if p.input[p.pos+i] != c {
			return "", Fail(p.pos, "expected %q", s)
		}
	}
	p.pos += len(rs)
	return s, nil
}

// Peek returns the rune at the current position without consuming it,
// and false if the input is exhausted.
func (p *Parser) Peek() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

// Seek rewinds or advances the cursor directly to pos, in runes. It
// exists for ExternFunc implementations like lookahead that must
// match a pattern and then discard any cursor movement it made.
func (p *Parser) Seek(pos int) { p.pos = pos }

// matchRule implements spec.md §4.2: build the augmented namespace from
// r's parameters (defaults, then positional args), then try each
// alternative in order, backtracking the cursor between attempts.
func (p *Parser) matchRule(r *rule.Rule, args []*rule.Rule, ns *namespace) (any, error) {
	if r.Extern {
		return p.matchExtern(r, args, ns)
	}

	if err := checkArity(r, args); err != nil {
		return nil, err
	}

	childNS := buildNamespace(ns, r, args)
	start := p.pos
	prevNS := p.ns
	p.ns = childNS
	defer func() { p.ns = prevNS }()

	if p.tracer != nil {
		p.tracer.Enter(r.Name, start)
	}

	var fails []*ParseFail
	for _, alt := range r.Alternatives {
		p.pos = start
		val, err := p.matchAlternative(alt, childNS)
		if err == nil {
			if p.tracer != nil {
				p.tracer.Exit(r.Name, p.pos, true)
			}
			return val, nil
		}
		pf, ok := err.(*ParseFail)
		if !ok {
			return nil, err
		}
		if p.tracer != nil {
			p.tracer.Backtrack(r.Name, start, pf.Message)
		}
		if pf.Triggered {
			if p.tracer != nil {
				p.tracer.Exit(r.Name, start, false)
			}
			return nil, pf.Untriggered()
		}
		fails = append(fails, pf)
	}
	p.pos = start
	if p.tracer != nil {
		p.tracer.Exit(r.Name, start, false)
	}
	return nil, combineFailures(start, fails)
}

// matchExtern binds the extern rule's own namespace (so its Params
// resolve through Parser.Param during the callback) and dispatches to
// the ExternFunc bound in context under the rule's name.
func (p *Parser) matchExtern(r *rule.Rule, args []*rule.Rule, ns *namespace) (any, error) {
	if err := checkArity(r, args); err != nil {
		return nil, err
	}

	childNS := buildNamespace(ns, r, args)
	prevNS := p.ns
	p.ns = childNS
	defer func() { p.ns = prevNS }()

	bound, ok := p.context[r.Name]
	if !ok {
		return nil, &TypeError{Message: fmt.Sprintf("extern rule %q has no bound callback", r.Name)}
	}
	fn, ok := bound.(ExternFunc)
	if !ok {
		return nil, &TypeError{Message: fmt.Sprintf("extern rule %q is bound to a non-callback value", r.Name)}
	}
	start := p.pos
	if p.tracer != nil {
		p.tracer.Enter(r.Name, start)
	}
	val, err := fn(p)
	if p.tracer != nil {
		p.tracer.Exit(r.Name, p.pos, err == nil)
	}
	return val, err
}

// matchAlternative matches one alternative's sequence element by
// element, capturing bindings, then applies spec.md §4.2.2's result
// rule: an action expression evaluates against context-plus-bindings;
// otherwise a multi-element sequence yields its matched substring and
// a single-element sequence passes through that element's value.
func (p *Parser) matchAlternative(alt rule.Alternative, ns *namespace) (any, error) {
	start := p.pos
	bindings := make(map[string]any, len(alt.Sequence))
	var last any

	for _, e := range alt.Sequence {
		val, err := p.matchElement(e, ns)
		if err != nil {
			return nil, err
		}
		if e.Binding != "" {
			bindings[e.Binding] = val
		}
		last = val
	}

	if alt.HasAction() {
		scope := make(map[string]any, len(p.context)+len(bindings))
		for k, v := range p.context {
			scope[k] = v
		}
		for k, v := range bindings {
			scope[k] = v
		}
		return p.eval.Eval(*alt.Action, scope)
	}

	if len(alt.Sequence) > 1 {
		return string(p.input[start:p.pos]), nil
	}
	if len(alt.Sequence) == 1 {
		return last, nil
	}
	return "", nil
}

// matchElement dispatches on the element's kind. A Ref first resolves
// against ns (a bound rule parameter shadows the global specification,
// spec.md §4.4) and falls back to the RuleLookup; resolving against
// neither is a structural NameError, not a ParseFail.
func (p *Parser) matchElement(e *rule.Element, ns *namespace) (any, error) {
	switch e.Kind {
	case rule.Literal:
		return p.ConsumeString(e.LiteralText)
	case rule.Inline:
		return p.matchRule(e.InlineRule, nil, ns)
	case rule.Ref:
		if bound, ok := ns.lookup(e.RefName); ok {
			return p.matchRule(bound, e.RefArgs, ns)
		}
		r, ok := p.lookup.Lookup(e.RefName)
		if !ok {
			return nil, &NameError{Name: e.RefName}
		}
		return p.matchRule(r, e.RefArgs, ns)
	default:
		return nil, &TypeError{Message: "unknown element kind"}
	}
}
