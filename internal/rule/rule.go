// Package rule defines the in-memory grammar AST: rule elements, their
// sequencing into alternatives, and the named or anonymous rules that
// group alternatives together.
package rule

// ElementKind tags which of the three RuleElement variants a value holds.
type ElementKind int

const (
	// Literal matches an exact string.
	Literal ElementKind = iota
	// Ref matches a named rule from the active specification, or a
	// rule parameter bound in the enclosing namespace.
	Ref
	// Inline wraps a Rule value directly, matched without a name
	// lookup. Neither the grammar reader nor the engine builds Inline
	// elements: a parameter reference stays a Ref and is resolved
	// through the engine's namespace at match time.
	Inline
)

// Element is a single primitive matched at a position. Exactly one of
// the kind-specific fields is meaningful, selected by Kind.
type Element struct {
	Kind ElementKind

	// Binding is the name this element's match value is captured
	// under in the enclosing alternative's scope. Empty means unbound.
	Binding string

	// LiteralText holds the exact string to match when Kind == Literal.
	LiteralText string

	// RefName holds the rule (or parameter) name to resolve when
	// Kind == Ref.
	RefName string
	// RefArgs holds the argument rules passed to RefName, in order.
	// Each argument is itself an anonymous Rule (a full rule
	// expression, choices included).
	RefArgs []*Rule

	// InlineRule holds the substituted rule when Kind == Inline.
	InlineRule *Rule
}

// NewLiteral builds an unbound literal element.
func NewLiteral(s string) *Element {
	return &Element{Kind: Literal, LiteralText: s}
}

// NewRef builds an unbound reference element with the given arguments.
func NewRef(name string, args ...*Rule) *Element {
	return &Element{Kind: Ref, RefName: name, RefArgs: args}
}

// NewInline builds an unbound element that matches r directly.
func NewInline(r *Rule) *Element {
	return &Element{Kind: Inline, InlineRule: r}
}

// WithBinding returns e with Binding set, for chaining at construction
// sites (e.g. in tests and the grammar reader).
func (e *Element) WithBinding(name string) *Element {
	e.Binding = name
	return e
}

// Param is one formal parameter of a parameterised rule: a name and an
// optional default rule, substituted when the caller omits the
// argument.
type Param struct {
	Name    string
	Default *Rule // nil if the parameter has no default
}

// Alternative is one ordered sequence of elements within a rule,
// optionally followed by an action expression.
type Alternative struct {
	Sequence []*Element
	// Action holds the action expression's source text, verbatim,
	// with the surrounding braces stripped. A nil Action means the
	// alternative has no action (spec.md §4.2.2.c).
	Action *string
}

// HasAction reports whether a has an action expression attached.
func (a Alternative) HasAction() bool { return a.Action != nil }

// Rule is a named (or anonymous) grammar production: zero or more
// parameters and a non-empty ordered list of alternatives, OR (when
// Extern is true) no alternatives at all — its body is a host
// callback keyed by Name.
type Rule struct {
	Name         string
	Params       []Param
	Alternatives []Alternative
	Extern       bool
}

// ParamIndex returns the index of the parameter named name, or -1.
func (r *Rule) ParamIndex(name string) int {
	for i, p := range r.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// NewRefRule wraps a bareword reference as an anonymous single-
// alternative, single-element rule — the desugaring of a default
// argument, which the grammar restricts to a bareword identifier
// evaluated as a rule reference at the point of use (spec.md §9).
func NewRefRule(name string) *Rule {
	return &Rule{Alternatives: []Alternative{{Sequence: []*Element{NewRef(name)}}}}
}
