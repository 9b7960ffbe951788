package builtin

import "github.com/adamtc007/pegspec/internal/spec"

// Source is the specification source text declaring the standard
// extern rules' signatures (spec.md §5). An extern rule's formal
// parameters live in the grammar text itself, exactly like any other
// rule — lookahead's "pattern" parameter is declared here, not
// hard-coded into the Go callback — so a specification that wants the
// standard library merges this text in before parsing its own rules.
const Source = `any = ...
lookahead<pattern> = ...
lowercase = ...
uppercase = ...
numeric = ...`

// Merge parses Source and overlays it onto s, leaving any
// same-named rule s already defines untouched (spec.Specification.Merge's
// "later wins" semantics — a specification may shadow a standard rule
// by declaring its own).
func Merge(s *spec.Specification) error {
	std, err := spec.Parse(Source)
	if err != nil {
		return err
	}
	s.Merge(std)
	return nil
}
