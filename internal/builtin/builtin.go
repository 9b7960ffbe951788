// Package builtin provides the standard extern rules every
// Specification gets for free: any, lookahead, lowercase, uppercase
// and numeric (spec.md §5), grounded on original_source/stdlib.py's
// reference semantics and failure wording.
package builtin

import (
	"unicode"

	"github.com/adamtc007/pegspec/internal/peg"
)

// Context returns a fresh context map binding the standard extern
// rules. Callers merge it with their own context entries (action
// helper functions, host-provided values) before constructing a
// Parser; a caller-supplied entry for the same name overrides these
// defaults, since map literals/iteration order gives the last write.
func Context() map[string]any {
	return map[string]any{
		"any":       peg.ExternFunc(Any),
		"lookahead": peg.ExternFunc(Lookahead),
		"lowercase": peg.ExternFunc(Lowercase),
		"uppercase": peg.ExternFunc(Uppercase),
		"numeric":   peg.ExternFunc(Numeric),
	}
}

// Any consumes and returns exactly one character, failing only at end
// of input.
func Any(p *peg.Parser) (any, error) {
	return p.ConsumeChar()
}

// Lookahead matches its pattern parameter without consuming input:
// the cursor is restored to its pre-match position regardless of
// whether the match succeeded.
func Lookahead(p *peg.Parser) (any, error) {
	pattern, err := p.Param("pattern")
	if err != nil {
		return nil, err
	}
	start := p.Pos()
	val, err := p.MatchRule(pattern)
	p.Seek(start)
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Lowercase consumes one character and succeeds if it is lowercase.
func Lowercase(p *peg.Parser) (any, error) {
	return consumeIf(p, unicode.IsLower, "Expected lowercase character")
}

// Uppercase consumes one character and succeeds if it is uppercase.
func Uppercase(p *peg.Parser) (any, error) {
	return consumeIf(p, unicode.IsUpper, "Expected uppercase character")
}

// Numeric consumes one character and succeeds if it is a decimal digit.
func Numeric(p *peg.Parser) (any, error) {
	return consumeIf(p, unicode.IsDigit, "Expected numeric character")
}

func consumeIf(p *peg.Parser, pred func(rune) bool, failMessage string) (any, error) {
	start := p.Pos()
	c, err := p.ConsumeChar()
	if err != nil {
		return nil, err
	}
	if !pred([]rune(c)[0]) {
		return nil, peg.Fail(start, "%s", failMessage)
	}
	return c, nil
}
