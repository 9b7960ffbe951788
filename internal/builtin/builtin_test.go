package builtin_test

import (
	"testing"

	"github.com/adamtc007/pegspec/internal/action"
	"github.com/adamtc007/pegspec/internal/builtin"
	"github.com/adamtc007/pegspec/internal/peg"
	"github.com/adamtc007/pegspec/internal/spec"
)

func newStdlibParser(t *testing.T, grammar, input string) *peg.Parser {
	t.Helper()
	s, err := spec.Parse(grammar)
	if err != nil {
		t.Fatalf("failed to parse grammar: %v", err)
	}
	if err := builtin.Merge(s); err != nil {
		t.Fatalf("failed to merge stdlib: %v", err)
	}
	return peg.NewParser(input, s, builtin.Context(), action.NewEvaluator())
}

func TestAny_ConsumesOneCharacter(t *testing.T) {
	p := newStdlibParser(t, `main = any any`, "xy")
	got, err := p.Parse("main", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "xy" {
		t.Errorf("got %v, want %q", got, "xy")
	}
}

func TestAny_FailsAtEndOfInput(t *testing.T) {
	p := newStdlibParser(t, `main = any any`, "x")
	if _, err := p.Parse("main", false); err == nil {
		t.Fatal("expected failure at end of input")
	}
}

func TestLowercaseUppercaseNumeric(t *testing.T) {
	cases := []struct {
		rule  string
		input string
		ok    bool
	}{
		{"lowercase", "a", true},
		{"lowercase", "A", false},
		{"uppercase", "A", true},
		{"uppercase", "a", false},
		{"numeric", "5", true},
		{"numeric", "x", false},
	}
	for _, c := range cases {
		p := newStdlibParser(t, "main = "+c.rule, c.input)
		_, err := p.Parse("main", true)
		if c.ok && err != nil {
			t.Errorf("%s(%q): unexpected error: %v", c.rule, c.input, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s(%q): expected failure", c.rule, c.input)
		}
	}
}

func TestLookahead_DoesNotConsumeInput(t *testing.T) {
	p := newStdlibParser(t, `main = lookahead<"ab"> any any`, "ab")
	got, err := p.Parse("main", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ab" {
		t.Errorf("got %v, want %q (lookahead must not consume, leaving 'any any' to match)", got, "ab")
	}
}

func TestLookahead_FailsWhenPatternDoesNotMatch(t *testing.T) {
	p := newStdlibParser(t, `main = lookahead<"xy"> any`, "ab")
	if _, err := p.Parse("main", false); err == nil {
		t.Fatal("expected lookahead to fail when its pattern doesn't match")
	}
}
