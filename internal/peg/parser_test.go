package peg_test

import (
	"testing"

	"github.com/adamtc007/pegspec/internal/action"
	"github.com/adamtc007/pegspec/internal/builtin"
	"github.com/adamtc007/pegspec/internal/peg"
	"github.com/adamtc007/pegspec/internal/spec"
)

func mustSpec(t *testing.T, src string) *spec.Specification {
	t.Helper()
	s, err := spec.Parse(src)
	if err != nil {
		t.Fatalf("failed to parse specification: %v", err)
	}
	return s
}

func newParser(t *testing.T, src, input string) *peg.Parser {
	t.Helper()
	s := mustSpec(t, src)
	return peg.NewParser(input, s, builtin.Context(), action.NewEvaluator())
}

func TestParse_LiteralMatch(t *testing.T) {
	p := newParser(t, `main = "hello"`, "hello")
	got, err := p.Parse("main", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %v, want %q", got, "hello")
	}
}

func TestParse_LiteralMismatchFails(t *testing.T) {
	p := newParser(t, `main = "hello"`, "hell")
	_, err := p.Parse("main", false)
	if err == nil {
		t.Fatal("expected a ParseFail on short input")
	}
	if err.Error() != "Unexpected EOF" {
		t.Errorf("got %q, want %q", err.Error(), "Unexpected EOF")
	}
}

func TestParse_ClosedRejectsTrailingInput(t *testing.T) {
	p := newParser(t, `main = "hello"`, "hellos")
	_, err := p.Parse("main", true)
	if err == nil {
		t.Fatal("expected closed=true to reject trailing input")
	}
	want := `Expected EOF, found "s"`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestParse_OrderedChoice(t *testing.T) {
	grammar := `main = "a" | "b"`

	ok := newParser(t, grammar, "b")
	got, err := ok.Parse("main", true)
	if err != nil || got != "b" {
		t.Fatalf("got (%v, %v), want (\"b\", nil)", got, err)
	}

	fail := newParser(t, grammar, "c")
	_, err = fail.Parse("main", true)
	if err == nil {
		t.Fatal("expected failure listing both alternatives")
	}
	want := "All alternatives failed:\n" +
		`    expected "a"` + "\n" +
		`    expected "b"`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestParse_ArityMismatchTooManyArgsIsTypeError(t *testing.T) {
	grammar := "pair<x> = x \",\" x\n" + `main = pair<"a", "b">`
	p := newParser(t, grammar, "a,a")
	_, err := p.Parse("main", false)
	if err == nil {
		t.Fatal("expected a TypeError for too many arguments")
	}
	if _, ok := err.(*peg.TypeError); !ok {
		t.Errorf("expected *peg.TypeError, got %T: %v", err, err)
	}
}

func TestParse_ArityMismatchMissingRequiredArgIsTypeError(t *testing.T) {
	grammar := "pair<x> = x \",\" x\n" + `main = pair`
	p := newParser(t, grammar, "a,a")
	_, err := p.Parse("main", false)
	if err == nil {
		t.Fatal("expected a TypeError for a missing required argument")
	}
	if _, ok := err.(*peg.TypeError); !ok {
		t.Errorf("expected *peg.TypeError, got %T: %v", err, err)
	}
}

func TestParse_MissingArgWithDefaultSucceeds(t *testing.T) {
	grammar := "letter = \"a\"\n" + "pair<x=letter> = x \",\" x\n" + `main = pair`
	p := newParser(t, grammar, "a,a")
	got, err := p.Parse("main", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a,a" {
		t.Errorf("got %v, want %q", got, "a,a")
	}
}

func TestParse_ExternDigitSequence(t *testing.T) {
	grammar := "digit = ...\nnumber = digit digit digit"
	s := mustSpec(t, grammar)
	ctx := builtin.Context()
	ctx["digit"] = peg.ExternFunc(builtin.Numeric)

	p := peg.NewParser("123", s, ctx, action.NewEvaluator())
	got, err := p.Parse("number", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "123" {
		t.Errorf("got %v, want %q", got, "123")
	}

	p2 := peg.NewParser("12a", s, ctx, action.NewEvaluator())
	if _, err := p2.Parse("number", true); err == nil {
		t.Fatal("expected failure on non-numeric third character")
	}
}

func TestParse_ParameterSubstitutionIsLexical(t *testing.T) {
	grammar := `pair<x> = x "," x` + "\n" + `main = pair<"ab">`

	ok := newParser(t, grammar, "ab,ab")
	if got, err := ok.Parse("main", true); err != nil || got != "ab,ab" {
		t.Fatalf("got (%v, %v), want (\"ab,ab\", nil)", got, err)
	}

	fail := newParser(t, grammar, "ab,cd")
	if _, err := fail.Parse("main", true); err == nil {
		t.Fatal("expected a failure when the second x doesn't match the bound argument")
	}
}

func TestParse_ActionSeesBinding(t *testing.T) {
	grammar := "n = \"Alice\" | \"Bob\"\n" + `greet = n$name -> { "Hello, " + name }`
	p := newParser(t, grammar, "Alice")
	got, err := p.Parse("greet", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello, Alice" {
		t.Errorf("got %v, want %q", got, "Hello, Alice")
	}
}

func TestParse_FirstMatchWinsOverLongerAlternative(t *testing.T) {
	// PEG ordered choice: "cat" matches first and "category" is never
	// attempted, even though it would also match and consume more.
	p := newParser(t, `word = "cat" | "category"`, "category")
	got, err := p.Parse("word", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "cat" {
		t.Errorf("got %v, want %q (first-match-wins)", got, "cat")
	}
}

func TestParse_UnknownRuleIsNameError(t *testing.T) {
	p := newParser(t, `main = missing`, "x")
	_, err := p.Parse("main", false)
	if err == nil {
		t.Fatal("expected a NameError")
	}
	if _, ok := err.(*peg.NameError); !ok {
		t.Errorf("expected *peg.NameError, got %T: %v", err, err)
	}
}

func TestParse_SingleElementPassesThroughValue(t *testing.T) {
	p := newParser(t, "a = \"x\"\nmain = a", "x")
	got, err := p.Parse("main", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x" {
		t.Errorf("got %v, want %q", got, "x")
	}
}

func TestParse_BacktrackingRestoresCursorExactly(t *testing.T) {
	// "a" "y" then "ab": the first alternative consumes 'a' before
	// failing on 'b' != 'y'; the cursor must be back at 0 for the
	// second alternative to see the full "ab" again.
	p := newParser(t, `main = "a" "y" | "ab"`, "ab")
	got, err := p.Parse("main", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ab" {
		t.Errorf("got %v, want %q", got, "ab")
	}
}
