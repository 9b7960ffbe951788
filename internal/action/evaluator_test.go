package action_test

import (
	"testing"

	"github.com/adamtc007/pegspec/internal/action"
)

func TestEval_StringLiteral(t *testing.T) {
	e := action.NewEvaluator()
	got, err := e.Eval(`"hello"`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %v, want %q", got, "hello")
	}
}

func TestEval_NumberLiteral(t *testing.T) {
	e := action.NewEvaluator()
	got, err := e.Eval(`42`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != float64(42) {
		t.Errorf("got %v, want %v", got, float64(42))
	}
}

func TestEval_Identifier(t *testing.T) {
	e := action.NewEvaluator()
	got, err := e.Eval(`name`, map[string]any{"name": "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Alice" {
		t.Errorf("got %v, want %q", got, "Alice")
	}
}

func TestEval_UnknownIdentifierIsNameError(t *testing.T) {
	e := action.NewEvaluator()
	_, err := e.Eval(`missing`, map[string]any{})
	if err == nil {
		t.Fatal("expected a NameError")
	}
	if _, ok := err.(*action.NameError); !ok {
		t.Errorf("expected *action.NameError, got %T: %v", err, err)
	}
}

func TestEval_StringConcatenation(t *testing.T) {
	e := action.NewEvaluator()
	got, err := e.Eval(`"Hello, " + name`, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello, Bob" {
		t.Errorf("got %v, want %q", got, "Hello, Bob")
	}
}

func TestEval_NumericAddition(t *testing.T) {
	e := action.NewEvaluator()
	got, err := e.Eval(`1 + 2`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != float64(3) {
		t.Errorf("got %v, want %v", got, float64(3))
	}
}

func TestEval_StringPlusNumberCoerces(t *testing.T) {
	e := action.NewEvaluator()
	got, err := e.Eval(`"count: " + 3`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "count: 3" {
		t.Errorf("got %v, want %q", got, "count: 3")
	}
}

func TestEval_FieldAccess(t *testing.T) {
	e := action.NewEvaluator()
	scope := map[string]any{
		"record": map[string]any{"first": "Alice"},
	}
	got, err := e.Eval(`record.first`, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Alice" {
		t.Errorf("got %v, want %q", got, "Alice")
	}
}

func TestEval_FieldAccessOnNonMapIsTypeError(t *testing.T) {
	e := action.NewEvaluator()
	_, err := e.Eval(`name.first`, map[string]any{"name": "Alice"})
	if err == nil {
		t.Fatal("expected a TypeError")
	}
	if _, ok := err.(*action.TypeError); !ok {
		t.Errorf("expected *action.TypeError, got %T: %v", err, err)
	}
}

func TestEval_FunctionCall(t *testing.T) {
	e := action.NewEvaluator()
	upper := action.Func(func(args ...any) (any, error) {
		s := args[0].(string)
		out := make([]byte, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			out[i] = c
		}
		return string(out), nil
	})
	got, err := e.Eval(`upper(name)`, map[string]any{
		"name":  "bob",
		"upper": upper,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "BOB" {
		t.Errorf("got %v, want %q", got, "BOB")
	}
}

func TestEval_CallingNonFunctionIsTypeError(t *testing.T) {
	e := action.NewEvaluator()
	_, err := e.Eval(`name(1)`, map[string]any{"name": "Alice"})
	if err == nil {
		t.Fatal("expected a TypeError")
	}
	if _, ok := err.(*action.TypeError); !ok {
		t.Errorf("expected *action.TypeError, got %T: %v", err, err)
	}
}

func TestEval_ParenthesizedSubExpression(t *testing.T) {
	e := action.NewEvaluator()
	got, err := e.Eval(`("a" + "b") + "c"`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc" {
		t.Errorf("got %v, want %q", got, "abc")
	}
}
