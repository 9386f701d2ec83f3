package engine

import (
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/apexpath/stationviz/pkg/config"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	p, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if !reflect.DeepEqual(p, config.Patch{}) {
		t.Errorf("expected empty patch, got %+v", p)
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	p, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if !reflect.DeepEqual(p, config.Patch{}) {
		t.Errorf("expected empty patch, got %+v", p)
	}
}

func TestEvaluateValidExpression(t *testing.T) {
	eng := NewEngine()

	// Plain arithmetic is a valid preset that changes nothing.
	p, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if !reflect.DeepEqual(p, config.Patch{}) {
		t.Errorf("expected empty patch, got %+v", p)
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	p, evalErrs, err := eng.Evaluate("(station :width")
	if err != nil {
		t.Fatalf("syntax errors should not be fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for unbalanced parens")
	}
	if !reflect.DeepEqual(p, config.Patch{}) {
		t.Errorf("failed evaluation should return an empty patch, got %+v", p)
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate("(frobnicate 1 2)")
	if err != nil {
		t.Fatalf("undefined symbols should not be fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for undefined symbol")
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 3, Message: "bad thing"}
	if got := e.Error(); got != "line 3: bad thing" {
		t.Errorf("Error() = %q", got)
	}

	e = EvalError{Message: "no line info"}
	if got := e.Error(); got != "no line info" {
		t.Errorf("Error() = %q", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine()
	source := `(station :width 96 :sink :center :second-sink true)`

	var first config.Patch
	for i := 0; i < 5; i++ {
		p, evalErrs, err := eng.Evaluate(source)
		if err != nil {
			t.Fatalf("iteration %d: fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("iteration %d: eval errors: %v", i, evalErrs)
		}
		if i == 0 {
			first = p
			continue
		}
		if !reflect.DeepEqual(p, first) {
			t.Errorf("iteration %d: patch differs from first run", i)
		}
	}
}

func TestEvaluateTimeout(t *testing.T) {
	// Test the timeout plumbing directly with a channel that never
	// sends, rather than hunting for a program zygomys runs forever.
	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult) // Never sends

	done := make(chan struct{})
	var resultErr error

	go func() {
		defer close(done)
		_, _, resultErr = waitWithTimeout(ch, 1, &mu, &gen)
	}()

	select {
	case <-done:
		if resultErr == nil {
			t.Fatal("expected timeout error, got nil")
		}
		if !strings.Contains(resultErr.Error(), "timed out") {
			t.Errorf("expected timeout error message, got: %v", resultErr)
		}
	case <-time.After(EvalTimeout + 2*time.Second):
		t.Fatal("test itself timed out waiting for evaluation timeout")
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2) // Current generation is 2

	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	// Pass generation 1 (stale).
	_, _, err := waitWithTimeout(ch, 1, &mu, &gen)
	if err == nil {
		t.Fatal("expected error for stale generation")
	}
	if !strings.Contains(err.Error(), "superseded") {
		t.Errorf("expected superseded error, got: %v", err)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "error on line format",
			msg:      "Error on line 3: unexpected token",
			wantLine: 3,
			wantMsg:  "unexpected token",
		},
		{
			name:     "short line format",
			msg:      "line 7: something broke",
			wantLine: 7,
			wantMsg:  "something broke",
		},
		{
			name:     "no line info",
			msg:      "something else entirely",
			wantLine: 0,
			wantMsg:  "something else entirely",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d", len(errs))
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if errs[0].Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}

// errString is a trivial error for parse tests.
type errString string

func (e errString) Error() string { return string(e) }
