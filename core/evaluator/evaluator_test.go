package evaluator

import (
	"errors"
	"math"
	"testing"
)

func TestBasicOperations(t *testing.T) {
	eval := NewEvaluator()

	tests := []struct {
		name     string
		expr     string
		expected float64
		wantErr  bool
	}{
		{"Addition", "2+3", 5, false},
		{"Subtraction", "10-7", 3, false},
		{"Multiplication", "4*5", 20, false},
		{"Division", "15/3", 5, false},
		{"Complex expression", "2+3*4", 14, false},
		{"Parentheses", "(2+3)*4", 20, false},
		{"Power", "2^3", 8, false},
		{"Modulo", "(10)%3", 1, false},
		{"Floating point", "3.5+2.5", 6, false},
		{"Unary minus", "-5+3", -2, false},
		{"Whitespace", "  2 +\t3 ", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eval.Evaluate(tt.expr)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestOperatorPrecedence(t *testing.T) {
	eval := NewEvaluator()

	tests := []struct {
		expr     string
		expected float64
	}{
		{"2+3*4", 14},   // multiplication first
		{"10-2*3", 4},   // multiplication first
		{"20/4+3", 8},   // division first
		{"2^3*2", 16},   // power first
		{"(2+3)*4", 20}, // parentheses override
		{"2*(3+4)", 14}, // parentheses override
		{"10-2-3", 5},   // left to right
		{"20/4/2", 2.5}, // left to right
		{"2^3^2", 512},  // power is right-associative
		{"-2^2", -4},    // power binds tighter than unary minus
		{"2^-3", 0.125}, // signed exponent
		{"-(2+3)", -5},  // unary over a group
		{"--4", 4},      // double negation
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			result, err := eval.Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Expression %s: expected %v, got %v", tt.expr, tt.expected, result)
			}
		})
	}
}

func TestPercentLiterals(t *testing.T) {
	eval := NewEvaluator()

	tests := []struct {
		expr     string
		expected float64
	}{
		{"50%", 0.5},
		{"100%", 1},
		{"3.5%", 0.035},
		{"25%+25%", 0.5},
		{"200*10%", 20},
		{"50 %", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			result, err := eval.Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Expression %s: expected %v, got %v", tt.expr, tt.expected, result)
			}
		})
	}

	// A percent glued to a literal rewrites to (lit/100), so "10%3" turns
	// into two adjacent values and fails to parse.
	if _, err := eval.Evaluate("10%3"); !errors.Is(err, ErrEvaluation) {
		t.Errorf("Expected evaluation error for 10%%3, got %v", err)
	}
}

func TestPythonStylePower(t *testing.T) {
	eval := NewEvaluator()

	result, err := eval.Evaluate("2**3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(result-8) > 0.0001 {
		t.Errorf("Expected 8, got %v", result)
	}
}

func TestFunctionsAndConstants(t *testing.T) {
	eval := NewEvaluator()

	tests := []struct {
		expr     string
		expected float64
	}{
		{"sin(pi/2)", 1},
		{"cos(0)", 1},
		{"tan(0)", 0},
		{"asin(1)", math.Pi / 2},
		{"acos(1)", 0},
		{"atan(1)", math.Pi / 4},
		{"sqrt(16)", 4},
		{"pow(2, 10)", 1024},
		{"log(e)", 1},
		{"log(8, 2)", 3},
		{"ln(e)", 1},
		{"log10(1000)", 3},
		{"exp(0)", 1},
		{"abs(-7)", 7},
		{"round(2.5)", 2}, // rounds half to even
		{"round(3.5)", 4},
		{"round(3.14159, 2)", 3.14},
		{"int(3.9)", 3},
		{"int(-3.9)", -3},
		{"float(4)", 4},
		{"pi", math.Pi},
		{"e", math.E},
		{"2*pi", 2 * math.Pi},
		{"sqrt(sin(pi/2))", 1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			result, err := eval.Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Expression %s: expected %v, got %v", tt.expr, tt.expected, result)
			}
		})
	}
}

func TestEmptyExpression(t *testing.T) {
	eval := NewEvaluator()

	for _, expr := range []string{"", "   ", "\t\n"} {
		result, err := eval.Evaluate(expr)
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", expr, err)
			continue
		}
		if result != 0 {
			t.Errorf("Expected 0 for %q, got %v", expr, result)
		}
	}
}

func TestErrorCases(t *testing.T) {
	eval := NewEvaluator()

	tests := []struct {
		name string
		expr string
	}{
		{"Division by zero", "5/0"},
		{"Modulo by zero", "(10)%0"},
		{"Unmatched parentheses", "(2+3"},
		{"Empty parentheses content", "()"},
		{"Unknown identifier", "2 + abc"},
		{"Unknown function", "foo(1)"},
		{"Constant called as function", "pi(2)"},
		{"Function used as value", "sin+1"},
		{"Too few arguments", "pow(2)"},
		{"Too many arguments", "sqrt(1, 2)"},
		{"Sqrt of negative", "sqrt(-1)"},
		{"Asin out of range", "asin(2)"},
		{"Log of zero", "log(0)"},
		{"Trailing operator", "2+"},
		{"Adjacent values", "2 3"},
		{"Malformed number", "1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eval.Evaluate(tt.expr)
			if err == nil {
				t.Errorf("Expected error for expression: %s", tt.expr)
				return
			}
			if !errors.Is(err, ErrEvaluation) {
				t.Errorf("Expected evaluation error for %s, got %v", tt.expr, err)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	eval := NewEvaluator()

	tests := []struct {
		name string
		expr string
		kind error
	}{
		{"Dollar sign", "2+$", ErrInvalidExpression},
		{"Hash", "2#3", ErrInvalidExpression},
		{"Quote", "__import__('os')", ErrInvalidExpression},
		{"Semicolon", "1;2", ErrInvalidExpression},
		{"Non-ASCII", "2+é", ErrInvalidExpression},
		{"Import statement", "import os", ErrUnsafeExpression},
		{"Exec call", "exec(1)", ErrUnsafeExpression},
		{"Eval call", "eval(1)", ErrUnsafeExpression},
		{"Double underscore", "2+__x", ErrUnsafeExpression},
		{"Division by zero", "1/0", ErrEvaluation},
		{"Unknown identifier", "foo", ErrEvaluation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eval.Evaluate(tt.expr)
			if err == nil {
				t.Fatalf("Expected error for expression: %s", tt.expr)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("Expected %v for %s, got %v", tt.kind, tt.expr, err)
			}
		})
	}
}

func TestNonFiniteResults(t *testing.T) {
	eval := NewEvaluator()

	// Overflow and indeterminate forms surface as evaluation errors
	// instead of leaking Inf/NaN to the display.
	for _, expr := range []string{"2^10000", "pow(10, 1000)", "exp(10000)"} {
		_, err := eval.Evaluate(expr)
		if !errors.Is(err, ErrEvaluation) {
			t.Errorf("Expected evaluation error for %s, got %v", expr, err)
		}
	}
}

func TestVerySmallNumbers(t *testing.T) {
	eval := NewEvaluator()

	result, err := eval.Evaluate("0.0000001*0.000000000001")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := 0.0000001 * 0.000000000001
	if math.Abs(result-expected) > 1e-20 {
		t.Errorf("Expected %e, got %e", expected, result)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Percent literal", "50%", "(50/100)"},
		{"Percent with decimals", "3.5%", "(3.5/100)"},
		{"Percent with space", "50 %", "(50/100)"},
		{"Two percents", "25%+25%", "(25/100)+(25/100)"},
		{"Python power", "2**3", "2^3"},
		{"Both rewrites", "50%**2", "(50/100)^2"},
		{"Plain expression untouched", "2+3*4", "2+3*4"},
		{"Percent after parenthesis untouched", "(10)%3", "(10)%3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}

			// Normalization is idempotent.
			again := Normalize(got)
			if again != got {
				t.Errorf("Normalize(Normalize(%q)) = %q, want %q", tt.input, again, got)
			}
		})
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"Zero", 0, "0"},
		{"Integer", 4, "4"},
		{"Negative integer", -7, "-7"},
		{"Integral float", 4.0, "4"},
		{"Simple fraction", 4.5, "4.5"},
		{"Trailing zeros stripped", 2.50, "2.5"},
		{"Float artifact trimmed", 0.1 + 0.2, "0.3"},
		{"Ten decimal cap", 1.0 / 3.0, "0.3333333333"},
		{"Large integer", 1000000, "1000000"},
		{"Small value", 0.005, "0.005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatResult(tt.value)
			if got != tt.expected {
				t.Errorf("FormatResult(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func BenchmarkSimpleAddition(b *testing.B) {
	eval := NewEvaluator()
	for i := 0; i < b.N; i++ {
		eval.Evaluate("2+3")
	}
}

func BenchmarkComplexExpression(b *testing.B) {
	eval := NewEvaluator()
	for i := 0; i < b.N; i++ {
		eval.Evaluate("(10+5)*2-3/3+2^3")
	}
}

func BenchmarkFunctionCall(b *testing.B) {
	eval := NewEvaluator()
	for i := 0; i < b.N; i++ {
		eval.Evaluate("sqrt(sin(pi/2)+cos(0))")
	}
}
