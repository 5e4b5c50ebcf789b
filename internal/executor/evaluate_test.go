package executor

import (
	"errors"
	"testing"

	"github.com/takeuchi-shogo/go-example-memsql/internal/parser"
	"github.com/takeuchi-shogo/go-example-memsql/internal/storage"
)

func whereOf(t *testing.T, where string) parser.Expression {
	t.Helper()
	stmt, err := parser.Compile("SELECT * FROM t WHERE " + where)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", where, err)
	}
	return stmt.(*parser.SelectStatement).Where
}

func testRow() *storage.Row {
	return storage.NewRowFromValues(
		[]string{"id", "name", "age", "code", "note"},
		[]storage.Value{
			storage.NumberValue(1),
			storage.StringValue("Alice"),
			storage.NumberValue(30),
			storage.StringValue("42"),
			nil,
		},
	)
}

func TestEvaluate_Literals(t *testing.T) {
	tests := []struct {
		lit      *parser.Literal
		expected storage.Value
	}{
		{&parser.Literal{Value: "3", Kind: parser.LiteralNumber}, storage.NumberValue(3)},
		{&parser.Literal{Value: "2.5", Kind: parser.LiteralNumber}, storage.NumberValue(2.5)},
		{&parser.Literal{Value: "hello", Kind: parser.LiteralString}, storage.StringValue("hello")},
		{&parser.Literal{Value: "Bob", Kind: parser.LiteralIdentifier}, storage.StringValue("Bob")},
	}

	for i, tt := range tests {
		got, err := Evaluate(nil, tt.lit)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if got != tt.expected {
			t.Errorf("tests[%d] - expected=%v, got=%v", i, tt.expected, got)
		}
	}
}

func TestEvaluate_InvalidNumber(t *testing.T) {
	_, err := Evaluate(nil, &parser.Literal{Value: "1.2.3", Kind: parser.LiteralNumber})

	var numErr *InvalidNumberError
	if !errors.As(err, &numErr) {
		t.Fatalf("expected InvalidNumberError, got %v", err)
	}
	if numErr.Text != "1.2.3" {
		t.Errorf("expected text 1.2.3, got %q", numErr.Text)
	}
}

func TestEvaluate_IdentifierLookup(t *testing.T) {
	row := testRow()

	got, err := Evaluate(row, &parser.Identifier{Value: "name"})
	if err != nil || got != storage.StringValue("Alice") {
		t.Errorf("expected Alice, got %v (%v)", got, err)
	}

	// 存在しないカラムは NULL
	got, err = Evaluate(row, &parser.Identifier{Value: "missing"})
	if err != nil || got != nil {
		t.Errorf("expected nil, got %v (%v)", got, err)
	}
}

func TestEvaluate_Predicates(t *testing.T) {
	tests := []struct {
		where    string
		expected bool
	}{
		{"id = 1", true},
		{"id = 2", false},
		{"id <> 2", true},
		{"name = 'Alice'", true},
		{"name = 'alice'", false},
		{"age > 18", true},
		{"age >= 30", true},
		{"age < 30", false},
		{"age <= 29.5", false},
		{"name < 'Bob'", true},
		// 数値と数値文字列は数値として比較する
		{"code = 42", true},
		{"code > 5", true},
		{"id = '1'", true},
		// 数値と数値でない文字列は比較できない
		{"name = 1", false},
		{"name <> 1", true},
		{"name > 1", false},
		{"name < 1", false},
		// NULL
		{"note = 'x'", false},
		{"note <> 'x'", true},
		{"missing = note", true},
		{"note > 0", false},
		// 論理演算
		{"id = 1 AND (name = 'Alice' OR name = 'Bob')", true},
		{"id = 2 AND (name = 'Alice' OR name = 'Bob')", false},
		{"id = 2 OR name = 'Alice'", true},
		{"id = 2 OR name = 'Carol'", false},
		// 算術
		{"age + 1 = 31", true},
		{"age * 2 - 10 = 50", true},
		{"age / 4 = 7.5", true},
		{"code + 1 = 43", true},
	}

	row := testRow()
	for _, tt := range tests {
		got, err := Evaluate(row, whereOf(t, tt.where))
		if err != nil {
			t.Errorf("WHERE %s: unexpected error: %v", tt.where, err)
			continue
		}
		if got != storage.BoolValue(tt.expected) {
			t.Errorf("WHERE %s: expected=%v, got=%v", tt.where, tt.expected, got)
		}
	}
}

func TestEvaluate_ArithmeticErrors(t *testing.T) {
	row := testRow()

	_, err := Evaluate(row, whereOf(t, "age / 0 = 1"))
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}

	_, err = Evaluate(row, whereOf(t, "name + 1 = 1"))
	var operandErr *NonNumericOperandError
	if !errors.As(err, &operandErr) {
		t.Fatalf("expected NonNumericOperandError, got %v", err)
	}
	if operandErr.Operator != "+" {
		t.Errorf("expected operator +, got %s", operandErr.Operator)
	}
	if msg := operandErr.Error(); msg != `operator + requires numeric operands, got STRING "Alice"` {
		t.Errorf("unexpected message: %s", msg)
	}

	// NULL との算術は NULL
	got, err := Evaluate(row, whereOf(t, "note + 1"))
	if err != nil || got != nil {
		t.Errorf("expected nil, got %v (%v)", got, err)
	}
}

func TestEvaluate_ShortCircuit(t *testing.T) {
	row := testRow()

	// 右辺はゼロ除算だが左辺で結果が決まる
	got, err := Evaluate(row, whereOf(t, "id = 2 AND age / 0 = 1"))
	if err != nil || got != storage.BoolValue(false) {
		t.Errorf("expected false, got %v (%v)", got, err)
	}
	got, err = Evaluate(row, whereOf(t, "id = 1 OR age / 0 = 1"))
	if err != nil || got != storage.BoolValue(true) {
		t.Errorf("expected true, got %v (%v)", got, err)
	}
}

func TestEvaluate_UnsupportedOperator(t *testing.T) {
	expr := &parser.BinaryExpression{
		Left:     &parser.Literal{Value: "1", Kind: parser.LiteralNumber},
		Operator: "%",
		Right:    &parser.Literal{Value: "2", Kind: parser.LiteralNumber},
	}

	_, err := Evaluate(nil, expr)
	var opErr *UnsupportedOperatorError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected UnsupportedOperatorError, got %v", err)
	}
	if opErr.Operator != "%" {
		t.Errorf("expected operator %%, got %s", opErr.Operator)
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		value    storage.Value
		expected bool
	}{
		{nil, false},
		{storage.BoolValue(true), true},
		{storage.BoolValue(false), false},
		{storage.NumberValue(0), false},
		{storage.NumberValue(2), true},
		{storage.StringValue(""), false},
		{storage.StringValue("x"), true},
	}

	for i, tt := range tests {
		if got := isTruthy(tt.value); got != tt.expected {
			t.Errorf("tests[%d] - isTruthy(%v) = %v, want %v", i, tt.value, got, tt.expected)
		}
	}
}
