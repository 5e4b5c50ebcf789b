package executor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/takeuchi-shogo/go-example-memsql/internal/parser"
	"github.com/takeuchi-shogo/go-example-memsql/internal/storage"
)

// Evaluate は式を1行に対して評価する
// 副作用はない。row が nil の場合カラム参照はすべて NULL になる
func Evaluate(row *storage.Row, expr parser.Expression) (storage.Value, error) {
	switch e := expr.(type) {
	case *parser.Literal:
		return literalValue(e)
	case *parser.Identifier:
		if row == nil {
			return nil, nil
		}
		// 存在しないカラムはエラーではなく NULL
		v, _ := row.Get(e.Value)
		return v, nil
	case *parser.BinaryExpression:
		return evaluateBinary(row, e)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", expr)
	}
}

// literalValue はリテラルを宣言された種類に従って値に変換する
func literalValue(lit *parser.Literal) (storage.Value, error) {
	switch lit.Kind {
	case parser.LiteralNumber:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return nil, &InvalidNumberError{Text: lit.Value}
		}
		return storage.NumberValue(f), nil
	case parser.LiteralString, parser.LiteralIdentifier:
		return storage.StringValue(lit.Value), nil
	default:
		return nil, fmt.Errorf("unknown literal kind: %v", lit.Kind)
	}
}

func evaluateBinary(row *storage.Row, e *parser.BinaryExpression) (storage.Value, error) {
	left, err := Evaluate(row, e.Left)
	if err != nil {
		return nil, err
	}

	// 論理演算は左辺で結果が決まれば右辺を評価しない
	switch e.Operator {
	case "AND":
		if !isTruthy(left) {
			return storage.BoolValue(false), nil
		}
		right, err := Evaluate(row, e.Right)
		if err != nil {
			return nil, err
		}
		return storage.BoolValue(isTruthy(right)), nil
	case "OR":
		if isTruthy(left) {
			return storage.BoolValue(true), nil
		}
		right, err := Evaluate(row, e.Right)
		if err != nil {
			return nil, err
		}
		return storage.BoolValue(isTruthy(right)), nil
	}

	right, err := Evaluate(row, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "=":
		return storage.BoolValue(looseEqual(left, right)), nil
	case "<>":
		return storage.BoolValue(!looseEqual(left, right)), nil
	case "<", ">", "<=", ">=":
		cmp, ok := compareValues(left, right)
		if !ok {
			return storage.BoolValue(false), nil
		}
		switch e.Operator {
		case "<":
			return storage.BoolValue(cmp < 0), nil
		case ">":
			return storage.BoolValue(cmp > 0), nil
		case "<=":
			return storage.BoolValue(cmp <= 0), nil
		default:
			return storage.BoolValue(cmp >= 0), nil
		}
	case "+", "-", "*", "/":
		return arithmetic(e.Operator, left, right)
	default:
		return nil, &UnsupportedOperatorError{Operator: e.Operator}
	}
}

// looseEqual は型を変換して等価比較する
// NULL は NULL とだけ等しい
func looseEqual(left, right storage.Value) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	cmp, ok := compareValues(left, right)
	return ok && cmp == 0
}

// compareValues は2つの値を比較する
// 比較できない組み合わせ (NULL を含む、数値と数値でない文字列) は ok = false
//
//	数値 と 数値           数値として比較
//	数値 と 数値文字列     文字列を数値に変換して比較
//	文字列 と 文字列       辞書順
//	真偽値                 1 / 0 として扱う
func compareValues(left, right storage.Value) (int, bool) {
	if left == nil || right == nil {
		return 0, false
	}
	if left.Type() == storage.ValueTypeString && right.Type() == storage.ValueTypeString {
		return strings.Compare(left.String(), right.String()), true
	}

	l, ok := toNumber(left)
	if !ok {
		return 0, false
	}
	r, ok := toNumber(right)
	if !ok {
		return 0, false
	}
	switch {
	case l < r:
		return -1, true
	case l > r:
		return 1, true
	default:
		return 0, true
	}
}

// toNumber は値を数値に変換する
func toNumber(v storage.Value) (float64, bool) {
	switch val := v.(type) {
	case storage.NumberValue:
		return float64(val), true
	case storage.BoolValue:
		if val {
			return 1, true
		}
		return 0, true
	case storage.StringValue:
		s := strings.TrimSpace(string(val))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// arithmetic は四則演算を行う
// どちらかが NULL なら結果も NULL
func arithmetic(operator string, left, right storage.Value) (storage.Value, error) {
	if left == nil || right == nil {
		return nil, nil
	}
	l, ok := toNumber(left)
	if !ok {
		return nil, &NonNumericOperandError{Operator: operator, Value: left}
	}
	r, ok := toNumber(right)
	if !ok {
		return nil, &NonNumericOperandError{Operator: operator, Value: right}
	}
	switch operator {
	case "+":
		return storage.NumberValue(l + r), nil
	case "-":
		return storage.NumberValue(l - r), nil
	case "*":
		return storage.NumberValue(l * r), nil
	case "/":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return storage.NumberValue(l / r), nil
	default:
		return nil, &UnsupportedOperatorError{Operator: operator}
	}
}

// isTruthy は WHERE 句の結果を真偽値として解釈する
// NULL, false, 0, 空文字列は偽
func isTruthy(v storage.Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case storage.BoolValue:
		return bool(val)
	case storage.NumberValue:
		return val != 0
	case storage.StringValue:
		return val != ""
	default:
		return true
	}
}
