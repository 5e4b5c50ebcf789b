package executor

import (
	"errors"
	"fmt"

	"github.com/takeuchi-shogo/go-example-memsql/internal/storage"
)

var ErrDivisionByZero = errors.New("division by zero")

// TableNotFoundError は存在しないテーブルへの参照
type TableNotFoundError struct {
	TableName string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table not found: %s", e.TableName)
}

func (e *TableNotFoundError) Unwrap() error { return storage.ErrTableNotFound }

// ColumnCountMismatchError は INSERT の値の数がカラム数と一致しない
type ColumnCountMismatchError struct {
	Tuple    int // 何番目の値の組か (0 始まり)
	Expected int
	Got      int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("column count mismatch in values tuple %d: expected %d values, got %d", e.Tuple+1, e.Expected, e.Got)
}

// UnsupportedOperatorError は評価器が知らない演算子
// 構文解析を通った式では起こらない
type UnsupportedOperatorError struct {
	Operator string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported operator: %s", e.Operator)
}

// InvalidNumberError は数値として解釈できない数値リテラル
type InvalidNumberError struct {
	Text string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number literal: %q", e.Text)
}

// NonNumericOperandError は算術演算子に数値でない値が渡された
type NonNumericOperandError struct {
	Operator string
	Value    storage.Value
}

func (e *NonNumericOperandError) Error() string {
	return fmt.Sprintf("operator %s requires numeric operands, got %s %q", e.Operator, e.Value.Type(), e.Value)
}
