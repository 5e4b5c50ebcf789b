/*
セルに格納される値の型を定義する
*/
package storage

import "strconv"

type ValueType int

const (
	ValueTypeNumber ValueType = iota + 1
	ValueTypeString
	ValueTypeBool
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeNumber:
		return "NUMBER"
	case ValueTypeString:
		return "STRING"
	case ValueTypeBool:
		return "BOOL"
	default:
		return "UNKNOWN"
	}
}

// Value はセルの値を表す
// NULL は nil で表現する
type Value interface {
	Type() ValueType
	String() string
}

// Number
type NumberValue float64

func (v NumberValue) Type() ValueType { return ValueTypeNumber }

// String は整数値なら小数点なしで表示する (3.0 -> "3")
func (v NumberValue) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

// String
type StringValue string

func (v StringValue) Type() ValueType { return ValueTypeString }

func (v StringValue) String() string { return string(v) }

// Bool は比較・論理演算の結果としてのみ現れる
type BoolValue bool

func (v BoolValue) Type() ValueType { return ValueTypeBool }

func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }

// Format は NULL を含めて表示用の文字列を返す
func Format(v Value) string {
	if v == nil {
		return "NULL"
	}
	return v.String()
}
