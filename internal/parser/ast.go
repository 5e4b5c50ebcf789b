package parser

import (
	"fmt"
	"strings"
)

// Node は抽象構文木のノードを表す
// 実装はこのパッケージ内の型に閉じている
type Node interface {
	// String は表示用の文字列を返す
	String() string
	node()
}

// Statement は文を表す
type Statement interface {
	Node
	statementNode()
}

// Expression は式を表す
type Expression interface {
	Node
	expressionNode()
}

// SelectStatement はSELECT文を表す
type SelectStatement struct {
	Wildcard bool       // SELECT * かどうか
	Columns  []string   // 選択するカラム (Wildcard の場合は空)
	From     string     // テーブル名
	Where    Expression // 条件 (省略時 nil)
}

// InsertStatement はINSERT文を表す
type InsertStatement struct {
	TableName string       // テーブル名
	Columns   []string     // 挿入するカラム (省略時 nil)
	Values    [][]*Literal // 挿入する値の組
}

// Assignment は UPDATE の SET 句の1要素
type Assignment struct {
	Column string
	Value  *Literal
}

// UpdateStatement はUPDATE文を表す
type UpdateStatement struct {
	TableName   string       // テーブル名
	Assignments []Assignment // 更新するカラムと値 (記述順)
	Where       Expression   // 条件
}

// DeleteStatement はDELETE文を表す
type DeleteStatement struct {
	TableName string     // テーブル名
	Where     Expression // 条件
}

// ShowTablesStatement はSHOW TABLES文を表す
type ShowTablesStatement struct{}

// Identifier はカラム名
type Identifier struct {
	Value string // 値
}

type LiteralKind int

const (
	LiteralNumber LiteralKind = iota + 1
	LiteralString
	// LiteralIdentifier は INSERT / UPDATE の値位置に書かれた識別子
	// 文字列としてそのまま扱う
	LiteralIdentifier
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "Number"
	case LiteralString:
		return "String"
	case LiteralIdentifier:
		return "Identifier"
	default:
		return "Unknown"
	}
}

// Literal はリテラル値を表す
// 数値への変換は評価時まで遅延する
type Literal struct {
	Value string
	Kind  LiteralKind
}

// BinaryExpression は二項演算子を表す
type BinaryExpression struct {
	Left     Expression // 左辺
	Operator string     // 演算子 (=, <>, <, AND, OR, + など)
	Right    Expression // 右辺
}

func (*SelectStatement) node()     {}
func (*InsertStatement) node()     {}
func (*UpdateStatement) node()     {}
func (*DeleteStatement) node()     {}
func (*ShowTablesStatement) node() {}
func (*Identifier) node()          {}
func (*Literal) node()             {}
func (*BinaryExpression) node()    {}

func (*SelectStatement) statementNode()     {}
func (*InsertStatement) statementNode()     {}
func (*UpdateStatement) statementNode()     {}
func (*DeleteStatement) statementNode()     {}
func (*ShowTablesStatement) statementNode() {}

func (*Identifier) expressionNode()       {}
func (*Literal) expressionNode()          {}
func (*BinaryExpression) expressionNode() {}

func (s *SelectStatement) String() string {
	columns := "*"
	if !s.Wildcard {
		columns = strings.Join(s.Columns, ", ")
	}
	out := fmt.Sprintf("SELECT %s FROM %s", columns, s.From)
	if s.Where != nil {
		out += " WHERE " + s.Where.String()
	}
	return out
}

func (s *InsertStatement) String() string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO " + s.TableName)
	if s.Columns != nil {
		sb.WriteString(" (" + strings.Join(s.Columns, ", ") + ")")
	}
	sb.WriteString(" VALUES ")
	for i, tuple := range s.Values {
		if i > 0 {
			sb.WriteString(", ")
		}
		values := make([]string, len(tuple))
		for j, v := range tuple {
			values[j] = v.String()
		}
		sb.WriteString("(" + strings.Join(values, ", ") + ")")
	}
	return sb.String()
}

func (s *UpdateStatement) String() string {
	sets := make([]string, len(s.Assignments))
	for i, a := range s.Assignments {
		sets[i] = a.Column + " = " + a.Value.String()
	}
	out := fmt.Sprintf("UPDATE %s SET %s", s.TableName, strings.Join(sets, ", "))
	if s.Where != nil {
		out += " WHERE " + s.Where.String()
	}
	return out
}

func (s *DeleteStatement) String() string {
	out := "DELETE FROM " + s.TableName
	if s.Where != nil {
		out += " WHERE " + s.Where.String()
	}
	return out
}

func (s *ShowTablesStatement) String() string { return "SHOW TABLES" }

func (e *Identifier) String() string { return e.Value }

func (e *Literal) String() string {
	if e.Kind == LiteralString {
		return quoteString(e.Value)
	}
	return e.Value
}

func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// FormatAST は AST をインデント付きの木として表示する
func FormatAST(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func writeNode(sb *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	line := func(format string, args ...any) {
		sb.WriteString(indent + fmt.Sprintf(format, args...) + "\n")
	}
	switch node := n.(type) {
	case *SelectStatement:
		line("SelectStatement")
		if node.Wildcard {
			line("  columns: *")
		} else {
			line("  columns: %s", strings.Join(node.Columns, ", "))
		}
		line("  from: %s", node.From)
		writeWhere(sb, node.Where, depth)
	case *InsertStatement:
		line("InsertStatement")
		line("  table: %s", node.TableName)
		if node.Columns != nil {
			line("  columns: %s", strings.Join(node.Columns, ", "))
		}
		for i, tuple := range node.Values {
			line("  values[%d]:", i)
			for _, v := range tuple {
				writeNode(sb, v, depth+2)
			}
		}
	case *UpdateStatement:
		line("UpdateStatement")
		line("  table: %s", node.TableName)
		for _, a := range node.Assignments {
			line("  set %s:", a.Column)
			writeNode(sb, a.Value, depth+2)
		}
		writeWhere(sb, node.Where, depth)
	case *DeleteStatement:
		line("DeleteStatement")
		line("  table: %s", node.TableName)
		writeWhere(sb, node.Where, depth)
	case *ShowTablesStatement:
		line("ShowTablesStatement")
	case *BinaryExpression:
		line("BinaryExpression %s", node.Operator)
		writeNode(sb, node.Left, depth+1)
		writeNode(sb, node.Right, depth+1)
	case *Identifier:
		line("Identifier %s", node.Value)
	case *Literal:
		line("Literal(%s) %s", node.Kind, node.String())
	}
}

func writeWhere(sb *strings.Builder, where Expression, depth int) {
	if where == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth) + "  where:\n")
	writeNode(sb, where, depth+2)
}
