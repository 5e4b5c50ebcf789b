package executor

import (
	"fmt"

	"github.com/takeuchi-shogo/go-example-memsql/internal/storage"
)

type ResultKind int

const (
	// ResultRowSet は SELECT / SHOW TABLES の結果
	ResultRowSet ResultKind = iota + 1
	// ResultMutation は INSERT / UPDATE / DELETE の結果
	ResultMutation
)

type ResultSet interface {
	// Kind は結果の種類を返す
	Kind() ResultKind
	// GetColumns はカラム名を取得する
	GetColumns() []string
	// GetRows は行を取得する
	GetRows() []*storage.Row
	// GetRowCount は行数を取得する
	GetRowCount() int
	// GetColumnCount はカラム数を取得する
	GetColumnCount() int
	// GetMessage はメッセージを取得する
	GetMessage() string
	// GetAffectedCount は変更された行数を取得する
	GetAffectedCount() int
	// IsEmpty は空かどうかを返す
	IsEmpty() bool
	// String は文字列を返す
	String() string
}

type resultSet struct {
	kind     ResultKind
	columns  []string
	rows     []*storage.Row
	message  string
	affected int
}

// NewRowSet はカラムと行からなる結果を作る
func NewRowSet(columns []string, rows []*storage.Row) ResultSet {
	if rows == nil {
		rows = []*storage.Row{}
	}
	return &resultSet{kind: ResultRowSet, columns: columns, rows: rows}
}

// NewMutation は変更結果のメッセージと件数を持つ結果を作る
func NewMutation(message string, affected int) ResultSet {
	return &resultSet{kind: ResultMutation, message: message, affected: affected}
}

func (r *resultSet) Kind() ResultKind {
	return r.kind
}

func (r *resultSet) GetColumns() []string {
	return r.columns
}

func (r *resultSet) GetRows() []*storage.Row {
	return r.rows
}

func (r *resultSet) GetMessage() string {
	return r.message
}

func (r *resultSet) GetAffectedCount() int {
	return r.affected
}

// GetRowCount は結果セットの行数を返す
func (r *resultSet) GetRowCount() int {
	return len(r.rows)
}

// GetColumnCount は結果セットのカラム数を返す
func (r *resultSet) GetColumnCount() int {
	return len(r.columns)
}

// IsEmpty は結果セットが空かどうかを返す
func (r *resultSet) IsEmpty() bool {
	return len(r.rows) == 0
}

// String はログ用の短い要約を返す
func (r *resultSet) String() string {
	if r.kind == ResultMutation {
		return r.message
	}
	return fmt.Sprintf("%d row(s), columns: %v", len(r.rows), r.columns)
}
