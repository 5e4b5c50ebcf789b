package storage

import "errors"

var (
	ErrTableNotFound = errors.New("table not found")
	// ErrCannotInferColumns は空のテーブルからカラムを推測しようとした
	ErrCannotInferColumns = errors.New("cannot infer columns from an empty table")
)

// Table は行の順序付き列 (挿入順)
type Table []*Row

// Columns は先頭行のカラムを返す
// 空のテーブルではカラムを推測できないのでエラー
func (t Table) Columns() ([]string, error) {
	if len(t) == 0 {
		return nil, ErrCannotInferColumns
	}
	return t[0].Columns(), nil
}

// Clone はテーブルと各行をコピーする
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	clone := make(Table, len(t))
	for i, row := range t {
		clone[i] = row.Clone()
	}
	return clone
}
