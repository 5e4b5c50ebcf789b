package storage

// Row はカラム名から値へのマッピング
// カラムの順序は最初にセットされた順を保持する (SELECT * の列順に使う)
type Row struct {
	columns []string
	values  map[string]Value
}

func NewRow() *Row {
	return &Row{values: make(map[string]Value)}
}

// NewRowFromValues はカラム名と値を位置で対応させて行を作る
// columns と values の長さは呼び出し側で揃えておくこと
func NewRowFromValues(columns []string, values []Value) *Row {
	row := NewRow()
	for i, col := range columns {
		row.Set(col, values[i])
	}
	return row
}

// Get はカラムの値を返す
// 存在しないカラムは (nil, false)
func (r *Row) Get(column string) (Value, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Set はカラムに値をセットする
// 新しいカラムは末尾に追加される
func (r *Row) Set(column string, value Value) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Columns はカラム名を挿入順で返す
func (r *Row) Columns() []string {
	columns := make([]string, len(r.columns))
	copy(columns, r.columns)
	return columns
}

// Len はカラム数を返す
func (r *Row) Len() int {
	return len(r.columns)
}

// Project は指定されたカラムだけを持つ新しい行を返す
// 存在しないカラムは NULL になる
func (r *Row) Project(columns []string) *Row {
	projected := NewRow()
	for _, col := range columns {
		v, _ := r.Get(col)
		projected.Set(col, v)
	}
	return projected
}

// Values は columns の順に値を返す
func (r *Row) Values(columns []string) []Value {
	values := make([]Value, len(columns))
	for i, col := range columns {
		values[i], _ = r.Get(col)
	}
	return values
}

// Clone は行のコピーを返す
// Value は不変なので浅いコピーで十分
func (r *Row) Clone() *Row {
	clone := &Row{
		columns: make([]string, len(r.columns)),
		values:  make(map[string]Value, len(r.values)),
	}
	copy(clone.columns, r.columns)
	for k, v := range r.values {
		clone.values[k] = v
	}
	return clone
}
