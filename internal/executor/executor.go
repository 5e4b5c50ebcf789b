package executor

import (
	"fmt"

	"github.com/takeuchi-shogo/go-example-memsql/internal/catalog"
	"github.com/takeuchi-shogo/go-example-memsql/internal/parser"
	"github.com/takeuchi-shogo/go-example-memsql/internal/storage"
)

// ShowTablesColumn は SHOW TABLES の結果のカラム名
const ShowTablesColumn = "Tables"

type Executor interface {
	Execute(stmt parser.Statement) (ResultSet, error)
}

type executor struct {
	store catalog.Store
}

func NewExecutor(store catalog.Store) Executor {
	return &executor{store: store}
}

// Run は文を Store に対して実行する
// 失敗した文は Store に何の影響も与えない
func Run(stmt parser.Statement, store catalog.Store) (ResultSet, error) {
	return NewExecutor(store).Execute(stmt)
}

// Execute は Statement を実行して結果を返す
func (e *executor) Execute(stmt parser.Statement) (ResultSet, error) {
	switch node := stmt.(type) {
	case *parser.ShowTablesStatement:
		return e.executeShowTables()
	case *parser.SelectStatement:
		return e.executeSelect(node)
	case *parser.InsertStatement:
		return e.executeInsert(node)
	case *parser.UpdateStatement:
		return e.executeUpdate(node)
	case *parser.DeleteStatement:
		return e.executeDelete(node)
	default:
		return nil, fmt.Errorf("unsupported statement type: %T", stmt)
	}
}

// getTable はテーブルを取得する
// 返されるテーブルはコピーなので自由に書き換えてよい
func (e *executor) getTable(name string) (storage.Table, error) {
	table, ok := e.store.GetTable(name)
	if !ok {
		return nil, &TableNotFoundError{TableName: name}
	}
	return table, nil
}

// predicate は WHERE 句から Predicate を作る
// WHERE 句がなければすべての行が一致する
func predicate(where parser.Expression) Predicate {
	if where == nil {
		return func(*storage.Row) (bool, error) { return true, nil }
	}
	return func(row *storage.Row) (bool, error) {
		v, err := Evaluate(row, where)
		if err != nil {
			return false, err
		}
		return isTruthy(v), nil
	}
}

func (e *executor) executeShowTables() (ResultSet, error) {
	columns := []string{ShowTablesColumn}
	rows := []*storage.Row{}
	for _, name := range e.store.TableNames() {
		rows = append(rows, storage.NewRowFromValues(columns, []storage.Value{storage.StringValue(name)}))
	}
	return NewRowSet(columns, rows), nil
}

func (e *executor) executeSelect(stmt *parser.SelectStatement) (ResultSet, error) {
	table, err := e.getTable(stmt.From)
	if err != nil {
		return nil, err
	}

	// * の場合は先頭行のカラムを使う
	columns := stmt.Columns
	if stmt.Wildcard {
		columns, err = table.Columns()
		if err != nil {
			return nil, fmt.Errorf("select * from %s: %w", stmt.From, err)
		}
	}

	// WHERE 句で行をフィルタリング (元の順序を保つ)
	matched, err := collect(NewFilterIterator(NewTableIterator(table), predicate(stmt.Where)))
	if err != nil {
		return nil, err
	}
	// 指定されたカラムだけを取り出す。存在しないカラムは NULL
	rows := make([]*storage.Row, len(matched))
	for i, row := range matched {
		rows[i] = row.Project(columns)
	}
	return NewRowSet(columns, rows), nil
}

func (e *executor) executeInsert(stmt *parser.InsertStatement) (ResultSet, error) {
	table, err := e.getTable(stmt.TableName)
	if err != nil {
		return nil, err
	}

	// カラムリストが省略された場合は先頭行のカラムを使う
	columns := stmt.Columns
	if columns == nil {
		columns, err = table.Columns()
		if err != nil {
			return nil, fmt.Errorf("insert into %s without column list: %w", stmt.TableName, err)
		}
	}

	// 値を評価して storage.Value に変換
	newRows := make([]*storage.Row, 0, len(stmt.Values))
	for i, tuple := range stmt.Values {
		if len(tuple) != len(columns) {
			return nil, &ColumnCountMismatchError{Tuple: i, Expected: len(columns), Got: len(tuple)}
		}
		values := make([]storage.Value, len(tuple))
		for j, lit := range tuple {
			values[j], err = literalValue(lit)
			if err != nil {
				return nil, err
			}
		}
		newRows = append(newRows, storage.NewRowFromValues(columns, values))
	}

	e.store.ReplaceTable(stmt.TableName, append(table, newRows...))
	count := len(newRows)
	return NewMutation(fmt.Sprintf("%d row(s) inserted into %s", count, stmt.TableName), count), nil
}

// executeUpdate は UPDATE 文を実行して結果を返す
func (e *executor) executeUpdate(stmt *parser.UpdateStatement) (ResultSet, error) {
	table, err := e.getTable(stmt.TableName)
	if err != nil {
		return nil, err
	}

	// 代入する値は行に依存しないので先に変換しておく
	values := make([]storage.Value, len(stmt.Assignments))
	for i, a := range stmt.Assignments {
		values[i], err = literalValue(a.Value)
		if err != nil {
			return nil, err
		}
	}

	match := predicate(stmt.Where)
	affected := 0
	for _, row := range table {
		ok, err := match(row)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for i, a := range stmt.Assignments {
			row.Set(a.Column, values[i])
		}
		affected++
	}

	if affected > 0 {
		e.store.ReplaceTable(stmt.TableName, table)
	}
	return NewMutation(fmt.Sprintf("%d row(s) updated in %s", affected, stmt.TableName), affected), nil
}

// executeDelete は DELETE 文を実行して結果を返す
// WHERE 句のない DELETE は何も削除しない
func (e *executor) executeDelete(stmt *parser.DeleteStatement) (ResultSet, error) {
	table, err := e.getTable(stmt.TableName)
	if err != nil {
		return nil, err
	}

	retained := table
	if stmt.Where != nil {
		match := predicate(stmt.Where)
		retained = make(storage.Table, 0, len(table))
		for _, row := range table {
			ok, err := match(row)
			if err != nil {
				return nil, err
			}
			if !ok {
				retained = append(retained, row)
			}
		}
	}

	removed := len(table) - len(retained)
	if removed > 0 {
		e.store.ReplaceTable(stmt.TableName, retained)
	}
	return NewMutation(fmt.Sprintf("%d row(s) deleted from %s", removed, stmt.TableName), removed), nil
}
