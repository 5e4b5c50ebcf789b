package executor

import (
	"testing"

	"github.com/takeuchi-shogo/go-example-memsql/internal/storage"
)

func TestNewRowSet(t *testing.T) {
	rows := []*storage.Row{
		storage.NewRowFromValues([]string{"name"}, []storage.Value{storage.StringValue("alice")}),
		storage.NewRowFromValues([]string{"name"}, []storage.Value{storage.StringValue("bob")}),
	}

	rs := NewRowSet([]string{"name"}, rows)
	if rs.Kind() != ResultRowSet {
		t.Errorf("Expected ResultRowSet, got %v", rs.Kind())
	}
	if rs.GetRowCount() != 2 {
		t.Errorf("Expected 2 rows, got %d", rs.GetRowCount())
	}
	if rs.GetColumnCount() != 1 {
		t.Errorf("Expected 1 column, got %d", rs.GetColumnCount())
	}
	if rs.IsEmpty() {
		t.Error("ResultSet should not be empty")
	}
	if rs.String() != "2 row(s), columns: [name]" {
		t.Errorf("Unexpected String(): %q", rs.String())
	}
}

func TestNewRowSetWithNilRows(t *testing.T) {
	rs := NewRowSet([]string{"id"}, nil)
	if rs.GetRows() == nil {
		t.Error("GetRows should return an empty slice, not nil")
	}
	if !rs.IsEmpty() {
		t.Error("Empty ResultSet should return true for IsEmpty")
	}
}

func TestNewMutation(t *testing.T) {
	message := "1 row(s) inserted into users"
	rs := NewMutation(message, 1)

	if rs.Kind() != ResultMutation {
		t.Errorf("Expected ResultMutation, got %v", rs.Kind())
	}
	if rs.GetMessage() != message {
		t.Errorf("Expected message '%s', got '%s'", message, rs.GetMessage())
	}
	if rs.GetAffectedCount() != 1 {
		t.Errorf("Expected affected 1, got %d", rs.GetAffectedCount())
	}
	if rs.String() != message {
		t.Errorf("String() should be the message, got %q", rs.String())
	}
}

func TestFilterIterator(t *testing.T) {
	table := storage.Table{
		storage.NewRowFromValues([]string{"n"}, []storage.Value{storage.NumberValue(1)}),
		storage.NewRowFromValues([]string{"n"}, []storage.Value{storage.NumberValue(2)}),
		storage.NewRowFromValues([]string{"n"}, []storage.Value{storage.NumberValue(3)}),
	}
	odd := func(row *storage.Row) (bool, error) {
		v, _ := row.Get("n")
		return int(v.(storage.NumberValue))%2 == 1, nil
	}

	it := NewFilterIterator(NewTableIterator(table), odd)
	rows, err := collect(it)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(rows) != 2 || rows[0] != table[0] || rows[1] != table[2] {
		t.Errorf("Expected rows 1 and 3, got %v", rows)
	}

	// 読み終えたイテレータは行を返さない
	if hasNext, _ := it.Next(); hasNext || it.GetRow() != nil {
		t.Error("Expected exhausted iterator to stay exhausted")
	}
}
