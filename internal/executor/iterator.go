package executor

import "github.com/takeuchi-shogo/go-example-memsql/internal/storage"

type Iterator interface {
	Next() (bool, error)
	GetRow() *storage.Row
}

type tableIterator struct {
	table storage.Table
	index int
}

func NewTableIterator(table storage.Table) Iterator {
	return &tableIterator{table: table, index: -1}
}

func (i *tableIterator) Next() (bool, error) {
	i.index++
	return i.index < len(i.table), nil
}

func (i *tableIterator) GetRow() *storage.Row {
	if i.index < 0 || i.index >= len(i.table) {
		return nil
	}
	return i.table[i.index]
}

// Predicate は行が条件を満たすかを返す
type Predicate func(row *storage.Row) (bool, error)

type filterIterator struct {
	source    Iterator
	predicate Predicate
	current   *storage.Row
}

func NewFilterIterator(source Iterator, predicate Predicate) Iterator {
	return &filterIterator{source: source, predicate: predicate}
}

func (i *filterIterator) Next() (bool, error) {
	for {
		hasNext, err := i.source.Next()
		if err != nil {
			return false, err
		}
		if !hasNext {
			i.current = nil
			return false, nil
		}
		row := i.source.GetRow()
		match, err := i.predicate(row)
		if err != nil {
			return false, err
		}
		if match {
			i.current = row
			return true, nil
		}
	}
}

func (i *filterIterator) GetRow() *storage.Row {
	return i.current
}

// collect はイテレータの残りの行をすべて集める
func collect(it Iterator) ([]*storage.Row, error) {
	rows := []*storage.Row{}
	for {
		hasNext, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			return rows, nil
		}
		rows = append(rows, it.GetRow())
	}
}
