/*
catalog.go はテーブル名からテーブルへのマッピング (Store) を管理する
テーブルはすべてメモリ上に置かれ、永続化はしない
*/
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/takeuchi-shogo/go-example-memsql/internal/storage"
)

var ErrTableAlreadyExists = errors.New("table already exists")

// Store は Executor が読み書きするテーブルの集合
// Executor はテーブル単位で読み出し、丸ごと差し替える
type Store interface {
	// GetTable はテーブルのコピーを返す
	GetTable(name string) (storage.Table, bool)
	// ReplaceTable はテーブルを差し替える (存在しなければ追加する)
	ReplaceTable(name string, table storage.Table)
	// TableNames はテーブル名を作成順で返す
	TableNames() []string
}

type Catalog interface {
	Store
	// CreateTable は空のテーブルを作成する
	CreateTable(name string) error
}

// catalog はメモリ上のテーブルを管理する
// ロックは個々の呼び出しを守るだけで、文単位の分離は呼び出し側 (session) の責任
type catalog struct {
	names  []string
	tables map[string]storage.Table
	lock   sync.RWMutex
}

func NewCatalog() Catalog {
	return &catalog{
		tables: make(map[string]storage.Table),
	}
}

// GetTable はテーブルを取得する
// 返すのはコピーなので、呼び出し側が行を書き換えても Store には影響しない
func (c *catalog) GetTable(name string) (storage.Table, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	table, ok := c.tables[name]
	if !ok {
		return nil, false
	}
	return table.Clone(), true
}

// ReplaceTable はテーブルを差し替える
func (c *catalog) ReplaceTable(name string, table storage.Table) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, ok := c.tables[name]; !ok {
		c.names = append(c.names, name)
	}
	if table == nil {
		table = storage.Table{}
	}
	c.tables[name] = table
}

// TableNames はテーブルの一覧を返す
func (c *catalog) TableNames() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// CreateTable はテーブルを作成する
func (c *catalog) CreateTable(name string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	// すでに存在しているか
	if _, ok := c.tables[name]; ok {
		return fmt.Errorf("table %s: %w", name, ErrTableAlreadyExists)
	}
	c.names = append(c.names, name)
	c.tables[name] = storage.Table{}
	return nil
}
