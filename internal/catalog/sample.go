package catalog

import "github.com/takeuchi-shogo/go-example-memsql/internal/storage"

// NewSampleCatalog はデモ用のデータを持つカタログを作る
//
//	users    (id, name, email)      Alice, Bob
//	products (id, name, price)      3 件
//	logs                            空のテーブル
func NewSampleCatalog() Catalog {
	c := NewCatalog()

	userColumns := []string{"id", "name", "email"}
	c.ReplaceTable("users", storage.Table{
		storage.NewRowFromValues(userColumns, []storage.Value{
			storage.NumberValue(1), storage.StringValue("Alice"), storage.StringValue("alice@example.com"),
		}),
		storage.NewRowFromValues(userColumns, []storage.Value{
			storage.NumberValue(2), storage.StringValue("Bob"), storage.StringValue("bob@example.com"),
		}),
	})

	productColumns := []string{"id", "name", "price"}
	c.ReplaceTable("products", storage.Table{
		storage.NewRowFromValues(productColumns, []storage.Value{
			storage.NumberValue(1), storage.StringValue("Laptop"), storage.NumberValue(1200),
		}),
		storage.NewRowFromValues(productColumns, []storage.Value{
			storage.NumberValue(2), storage.StringValue("Mouse"), storage.NumberValue(25.5),
		}),
		storage.NewRowFromValues(productColumns, []storage.Value{
			storage.NumberValue(3), storage.StringValue("Keyboard"), storage.NumberValue(75),
		}),
	})

	// CreateTable は新しいテーブルに対してのみ失敗する
	_ = c.CreateTable("logs")
	return c
}
