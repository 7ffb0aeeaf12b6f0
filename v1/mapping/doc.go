// Package mapping describes how a Go struct maps onto a table and moves values
// between result rows and struct fields.
//
// Struct parsing is delegated to gorm's schema package, so the usual gorm tags
// apply:
//
//	type Order struct {
//	    ID   int    `gorm:"column:Id;primaryKey;autoIncrement:false"`
//	    Name string `gorm:"column:Name"`
//	}
//
//	func (Order) TableName() string { return "Orders" }
//
// Entities are cached per type and are safe for concurrent use. Bind returns a
// new Entity and leaves the cached one untouched.
package mapping
