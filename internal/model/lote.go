package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lote is one purchase batch of a product. Several lots may share a Nome;
// each keeps its own quantity, expiry and price.
type Lote struct {
	ID           uint            `gorm:"primaryKey"`
	Nome         string          `gorm:"index;not null"`
	Quantidade   int             `gorm:"not null"`
	DataCompra   time.Time       `gorm:"not null"`
	DataValidade time.Time       `gorm:"index;not null"`
	Preco        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Codigo is a display label derived at registration; it is not unique.
	Codigo    string `gorm:"not null"`
	CreatedAt time.Time
}

// TableName keeps the table name used by the existing database files.
func (Lote) TableName() string { return "produtos" }
