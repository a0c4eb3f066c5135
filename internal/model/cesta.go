package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoCesta identifies one of the fixed basket catalogs.
type TipoCesta string

const (
	CestaPequena TipoCesta = "pequena"
	CestaGrande  TipoCesta = "grande"
)

// Valido reports whether t names a known catalog.
func (t TipoCesta) Valido() bool {
	return t == CestaPequena || t == CestaGrande
}

// Nome returns the capitalized label stored in the history and used in receipt file names.
func (t TipoCesta) Nome() string {
	switch t {
	case CestaPequena:
		return "Pequena"
	case CestaGrande:
		return "Grande"
	}
	return string(t)
}

// Cesta is one assembled basket. Created once, on successful assembly, and never updated.
type Cesta struct {
	ID           uint            `gorm:"primaryKey"`
	NomeArquivo  string          `gorm:"not null"`
	DataMontagem time.Time       `gorm:"index;not null"`
	PrecoTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Tipo         string          `gorm:"not null"`

	Itens []ItemCesta `gorm:"foreignKey:CestaID"`
}

func (Cesta) TableName() string { return "historico" }

// ItemCesta is one line of an assembled basket: the units taken from a single lot.
type ItemCesta struct {
	ID            uint            `gorm:"primaryKey"`
	CestaID       uint            `gorm:"column:id_cesta;index;not null"`
	Nome          string          `gorm:"not null"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CodigoProduto string          `gorm:"not null"`
}

func (ItemCesta) TableName() string { return "itens_cesta" }
