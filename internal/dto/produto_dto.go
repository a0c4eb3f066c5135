package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CadastrarProdutoRequest registers one lot. Preco accepts a JSON number or a
// numeric string; its range is checked by the service.
type CadastrarProdutoRequest struct {
	Nome         string           `json:"nome"         validate:"required"`
	Quantidade   *int             `json:"quantidade"   validate:"required"`
	DataCompra   string           `json:"dataCompra"   validate:"required"`
	DataValidade string           `json:"dataValidade" validate:"required"`
	Preco        *decimal.Decimal `json:"preco"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CadastrarProdutoResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// LoteResponse is one row of GET /api/estoque.
type LoteResponse struct {
	ID            uint   `json:"id"`
	Nome          string `json:"nome"`
	Quantidade    int    `json:"quantidade"`
	DataCompra    string `json:"data_compra"`
	DataValidade  string `json:"data_validade"`
	Preco         string `json:"preco"` // "12,50"
	Codigo        string `json:"codigo"`
	DiasRestantes int    `json:"dias_restantes"`
	Expirando     bool   `json:"expirando"`
}
