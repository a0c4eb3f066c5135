package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type MontarCestaRequest struct {
	Tipo string `json:"tipo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MontarCestaResponse struct {
	Message    string `json:"message"`
	TotalPrice string `json:"totalPrice"` // "52.30"
	IDCesta    uint   `json:"id_cesta"`
	File       string `json:"file"`
}

type ItemCestaResponse struct {
	Nome          string          `json:"nome"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	CodigoProduto string          `json:"codigo_produto"`
}

type CestaResponse struct {
	ID           uint            `json:"id"`
	NomeArquivo  string          `json:"nome_arquivo"`
	DataMontagem string          `json:"data_montagem"` // RFC 3339
	PrecoTotal   decimal.Decimal `json:"preco_total"`
	Tipo         string          `json:"tipo"`
}

// HistoricoResponse groups baskets by "M/YYYY" of assembly, newest first in each group.
type HistoricoResponse map[string][]CestaResponse
