package service

import (
	"fmt"
	"strings"
)

// EntradaInvalidaError rejects a registration field. Handlers map it to 400.
type EntradaInvalidaError struct {
	Campo    string
	Mensagem string
}

func (e *EntradaInvalidaError) Error() string { return e.Mensagem }

var (
	ErrNomeObrigatorio    = &EntradaInvalidaError{Campo: "nome", Mensagem: "Nome do produto é obrigatório."}
	ErrPrecoInvalido      = &EntradaInvalidaError{Campo: "preco", Mensagem: "Preço inválido."}
	ErrQuantidadeInvalida = &EntradaInvalidaError{Campo: "quantidade", Mensagem: "Quantidade inválida."}
	ErrDataInvalida       = &EntradaInvalidaError{Campo: "data", Mensagem: "Data inválida, use AAAA-MM-DD."}
	ErrDataFutura         = &EntradaInvalidaError{Campo: "dataCompra", Mensagem: "Data de compra não pode ser futura."}
	ErrTipoCestaInvalido  = &EntradaInvalidaError{Campo: "tipo", Mensagem: "Tipo de cesta inválido!"}
)

// FaltaEstoqueError lists every required item with no available unit,
// sorted alphabetically. No stock was touched.
type FaltaEstoqueError struct {
	Itens []string
}

func (e *FaltaEstoqueError) Error() string {
	return "itens em falta: " + strings.Join(e.Itens, ", ")
}

// FalhaConsumo is one lot mutation that failed during commit.
type FalhaConsumo struct {
	LoteID     uint
	Nome       string
	Quantidade int
	Err        error
}

// AlocacaoError reports a failure after the shortage check passed. Falhas lists
// the lot mutations that failed; Err carries a persistence or receipt failure.
// The commit transaction was rolled back.
type AlocacaoError struct {
	Falhas []FalhaConsumo
	Err    error
}

func (e *AlocacaoError) Error() string {
	if len(e.Falhas) == 0 {
		return fmt.Sprintf("falha ao montar cesta: %v", e.Err)
	}
	partes := make([]string, 0, len(e.Falhas))
	for _, f := range e.Falhas {
		partes = append(partes, fmt.Sprintf("lote %d (%s): %v", f.LoteID, f.Nome, f.Err))
	}
	return "falha ao consumir estoque: " + strings.Join(partes, "; ")
}

func (e *AlocacaoError) Unwrap() error { return e.Err }
