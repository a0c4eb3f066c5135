package service

import "estoquecestas/internal/model"

// One unit of each name is required. Order drives receipt line order only.
var catalogos = map[model.TipoCesta][]string{
	model.CestaPequena: {
		"Arroz", "Feijão", "Óleo", "Açúcar", "Café moído", "Sal", "Extrato de tomate",
		"Bolacha recheada", "Macarrão Espaguete", "Farinha de trigo", "Farinha temperada",
		"Goiabada", "Suco em pó", "Sardinha", "Creme dental", "Papel higiênico", "Sabonete",
		"Milharina", "Tempero",
	},
	model.CestaGrande: {
		"Arroz", "Feijão", "Óleo", "Açúcar", "Café moído", "Sal", "Extrato de tomate", "Vinagre",
		"Bolacha recheada", "Bolacha salgada", "Macarrão Espaguete", "Macarrão parafuso",
		"Macarrão instantâneo", "Farinha de trigo", "Farinha temperada", "Achocolatado em pó",
		"Leite", "Goiabada", "Suco em pó", "Mistura para bolo", "Tempero", "Sardinha",
		"Creme dental", "Papel higiênico", "Sabonete",
	},
}

// ItensNecessarios returns a copy of the required item names for tipo.
func ItensNecessarios(tipo model.TipoCesta) ([]string, error) {
	itens, ok := catalogos[tipo]
	if !ok {
		return nil, ErrTipoCestaInvalido
	}
	return append([]string(nil), itens...), nil
}
