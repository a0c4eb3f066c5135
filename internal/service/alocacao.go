package service

import (
	"estoquecestas/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// unidadesPorItem is the quantity each catalog entry consumes.
const unidadesPorItem = 1

// linhaPlano is one planned take: Item.Quantidade units from lot LoteID.
type linhaPlano struct {
	LoteID uint
	Item   model.ItemCesta
}

type consumoLote struct {
	LoteID     uint
	Nome       string
	Quantidade int
}

// planoCesta is the outcome of the plan phase. Nothing has been written yet.
type planoCesta struct {
	Linhas    []linhaPlano
	Total     decimal.Decimal
	Faltantes []string
}

// planejarCesta resolves each required name against lotes, which must be sorted
// by expiry ascending. Every occurrence of a name needs its own unit, taken from
// the earliest-expiring lot that still has planned availability (FEFO).
// Faltantes is deduplicated and in Portuguese alphabetical order.
func planejarCesta(necessarios []string, lotes []model.Lote) planoCesta {
	disponivel := make(map[uint]int, len(lotes))
	porNome := make(map[string][]model.Lote)
	for _, l := range lotes {
		disponivel[l.ID] = l.Quantidade
		porNome[l.Nome] = append(porNome[l.Nome], l)
	}

	plano := planoCesta{Total: decimal.Zero}
	emFalta := make(map[string]bool)

	for _, nome := range necessarios {
		candidatos := porNome[nome]

		total := 0
		for _, l := range candidatos {
			total += disponivel[l.ID]
		}
		if total < unidadesPorItem {
			if !emFalta[nome] {
				emFalta[nome] = true
				plano.Faltantes = append(plano.Faltantes, nome)
			}
			continue
		}

		restante := unidadesPorItem
		for _, l := range candidatos {
			if restante == 0 {
				break
			}
			usado := min(disponivel[l.ID], restante)
			if usado == 0 {
				continue
			}
			disponivel[l.ID] -= usado
			restante -= usado

			plano.Linhas = append(plano.Linhas, linhaPlano{
				LoteID: l.ID,
				Item: model.ItemCesta{
					Nome:          l.Nome,
					Quantidade:    usado,
					PrecoUnitario: l.Preco,
					CodigoProduto: l.Codigo,
				},
			})
			plano.Total = plano.Total.Add(l.Preco.Mul(decimal.NewFromInt(int64(usado))))
		}
	}

	ordenarNomes(plano.Faltantes)
	return plano
}

// consumoPorLote merges the planned takes per lot, in first-use order, so each
// lot is mutated once.
func (p planoCesta) consumoPorLote() []consumoLote {
	idx := make(map[uint]int)
	var consumos []consumoLote
	for _, linha := range p.Linhas {
		if i, ok := idx[linha.LoteID]; ok {
			consumos[i].Quantidade += linha.Item.Quantidade
			continue
		}
		idx[linha.LoteID] = len(consumos)
		consumos = append(consumos, consumoLote{
			LoteID:     linha.LoteID,
			Nome:       linha.Item.Nome,
			Quantidade: linha.Item.Quantidade,
		})
	}
	return consumos
}

func (p planoCesta) itens() []model.ItemCesta {
	itens := make([]model.ItemCesta, 0, len(p.Linhas))
	for _, linha := range p.Linhas {
		itens = append(itens, linha.Item)
	}
	return itens
}

// ordenarNomes sorts in place with Brazilian Portuguese collation ("Óleo" next to "O").
func ordenarNomes(nomes []string) {
	collate.New(language.BrazilianPortuguese).SortStrings(nomes)
}
