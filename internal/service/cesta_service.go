package service

import (
	"context"
	"errors"
	"fmt"

	"estoquecestas/internal/dto"
	"estoquecestas/internal/infra"
	"estoquecestas/internal/model"
	"estoquecestas/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReciboEnfileirador queues the optional PDF rendering of a committed basket.
type ReciboEnfileirador interface {
	EnqueueReciboPDF(ctx context.Context, cestaID uint) error
}

// CestaService assembles baskets from stock.
type CestaService interface {
	// Montar plans the basket against current stock and, when every item is
	// available, consumes the lots and records the basket in one transaction.
	// Returns *FaltaEstoqueError without touching stock when something is missing.
	Montar(ctx context.Context, tipo model.TipoCesta) (*dto.MontarCestaResponse, error)
}

type cestaService struct {
	lotes      repository.LoteRepository
	estoque    EstoqueService
	historico  HistoricoService
	dispatcher ReciboEnfileirador // nil when PDF receipts are disabled
	agora      Relogio
}

func NewCestaService(
	lotes repository.LoteRepository,
	estoque EstoqueService,
	historico HistoricoService,
	dispatcher ReciboEnfileirador,
	agora Relogio,
) CestaService {
	return &cestaService{
		lotes:      lotes,
		estoque:    estoque,
		historico:  historico,
		dispatcher: dispatcher,
		agora:      agora,
	}
}

func (s *cestaService) Montar(ctx context.Context, tipo model.TipoCesta) (*dto.MontarCestaResponse, error) {
	necessarios, err := ItensNecessarios(tipo)
	if err != nil {
		return nil, err
	}

	lotes, err := s.lotes.FindByNomes(ctx, necessarios)
	if err != nil {
		return nil, fmt.Errorf("consultar estoque: %w", err)
	}

	plano := planejarCesta(necessarios, lotes)
	if len(plano.Faltantes) > 0 {
		infra.CestasMontadas.WithLabelValues(string(tipo), "falta_estoque").Inc()
		log.Warn().
			Str("tipo", string(tipo)).
			Strs("faltantes", plano.Faltantes).
			Msg("falta de estoque")
		return nil, &FaltaEstoqueError{Itens: plano.Faltantes}
	}

	var cesta *model.Cesta
	txErr := runTx(ctx, s.lotes.DB(), func(tx *gorm.DB) error {
		var falhas []FalhaConsumo
		for _, c := range plano.consumoPorLote() {
			if err := s.lotes.ConsumirTx(tx, c.LoteID, c.Quantidade); err != nil {
				falhas = append(falhas, FalhaConsumo{
					LoteID:     c.LoteID,
					Nome:       c.Nome,
					Quantidade: c.Quantidade,
					Err:        err,
				})
			}
		}
		if len(falhas) > 0 {
			causas := make([]error, 0, len(falhas))
			for _, f := range falhas {
				causas = append(causas, f.Err)
			}
			return &AlocacaoError{Falhas: falhas, Err: errors.Join(causas...)}
		}

		var err error
		cesta, err = s.historico.RegistrarTx(tx, tipo, plano.itens(), plano.Total, s.agora())
		if err != nil {
			return &AlocacaoError{Err: err}
		}
		return nil
	})
	if txErr != nil {
		// receipt was written before the rollback
		if cesta != nil {
			s.historico.DescartarRecibo(cesta.NomeArquivo)
		}
		infra.CestasMontadas.WithLabelValues(string(tipo), "falha").Inc()
		ev := log.Error().Err(txErr).Str("tipo", string(tipo))
		var aloc *AlocacaoError
		if errors.As(txErr, &aloc) {
			ids := make([]uint, 0, len(aloc.Falhas))
			for _, f := range aloc.Falhas {
				ids = append(ids, f.LoteID)
			}
			ev.Uints("lotes", ids).Msg("falha ao montar cesta")
			return nil, aloc
		}
		ev.Msg("falha ao montar cesta")
		return nil, &AlocacaoError{Err: txErr}
	}

	s.estoque.InvalidarCache(ctx)

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueReciboPDF(ctx, cesta.ID); err != nil {
			log.Warn().Err(err).Uint("cesta_id", cesta.ID).Msg("falha ao enfileirar recibo PDF")
		}
	}

	infra.CestasMontadas.WithLabelValues(string(tipo), "montada").Inc()
	log.Info().
		Uint("cesta_id", cesta.ID).
		Str("tipo", string(tipo)).
		Str("total", cesta.PrecoTotal.StringFixed(2)).
		Int("itens", len(cesta.Itens)).
		Str("arquivo", cesta.NomeArquivo).
		Msg("cesta montada")

	return &dto.MontarCestaResponse{
		Message:    fmt.Sprintf("Cesta do tipo %q montada com sucesso!", string(tipo)),
		TotalPrice: plano.Total.StringFixed(2),
		IDCesta:    cesta.ID,
		File:       cesta.NomeArquivo,
	}, nil
}
