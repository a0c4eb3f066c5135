package worker

// alerta_validade.go
// Daily scan for lots inside the near-expiry window. Each hit is logged and
// the count is exported as a Prometheus gauge.

import (
	"context"
	"time"

	"estoquecestas/internal/infra"
	"estoquecestas/internal/service"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

type AlertaValidade struct {
	estoque service.EstoqueService
	agora   service.Relogio
}

func NewAlertaValidade(estoque service.EstoqueService, agora service.Relogio) *AlertaValidade {
	return &AlertaValidade{estoque: estoque, agora: agora}
}

// Verificar logs every near-expiry lot and returns how many were found.
func (a *AlertaValidade) Verificar(ctx context.Context) (int, error) {
	lotes, err := a.estoque.ProximosDoVencimento(ctx)
	if err != nil {
		return 0, err
	}

	hoje := a.agora()
	for _, l := range lotes {
		log.Warn().
			Uint("lote_id", l.ID).
			Str("nome", l.Nome).
			Int("quantidade", l.Quantidade).
			Str("validade", service.FormatarData(l.DataValidade)).
			Int("dias_restantes", service.DiasRestantes(l.DataValidade, hoje)).
			Msg("alerta_validade: lote próximo do vencimento")
	}
	infra.LotesProximosVencimento.Set(float64(len(lotes)))
	return len(lotes), nil
}

// Run schedules Verificar every day at horario ("HH:MM") in loc, runs it once
// immediately so the gauge is populated, and blocks until ctx is cancelled.
func (a *AlertaValidade) Run(ctx context.Context, loc *time.Location, horario string) error {
	s := gocron.NewScheduler(loc)
	_, err := s.Every(1).Day().At(horario).Do(func() {
		if _, err := a.Verificar(ctx); err != nil {
			log.Error().Err(err).Msg("alerta_validade: falha na verificação")
		}
	})
	if err != nil {
		return err
	}

	if _, err := a.Verificar(ctx); err != nil {
		log.Error().Err(err).Msg("alerta_validade: falha na verificação inicial")
	}

	s.StartAsync()
	log.Info().Str("horario", horario).Str("timezone", loc.String()).Msg("alerta_validade: agendado")

	<-ctx.Done()
	s.Stop()
	log.Info().Msg("alerta_validade: shutting down")
	return nil
}
