package worker

// recibo_worker.go
// Renders the PDF copy of a committed basket receipt from QueueReciboPDF.
// The PDF lands next to the text receipt and is served by the same download route.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"estoquecestas/internal/infra"
	"estoquecestas/internal/repository"

	"github.com/rs/zerolog/log"
)

type ReciboWorker struct {
	historico repository.HistoricoRepository
	dir       string
	loc       *time.Location
}

func NewReciboWorker(historico repository.HistoricoRepository, dir string, loc *time.Location) *ReciboWorker {
	return &ReciboWorker{historico: historico, dir: dir, loc: loc}
}

// Process loads the basket with its lines and writes the PDF.
// A malformed payload is not retried.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return nil
	}

	cesta, err := w.historico.FindByID(ctx, payload.CestaID)
	if err != nil {
		return fmt.Errorf("recibo_worker: carregar cesta %d: %w", payload.CestaID, err)
	}
	cesta.DataMontagem = cesta.DataMontagem.In(w.loc)

	path, err := infra.GerarReciboPDF(cesta, w.dir)
	if err != nil {
		return fmt.Errorf("recibo_worker: gerar pdf da cesta %d: %w", cesta.ID, err)
	}

	log.Info().
		Uint("cesta_id", cesta.ID).
		Str("path", path).
		Msg("recibo_worker: PDF gerado")
	return nil
}
