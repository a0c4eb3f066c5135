package service

import (
	"testing"
	"time"

	"estoquecestas/internal/model"

	"github.com/stretchr/testify/assert"
)

func data(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProximoDoVencimentoLimite(t *testing.T) {
	ref := time.Date(2025, time.January, 1, 15, 30, 0, 0, time.UTC)

	trinta := model.Lote{DataValidade: data("2025-01-31")}
	trintaEUm := model.Lote{DataValidade: data("2025-02-01")}

	assert.Equal(t, 30, DiasRestantes(trinta.DataValidade, ref))
	assert.True(t, ProximoDoVencimento(trinta, ref))
	assert.Equal(t, 31, DiasRestantes(trintaEUm.DataValidade, ref))
	assert.False(t, ProximoDoVencimento(trintaEUm, ref))
}

func TestDiasRestantesVencido(t *testing.T) {
	ref := data("2025-03-10")
	vencido := model.Lote{DataValidade: data("2025-03-01")}

	assert.Equal(t, -9, DiasRestantes(vencido.DataValidade, ref))
	assert.True(t, ProximoDoVencimento(vencido, ref))
}

func TestDiasRestantesUsaDataLocalDaReferencia(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	// 2025-01-01 23:30 in São Paulo is already Jan 2 in UTC; the local date wins.
	ref := time.Date(2025, time.January, 1, 23, 30, 0, 0, sp)

	assert.Equal(t, 30, DiasRestantes(data("2025-01-31"), ref))
}

func TestDiasRestantesAtravessaHorarioDeVerao(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata indisponível")
	}
	ref := time.Date(2025, time.March, 1, 0, 0, 0, 0, ny)

	assert.Equal(t, 31, DiasRestantes(data("2025-04-01"), ref))
}

func TestDiasRestantesComValidadeEmFusoNegativo(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	// UTC midnight read back as the previous evening in São Paulo.
	validade := data("2025-01-31").In(sp)
	ref := time.Date(2025, time.January, 1, 10, 0, 0, 0, sp)

	assert.Equal(t, 30, DiasRestantes(validade, ref))
	assert.True(t, ProximoDoVencimento(model.Lote{DataValidade: validade}, ref))
	assert.Equal(t, 31, DiasRestantes(data("2025-02-01").In(sp), ref))
	assert.Equal(t, "2025-01-31", FormatarData(validade))
}
