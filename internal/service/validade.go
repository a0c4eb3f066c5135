package service

import (
	"time"

	"estoquecestas/internal/model"
)

// LimiteValidadeDias is the inclusive near-expiry horizon.
const LimiteValidadeDias = 30

// Relogio supplies the current time in the business time zone.
type Relogio func() time.Time

// RelogioPadrao returns the wall clock in loc.
func RelogioPadrao(loc *time.Location) Relogio {
	return func() time.Time { return time.Now().In(loc) }
}

// DiasRestantes counts whole calendar days from the date of referencia
// (in its own location) to the date of validade. Negative once expired.
// Stored dates are UTC midnight, so validade is read in UTC whatever
// location the driver returned it in.
func DiasRestantes(validade, referencia time.Time) int {
	ref := time.Date(referencia.Year(), referencia.Month(), referencia.Day(), 0, 0, 0, 0, time.UTC)
	validade = validade.UTC()
	val := time.Date(validade.Year(), validade.Month(), validade.Day(), 0, 0, 0, 0, time.UTC)
	return int(val.Sub(ref).Hours() / 24)
}

// ProximoDoVencimento reports whether l expires within LimiteValidadeDias of referencia.
// Already-expired lots count as near expiry.
func ProximoDoVencimento(l model.Lote, referencia time.Time) bool {
	return DiasRestantes(l.DataValidade, referencia) <= LimiteValidadeDias
}

// FormatarData renders a stored calendar date as AAAA-MM-DD.
func FormatarData(d time.Time) string {
	return d.UTC().Format(formatoData)
}
