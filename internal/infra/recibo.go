package infra

// recibo.go: fixed-width plain-text basket receipt.
// Layout:
//   Nome (25, left) | Qtd (5, right) | Preço Unit. (15, right) | Código (25, right)
//   70-dash rule, one row per line item, blank line, rule, total line.
// Widths count runes so accented product names keep the columns aligned.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"estoquecestas/internal/model"

	"github.com/shopspring/decimal"
)

const (
	larguraNome   = 25
	larguraQtd    = 5
	larguraPreco  = 15
	larguraCodigo = 25
	larguraRegua  = 70
)

// FormatarPreco renders a price with two decimals and a comma separator ("12,50").
func FormatarPreco(p decimal.Decimal) string {
	return strings.Replace(p.StringFixed(2), ".", ",", 1)
}

// NomeArquivoRecibo encodes the assembly time, basket type and total:
// 2026-10-16_14-03-05_Pequena_R$52,30.txt
func NomeArquivoRecibo(momento time.Time, tipo string, total decimal.Decimal) string {
	return fmt.Sprintf("%s_%s_R$%s.txt", momento.Format("2006-01-02_15-04-05"), tipo, FormatarPreco(total))
}

// FormatarReciboTexto renders the receipt body.
func FormatarReciboTexto(itens []model.ItemCesta, total decimal.Decimal) string {
	regua := strings.Repeat("-", larguraRegua)

	var b strings.Builder
	b.WriteString(padRight("Nome", larguraNome))
	b.WriteString(padLeft("Qtd", larguraQtd))
	b.WriteString(padLeft("Preço Unit.", larguraPreco))
	b.WriteString(padLeft("Código", larguraCodigo))
	b.WriteString("\n")
	b.WriteString(regua)
	b.WriteString("\n")

	for _, item := range itens {
		b.WriteString(padRight(item.Nome, larguraNome))
		b.WriteString(padLeft(strconv.Itoa(item.Quantidade), larguraQtd))
		b.WriteString(padLeft("R$ "+item.PrecoUnitario.StringFixed(2), larguraPreco))
		b.WriteString(padLeft(item.CodigoProduto, larguraCodigo))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(regua)
	b.WriteString("\n")
	b.WriteString("Valor Total: R$ " + total.StringFixed(2))
	return b.String()
}

// maxSufixosRecibo bounds the "_2", "_3", ... names tried when a receipt
// with the same second, type and total already exists.
const maxSufixosRecibo = 100

// EscreverReciboTexto writes the receipt under dir, creating dir if needed.
// An existing file is never overwritten: on a name clash a numeric suffix is
// added before the extension. Returns the name of the file it created.
func EscreverReciboTexto(dir, nome string, itens []model.ItemCesta, total decimal.Decimal) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("recibo: create dir: %w", err)
	}
	conteudo := []byte(FormatarReciboTexto(itens, total))
	ext := filepath.Ext(nome)
	base := strings.TrimSuffix(nome, ext)

	candidato := nome
	for n := 2; n <= maxSufixosRecibo+1; n++ {
		f, err := os.OpenFile(filepath.Join(dir, candidato), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			candidato = fmt.Sprintf("%s_%d%s", base, n, ext)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("recibo: create file: %w", err)
		}
		_, werr := f.Write(conteudo)
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			_ = os.Remove(filepath.Join(dir, candidato))
			return "", fmt.Errorf("recibo: write file: %w", werr)
		}
		return candidato, nil
	}
	return "", fmt.Errorf("recibo: %d files already named %s", maxSufixosRecibo, nome)
}

func padRight(s string, n int) string {
	if k := utf8.RuneCountInString(s); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}

func padLeft(s string, n int) string {
	if k := utf8.RuneCountInString(s); k < n {
		return strings.Repeat(" ", n-k) + s
	}
	return s
}
