package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"estoquecestas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNomeArquivoRecibo(t *testing.T) {
	momento := time.Date(2026, time.March, 5, 9, 7, 3, 0, time.UTC)
	nome := NomeArquivoRecibo(momento, "Pequena", decimal.RequireFromString("52.3"))
	assert.Equal(t, "2026-03-05_09-07-03_Pequena_R$52,30.txt", nome)
}

func TestFormatarPreco(t *testing.T) {
	assert.Equal(t, "12,50", FormatarPreco(decimal.RequireFromString("12.5")))
	assert.Equal(t, "0,99", FormatarPreco(decimal.RequireFromString("0.99")))
	assert.Equal(t, "3,00", FormatarPreco(decimal.NewFromInt(3)))
}

func TestFormatarReciboTexto(t *testing.T) {
	itens := []model.ItemCesta{
		{Nome: "Arroz", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("25.9"), CodigoProduto: "Av0101c1012vr25,90"},
		{Nome: "Óleo", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("7.5"), CodigoProduto: "Óv0202c1012vr7,50"},
	}
	texto := FormatarReciboTexto(itens, decimal.RequireFromString("33.4"))
	linhas := strings.Split(texto, "\n")

	require.Len(t, linhas, 7)
	assert.Equal(t, "Nome                       Qtd    Preço Unit.                   Código", linhas[0])
	assert.Equal(t, strings.Repeat("-", 70), linhas[1])
	assert.Equal(t, "Arroz                        1       R$ 25.90       Av0101c1012vr25,90", linhas[2])
	// Widths are counted in runes, so the accented row lines up with the plain one.
	assert.Equal(t, 70, len([]rune(linhas[3])))
	assert.Equal(t, "", linhas[4])
	assert.Equal(t, strings.Repeat("-", 70), linhas[5])
	assert.Equal(t, "Valor Total: R$ 33.40", linhas[6])
}

func TestEscreverReciboTextoCriaDiretorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "historico")

	nome, err := EscreverReciboTexto(dir, "recibo.txt", nil, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "recibo.txt", nome)

	conteudo, err := os.ReadFile(filepath.Join(dir, "recibo.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(conteudo), "Valor Total: R$ 0.00"))
}

func TestEscreverReciboTextoNaoSobrescreve(t *testing.T) {
	dir := t.TempDir()
	nome := "2025-01-01_12-00-00_Pequena_R$25,90.txt"
	itens := []model.ItemCesta{
		{Nome: "Arroz", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("25.9"), CodigoProduto: "Av0101c1012vr25,90"},
	}

	primeiro, err := EscreverReciboTexto(dir, nome, itens, decimal.RequireFromString("25.9"))
	require.NoError(t, err)
	segundo, err := EscreverReciboTexto(dir, nome, nil, decimal.Zero)
	require.NoError(t, err)
	terceiro, err := EscreverReciboTexto(dir, nome, nil, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, nome, primeiro)
	assert.Equal(t, "2025-01-01_12-00-00_Pequena_R$25,90_2.txt", segundo)
	assert.Equal(t, "2025-01-01_12-00-00_Pequena_R$25,90_3.txt", terceiro)

	conteudo, err := os.ReadFile(filepath.Join(dir, primeiro))
	require.NoError(t, err)
	assert.Contains(t, string(conteudo), "Valor Total: R$ 25.90")
	assert.FileExists(t, filepath.Join(dir, segundo))
	assert.FileExists(t, filepath.Join(dir, terceiro))
}

func TestGerarReciboPDF(t *testing.T) {
	dir := t.TempDir()
	cesta := &model.Cesta{
		NomeArquivo:  "2026-03-05_09-07-03_Pequena_R$25,90.txt",
		DataMontagem: time.Date(2026, time.March, 5, 9, 7, 3, 0, time.UTC),
		PrecoTotal:   decimal.RequireFromString("25.9"),
		Tipo:         "Pequena",
		Itens: []model.ItemCesta{
			{Nome: "Feijão", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("25.9"), CodigoProduto: "Fv0101c1012vr25,90"},
		},
	}

	path, err := GerarReciboPDF(cesta, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2026-03-05_09-07-03_Pequena_R$25,90.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
