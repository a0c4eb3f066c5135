package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"estoquecestas/internal/config"
	"estoquecestas/internal/infra"
	"estoquecestas/internal/model"
	"estoquecestas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func relogioFixo() time.Time {
	return time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
}

func novoServidor(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := infra.NewDatabase(filepath.Join(t.TempDir(), "estoque.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	cfg := &config.Config{
		Env:                "test",
		RateLimitPerMinute: 100000,
		HistoricoDir:       filepath.Join(t.TempDir(), "historico"),
	}
	return New(cfg, db, nil, nil, relogioFixo)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func produto(nome string, qtd int, validade string, preco any) map[string]any {
	return map[string]any{
		"nome":         nome,
		"quantidade":   qtd,
		"dataCompra":   "2024-12-10",
		"dataValidade": validade,
		"preco":        preco,
	}
}

func seedCatalogo(t *testing.T, r *gin.Engine, tipo model.TipoCesta, exceto ...string) {
	t.Helper()
	nomes, err := service.ItensNecessarios(tipo)
	require.NoError(t, err)
	pular := make(map[string]bool)
	for _, n := range exceto {
		pular[n] = true
	}
	for i, nome := range nomes {
		if pular[nome] {
			continue
		}
		w := doJSON(t, r, http.MethodPost, "/api/produtos", produto(nome, 2, "2025-06-01", fmt.Sprintf("%d.50", i+1)))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestCadastrarProduto(t *testing.T) {
	r := novoServidor(t)

	w := doJSON(t, r, http.MethodPost, "/api/produtos", produto("Arroz", 10, "2025-01-01", 12.5))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "Produto cadastrado com sucesso!", body["message"])
	assert.EqualValues(t, 1, body["id"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	estoque := decode[[]map[string]any](t, doJSON(t, r, http.MethodGet, "/api/estoque", nil))
	require.Len(t, estoque, 1)
	assert.Equal(t, "Av0101c1012vr12,50", estoque[0]["codigo"])
	assert.Equal(t, "12,50", estoque[0]["preco"])
	assert.EqualValues(t, 0, estoque[0]["dias_restantes"])
	assert.Equal(t, true, estoque[0]["expirando"])
}

func TestCadastrarProdutoRejeitaEntradaInvalida(t *testing.T) {
	r := novoServidor(t)

	cases := []struct {
		name string
		body any
		erro string
	}{
		{"preco zero", produto("Sal", 1, "2025-06-01", 0), "Preço inválido."},
		{"preco negativo", produto("Sal", 1, "2025-06-01", -2), "Preço inválido."},
		{"compra futura", map[string]any{"nome": "Sal", "quantidade": 1, "dataCompra": "2025-01-02", "dataValidade": "2025-06-01", "preco": 2}, "Data de compra não pode ser futura."},
		{"data malformada", produto("Sal", 1, "junho", 2), "Data inválida, use AAAA-MM-DD."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/produtos", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.erro, decode[map[string]any](t, w)["error"])
		})
	}

	w := doJSON(t, r, http.MethodPost, "/api/produtos", `{"nome": "Sal",`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "error")

	w = doJSON(t, r, http.MethodPost, "/api/produtos", map[string]any{"quantidade": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	estoque := decode[[]map[string]any](t, doJSON(t, r, http.MethodGet, "/api/estoque", nil))
	assert.Empty(t, estoque)
}

func TestMontarCestaTipoInvalido(t *testing.T) {
	r := novoServidor(t)

	for _, body := range []any{map[string]any{"tipo": "media"}, `{}`, `nao-json`} {
		w := doJSON(t, r, http.MethodPost, "/api/cestas", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]any{"message": "Tipo de cesta inválido!"}, decode[map[string]any](t, w))
	}
}

func TestMontarCestaFaltaEstoque(t *testing.T) {
	r := novoServidor(t)
	seedCatalogo(t, r, model.CestaPequena, "Sal", "Óleo", "Arroz")

	w := doJSON(t, r, http.MethodPost, "/api/cestas", map[string]any{"tipo": "pequena"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]any](t, w)
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, []any{"Arroz", "Óleo", "Sal"}, body["missingItems"])

	historico := decode[map[string]any](t, doJSON(t, r, http.MethodGet, "/api/historico", nil))
	assert.Empty(t, historico)
}

func TestMontarCestaFluxoCompleto(t *testing.T) {
	r := novoServidor(t)
	seedCatalogo(t, r, model.CestaPequena)

	w := doJSON(t, r, http.MethodPost, "/api/cestas", map[string]any{"tipo": "pequena"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[map[string]any](t, w)
	assert.Equal(t, `Cesta do tipo "pequena" montada com sucesso!`, resp["message"])
	// 1.50 + 2.50 + ... + 19.50
	assert.Equal(t, "199.50", resp["totalPrice"])
	arquivo := resp["file"].(string)
	assert.Equal(t, "2025-01-01_12-00-00_Pequena_R$199,50.txt", arquivo)

	itens := decode[[]map[string]any](t, doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/cestas/%v/itens", resp["id_cesta"]), nil))
	require.Len(t, itens, 19)
	assert.Equal(t, "Arroz", itens[0]["nome"])
	assert.EqualValues(t, 1, itens[0]["quantidade"])
	assert.Contains(t, itens[0], "preco_unitario")
	assert.Contains(t, itens[0], "codigo_produto")

	historico := decode[map[string][]map[string]any](t, doJSON(t, r, http.MethodGet, "/api/historico", nil))
	require.Len(t, historico["1/2025"], 1)
	assert.Equal(t, arquivo, historico["1/2025"][0]["nome_arquivo"])
	assert.Equal(t, "Pequena", historico["1/2025"][0]["tipo"])

	estoque := decode[[]map[string]any](t, doJSON(t, r, http.MethodGet, "/api/estoque", nil))
	require.Len(t, estoque, 19)
	for _, l := range estoque {
		assert.EqualValues(t, 1, l["quantidade"])
	}

	dl := doJSON(t, r, http.MethodGet, "/historico/"+arquivo, nil)
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Contains(t, dl.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasSuffix(dl.Body.String(), "Valor Total: R$ 199.50"))
}

func TestItensDeCestaInexistenteOuInvalida(t *testing.T) {
	r := novoServidor(t)

	for _, path := range []string{"/api/cestas/999/itens", "/api/cestas/abc/itens"} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	}
}

func TestBaixarReciboInexistente(t *testing.T) {
	r := novoServidor(t)

	for _, nome := range []string{"nada.txt", "..%2Festoque.sqlite"} {
		w := doJSON(t, r, http.MethodGet, "/historico/"+nome, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, nome)
	}
}

func TestHealthSemRedis(t *testing.T) {
	r := novoServidor(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true, "db": "connected", "redis": "disabled"}`, w.Body.String())
}

func TestMetrics(t *testing.T) {
	r := novoServidor(t)
	doJSON(t, r, http.MethodGet, "/api/estoque", nil)

	w := doJSON(t, r, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
