package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"estoquecestas/internal/dto"
	"estoquecestas/internal/infra"
	"estoquecestas/internal/model"
	"estoquecestas/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	estoqueCacheKey = "estoque:listagem"
	estoqueCacheTTL = 5 * time.Minute
	formatoData     = "2006-01-02"
)

// EstoqueService registers and lists product lots.
type EstoqueService interface {
	Registrar(ctx context.Context, req dto.CadastrarProdutoRequest) (*dto.CadastrarProdutoResponse, error)
	// Listar returns near-expiry lots first (earliest expiry first), then the
	// rest in alphabetical order.
	Listar(ctx context.Context) ([]dto.LoteResponse, error)
	ProximosDoVencimento(ctx context.Context) ([]model.Lote, error)
	InvalidarCache(ctx context.Context)
}

type estoqueService struct {
	repo  repository.LoteRepository
	rdb   *redis.Client // nil disables the listing cache
	agora Relogio
}

func NewEstoqueService(repo repository.LoteRepository, rdb *redis.Client, agora Relogio) EstoqueService {
	return &estoqueService{repo: repo, rdb: rdb, agora: agora}
}

func (s *estoqueService) Registrar(ctx context.Context, req dto.CadastrarProdutoRequest) (*dto.CadastrarProdutoResponse, error) {
	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		return nil, ErrNomeObrigatorio
	}
	if req.Preco == nil || !req.Preco.IsPositive() {
		return nil, ErrPrecoInvalido
	}
	if req.Quantidade == nil || *req.Quantidade < 0 {
		return nil, ErrQuantidadeInvalida
	}
	compra, err := time.Parse(formatoData, req.DataCompra)
	if err != nil {
		return nil, ErrDataInvalida
	}
	validade, err := time.Parse(formatoData, req.DataValidade)
	if err != nil {
		return nil, ErrDataInvalida
	}
	if DiasRestantes(compra, s.agora()) > 0 {
		return nil, ErrDataFutura
	}

	preco := req.Preco.Round(2)
	lote := &model.Lote{
		Nome:         nome,
		Quantidade:   *req.Quantidade,
		DataCompra:   compra,
		DataValidade: validade,
		Preco:        preco,
		Codigo:       gerarCodigo(nome, compra, validade, preco),
	}
	if err := s.repo.Create(ctx, lote); err != nil {
		return nil, err
	}
	s.InvalidarCache(ctx)

	log.Info().
		Uint("lote_id", lote.ID).
		Str("nome", lote.Nome).
		Int("quantidade", lote.Quantidade).
		Str("codigo", lote.Codigo).
		Msg("lote cadastrado")

	return &dto.CadastrarProdutoResponse{Message: "Produto cadastrado com sucesso!", ID: lote.ID}, nil
}

// gerarCodigo builds the display code <Inicial>v<DDMM validade>c<DDMM compra>vr<preço>,
// e.g. "Av0101c1012vr12,50". Not unique.
func gerarCodigo(nome string, compra, validade time.Time, preco decimal.Decimal) string {
	r, _ := utf8.DecodeRuneInString(nome)
	return string(unicode.ToUpper(r)) +
		"v" + validade.Format("0201") +
		"c" + compra.Format("0201") +
		"vr" + infra.FormatarPreco(preco)
}

func (s *estoqueService) Listar(ctx context.Context) ([]dto.LoteResponse, error) {
	hoje := s.agora()
	chave := chaveCacheEstoque(hoje)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, chave).Bytes(); err == nil {
			var resp []dto.LoteResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return resp, nil
			}
		}
	}

	lotes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var proximos, demais []model.Lote
	for _, l := range lotes {
		if ProximoDoVencimento(l, hoje) {
			proximos = append(proximos, l)
		} else {
			demais = append(demais, l)
		}
	}
	sort.SliceStable(proximos, func(i, j int) bool {
		return proximos[i].DataValidade.Before(proximos[j].DataValidade)
	})
	col := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(demais, func(i, j int) bool {
		return col.CompareString(demais[i].Nome, demais[j].Nome) < 0
	})

	resp := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range append(proximos, demais...) {
		dias := DiasRestantes(l.DataValidade, hoje)
		resp = append(resp, dto.LoteResponse{
			ID:            l.ID,
			Nome:          l.Nome,
			Quantidade:    l.Quantidade,
			DataCompra:    FormatarData(l.DataCompra),
			DataValidade:  FormatarData(l.DataValidade),
			Preco:         infra.FormatarPreco(l.Preco),
			Codigo:        l.Codigo,
			DiasRestantes: dias,
			Expirando:     dias <= LimiteValidadeDias,
		})
	}

	// Populate cache; errors are ignored
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), chave, b, estoqueCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *estoqueService) ProximosDoVencimento(ctx context.Context) ([]model.Lote, error) {
	lotes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	hoje := s.agora()
	proximos := make([]model.Lote, 0)
	for _, l := range lotes {
		if ProximoDoVencimento(l, hoje) {
			proximos = append(proximos, l)
		}
	}
	sort.SliceStable(proximos, func(i, j int) bool {
		return proximos[i].DataValidade.Before(proximos[j].DataValidade)
	})
	return proximos, nil
}

// chaveCacheEstoque keys the cached listing by the business date, since
// dias_restantes and expirando change at local midnight.
func chaveCacheEstoque(hoje time.Time) string {
	return estoqueCacheKey + ":" + hoje.Format(formatoData)
}

// InvalidarCache drops today's cached listing. Best effort.
func (s *estoqueService) InvalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, chaveCacheEstoque(s.agora())).Err(); err != nil {
		log.Warn().Err(err).Msg("falha ao invalidar cache do estoque")
	}
}
