package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"estoquecestas/internal/dto"
	"estoquecestas/internal/infra"
	"estoquecestas/internal/model"
	"estoquecestas/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrReciboNaoEncontrado = errors.New("recibo não encontrado")

// HistoricoService records assembled baskets and serves the purchase history.
type HistoricoService interface {
	// RegistrarTx writes the receipt file and persists the basket and its
	// lines inside tx. The receipt directory is created when missing.
	RegistrarTx(tx *gorm.DB, tipo model.TipoCesta, itens []model.ItemCesta, total decimal.Decimal, momento time.Time) (*model.Cesta, error)
	Listar(ctx context.Context) (dto.HistoricoResponse, error)
	ItensDe(ctx context.Context, cestaID uint) ([]dto.ItemCestaResponse, error)
	// ObterRecibo resolves a receipt file name to its path on disk.
	ObterRecibo(nomeArquivo string) (string, error)
	// DescartarRecibo removes a receipt whose basket was not committed.
	DescartarRecibo(nomeArquivo string)
}

type historicoService struct {
	repo  repository.HistoricoRepository
	dir   string
	agora Relogio
}

func NewHistoricoService(repo repository.HistoricoRepository, dir string, agora Relogio) HistoricoService {
	return &historicoService{repo: repo, dir: dir, agora: agora}
}

func (s *historicoService) RegistrarTx(tx *gorm.DB, tipo model.TipoCesta, itens []model.ItemCesta, total decimal.Decimal, momento time.Time) (*model.Cesta, error) {
	local := momento.In(s.agora().Location())
	nomeArquivo, err := infra.EscreverReciboTexto(s.dir, infra.NomeArquivoRecibo(local, tipo.Nome(), total), itens, total)
	if err != nil {
		return nil, err
	}

	cesta := &model.Cesta{
		NomeArquivo:  nomeArquivo,
		DataMontagem: momento.UTC(),
		PrecoTotal:   total,
		Tipo:         tipo.Nome(),
		Itens:        itens,
	}
	if err := s.repo.CreateTx(tx, cesta); err != nil {
		s.DescartarRecibo(nomeArquivo)
		return nil, fmt.Errorf("salvar histórico: %w", err)
	}
	return cesta, nil
}

func (s *historicoService) Listar(ctx context.Context) (dto.HistoricoResponse, error) {
	cestas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	loc := s.agora().Location()
	agrupado := make(dto.HistoricoResponse)
	for _, c := range cestas {
		montagem := c.DataMontagem.In(loc)
		chave := fmt.Sprintf("%d/%d", int(montagem.Month()), montagem.Year())
		agrupado[chave] = append(agrupado[chave], dto.CestaResponse{
			ID:           c.ID,
			NomeArquivo:  c.NomeArquivo,
			DataMontagem: montagem.Format(time.RFC3339),
			PrecoTotal:   c.PrecoTotal,
			Tipo:         c.Tipo,
		})
	}
	return agrupado, nil
}

func (s *historicoService) ItensDe(ctx context.Context, cestaID uint) ([]dto.ItemCestaResponse, error) {
	itens, err := s.repo.ListItens(ctx, cestaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ItemCestaResponse, 0, len(itens))
	for _, item := range itens {
		resp = append(resp, dto.ItemCestaResponse{
			Nome:          item.Nome,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			CodigoProduto: item.CodigoProduto,
		})
	}
	return resp, nil
}

func (s *historicoService) ObterRecibo(nomeArquivo string) (string, error) {
	if nomeArquivo == "" || filepath.Base(nomeArquivo) != nomeArquivo || strings.HasPrefix(nomeArquivo, ".") {
		return "", ErrReciboNaoEncontrado
	}
	if ext := filepath.Ext(nomeArquivo); ext != ".txt" && ext != ".pdf" {
		return "", ErrReciboNaoEncontrado
	}
	path := filepath.Join(s.dir, nomeArquivo)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrReciboNaoEncontrado
	}
	return path, nil
}

func (s *historicoService) DescartarRecibo(nomeArquivo string) {
	if err := os.Remove(filepath.Join(s.dir, nomeArquivo)); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("arquivo", nomeArquivo).Msg("falha ao remover recibo órfão")
	}
}
