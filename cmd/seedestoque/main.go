// cmd/seedestoque registers one lot for every item of both basket catalogs so a
// fresh database can assemble baskets right away.
// Uso: go run ./cmd/seedestoque --quantidade 10 --validade-dias 60
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"estoquecestas/internal/config"
	"estoquecestas/internal/dto"
	"estoquecestas/internal/infra"
	"estoquecestas/internal/model"
	"estoquecestas/internal/repository"
	"estoquecestas/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	quantidade   int
	validadeDias int
	preco        string
)

var rootCmd = &cobra.Command{
	Use:   "seedestoque",
	Short: "Cadastra um lote para cada item das cestas pequena e grande",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.Flags().IntVar(&quantidade, "quantidade", 5, "unidades por lote")
	rootCmd.Flags().IntVar(&validadeDias, "validade-dias", 90, "dias até o vencimento, contados a partir de hoje")
	rootCmd.Flags().StringVar(&preco, "preco", "5.00", "preço unitário de cada lote")
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	p, err := decimal.NewFromString(preco)
	if err != nil {
		return fmt.Errorf("--preco: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return err
	}

	agora := service.RelogioPadrao(loc)
	estoque := service.NewEstoqueService(repository.NewLoteRepository(db), nil, agora)

	hoje := agora()
	ctx := context.Background()
	cadastrados := 0
	for _, nome := range nomesDosCatalogos() {
		_, err := estoque.Registrar(ctx, dto.CadastrarProdutoRequest{
			Nome:         nome,
			Quantidade:   &quantidade,
			DataCompra:   hoje.Format("2006-01-02"),
			DataValidade: hoje.AddDate(0, 0, validadeDias).Format("2006-01-02"),
			Preco:        &p,
		})
		if err != nil {
			return fmt.Errorf("cadastrar %s: %w", nome, err)
		}
		cadastrados++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d lotes cadastrados em %s\n", cadastrados, cfg.DatabaseURL)
	return nil
}

// nomesDosCatalogos merges both catalogs, keeping first-seen order.
func nomesDosCatalogos() []string {
	visto := make(map[string]bool)
	var nomes []string
	for _, tipo := range []model.TipoCesta{model.CestaGrande, model.CestaPequena} {
		itens, _ := service.ItensNecessarios(tipo)
		for _, n := range itens {
			if !visto[n] {
				visto[n] = true
				nomes = append(nomes, n)
			}
		}
	}
	return nomes
}
