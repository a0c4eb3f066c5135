package repository

import (
	"context"
	"errors"
	"fmt"

	"estoquecestas/internal/model"

	"gorm.io/gorm"
)

var (
	ErrLoteNaoEncontrado      = errors.New("lote não encontrado")
	ErrQuantidadeInsuficiente = errors.New("quantidade insuficiente no lote")
)

// LoteRepository defines the data access contract for product lots.
// Services depend on this interface, not on the concrete GORM implementation.
type LoteRepository interface {
	Create(ctx context.Context, l *model.Lote) error
	FindByID(ctx context.Context, id uint) (*model.Lote, error)
	// FindByNomes returns every lot whose name is in nomes, earliest expiry first
	// (ties by id, i.e. insertion order).
	FindByNomes(ctx context.Context, nomes []string) ([]model.Lote, error)
	List(ctx context.Context) ([]model.Lote, error)

	// Consumir removes quantidade units from lot id; the row is deleted when it reaches zero.
	Consumir(ctx context.Context, id uint, quantidade int) error
	// ConsumirTx is Consumir inside a caller-owned transaction.
	ConsumirTx(tx *gorm.DB, id uint, quantidade int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) DB() *gorm.DB { return r.db }

func (r *loteRepo) Create(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *loteRepo) FindByID(ctx context.Context, id uint) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoteNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loteRepo) FindByNomes(ctx context.Context, nomes []string) ([]model.Lote, error) {
	lotes := make([]model.Lote, 0)
	if len(nomes) == 0 {
		return lotes, nil
	}
	err := r.db.WithContext(ctx).
		Where("nome IN ?", nomes).
		Order("data_validade ASC").Order("id ASC").
		Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) List(ctx context.Context) ([]model.Lote, error) {
	lotes := make([]model.Lote, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) Consumir(ctx context.Context, id uint, quantidade int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.ConsumirTx(tx, id, quantidade)
	})
}

func (r *loteRepo) ConsumirTx(tx *gorm.DB, id uint, quantidade int) error {
	if quantidade <= 0 {
		return fmt.Errorf("consumir lote %d: quantidade deve ser positiva, recebido %d", id, quantidade)
	}

	var l model.Lote
	err := tx.First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLoteNaoEncontrado
	}
	if err != nil {
		return err
	}
	if quantidade > l.Quantidade {
		return ErrQuantidadeInsuficiente
	}

	if quantidade == l.Quantidade {
		return tx.Delete(&model.Lote{}, id).Error
	}

	// The guard repeats the check so a concurrent writer cannot drive the row negative.
	res := tx.Model(&model.Lote{}).
		Where("id = ? AND quantidade >= ?", id, quantidade).
		Update("quantidade", gorm.Expr("quantidade - ?", quantidade))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuantidadeInsuficiente
	}
	return nil
}
