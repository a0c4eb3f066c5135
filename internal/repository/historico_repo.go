package repository

import (
	"context"

	"estoquecestas/internal/model"

	"gorm.io/gorm"
)

// HistoricoRepository stores assembled baskets and their line items.
type HistoricoRepository interface {
	// CreateTx inserts c together with c.Itens inside the caller's transaction.
	CreateTx(tx *gorm.DB, c *model.Cesta) error
	FindByID(ctx context.Context, id uint) (*model.Cesta, error)
	// List returns every basket, newest first.
	List(ctx context.Context) ([]model.Cesta, error)
	ListItens(ctx context.Context, cestaID uint) ([]model.ItemCesta, error)
}

type historicoRepo struct{ db *gorm.DB }

func NewHistoricoRepository(db *gorm.DB) HistoricoRepository { return &historicoRepo{db: db} }

func (r *historicoRepo) CreateTx(tx *gorm.DB, c *model.Cesta) error {
	return tx.Create(c).Error
}

func (r *historicoRepo) FindByID(ctx context.Context, id uint) (*model.Cesta, error) {
	var c model.Cesta
	err := r.db.WithContext(ctx).
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&c, id).Error
	return &c, err
}

func (r *historicoRepo) List(ctx context.Context) ([]model.Cesta, error) {
	cestas := make([]model.Cesta, 0)
	err := r.db.WithContext(ctx).
		Order("data_montagem DESC").Order("id DESC").
		Find(&cestas).Error
	return cestas, err
}

func (r *historicoRepo) ListItens(ctx context.Context, cestaID uint) ([]model.ItemCesta, error) {
	itens := make([]model.ItemCesta, 0)
	err := r.db.WithContext(ctx).
		Where("id_cesta = ?", cestaID).
		Order("id ASC").
		Find(&itens).Error
	return itens, err
}
