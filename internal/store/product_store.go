package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/model"
)

// ProductStore is the catalog mirror. The product set is replaced wholesale
// on every successful refresh; there are no partial merges.
type ProductStore interface {
	// ReplaceAll atomically deletes every product and inserts the given
	// list. Readers never observe a mix of old and new catalogs.
	ReplaceAll(ctx context.Context, products []model.Product) error
	All(ctx context.Context) ([]model.Product, error)
	ByCategory(ctx context.Context, category string) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ObserveAll(ctx context.Context) <-chan []model.Product
	ObserveByCategory(ctx context.Context, category string) <-chan []model.Product
	ObserveCategories(ctx context.Context) <-chan []string
}

type productStore struct {
	store *Store
}

func (p *productStore) ReplaceAll(ctx context.Context, products []model.Product) error {
	err := p.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		return tx.Create(&products).Error
	})
	if err != nil {
		return fmt.Errorf("replace products: %w", err)
	}
	// Deleting products cascades into cart rows, so both tables changed.
	p.store.productsChanged.Notify()
	p.store.cartChanged.Notify()
	return nil
}

func (p *productStore) All(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := p.store.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productStore) ByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var products []model.Product
	if err := p.store.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productStore) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := p.store.db.WithContext(ctx).
		Model(&model.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (p *productStore) ObserveAll(ctx context.Context) <-chan []model.Product {
	return observe(ctx, p.store, p.store.productsChanged, p.All)
}

func (p *productStore) ObserveByCategory(ctx context.Context, category string) <-chan []model.Product {
	return observe(ctx, p.store, p.store.productsChanged, func(ctx context.Context) ([]model.Product, error) {
		return p.ByCategory(ctx, category)
	})
}

func (p *productStore) ObserveCategories(ctx context.Context) <-chan []string {
	return observe(ctx, p.store, p.store.productsChanged, p.Categories)
}
