package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/model"
)

// CartStore is the on-device cart: one row per product, quantity always >= 1.
// Mutations are single atomic statements so concurrent adds cannot lose an
// increment.
type CartStore interface {
	Get(ctx context.Context, productID uint) (*model.CartItem, error)
	// AddOrIncrement inserts the product with quantity 1, or bumps the
	// existing row's quantity by one, in a single statement.
	AddOrIncrement(ctx context.Context, productID uint) error
	// Increment bumps quantity by one if the row exists; absent rows are
	// left absent.
	Increment(ctx context.Context, productID uint) error
	// Decrement lowers quantity by one, deleting the row when it would
	// reach zero. Absent rows are a no-op.
	Decrement(ctx context.Context, productID uint) error
	Delete(ctx context.Context, productID uint) error
	Clear(ctx context.Context) error
	Details(ctx context.Context) ([]model.CartItemDetails, error)
	ObserveDetails(ctx context.Context) <-chan []model.CartItemDetails
}

type cartStore struct {
	store *Store
}

func (c *cartStore) Get(ctx context.Context, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := c.store.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *cartStore) AddOrIncrement(ctx context.Context, productID uint) error {
	err := c.store.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + 1")}),
		}).
		Create(&model.CartItem{ProductID: productID, Quantity: 1}).Error
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	c.store.cartChanged.Notify()
	return nil
}

func (c *cartStore) Increment(ctx context.Context, productID uint) error {
	res := c.store.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + 1"))
	if res.Error != nil {
		return fmt.Errorf("increment cart item: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		c.store.cartChanged.Notify()
	}
	return nil
}

func (c *cartStore) Decrement(ctx context.Context, productID uint) error {
	changed := false
	err := c.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CartItem{}).
			Where("product_id = ? AND quantity > 1", productID).
			Update("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			changed = true
			return nil
		}
		del := tx.Where("product_id = ?", productID).Delete(&model.CartItem{})
		if del.Error != nil {
			return del.Error
		}
		changed = del.RowsAffected > 0
		return nil
	})
	if err != nil {
		return fmt.Errorf("decrement cart item: %w", err)
	}
	if changed {
		c.store.cartChanged.Notify()
	}
	return nil
}

func (c *cartStore) Delete(ctx context.Context, productID uint) error {
	res := c.store.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("remove cart item: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		c.store.cartChanged.Notify()
	}
	return nil
}

func (c *cartStore) Clear(ctx context.Context) error {
	if err := c.store.db.WithContext(ctx).Where("1 = 1").Delete(&model.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	c.store.cartChanged.Notify()
	return nil
}

// Details joins the cart with the product table. The join is recomputed on
// every read so it can never go stale relative to either source table.
func (c *cartStore) Details(ctx context.Context) ([]model.CartItemDetails, error) {
	var details []model.CartItemDetails
	err := c.store.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.product_id, cart_items.quantity, products.name, products.price, products.image_url").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Order("cart_items.product_id").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (c *cartStore) ObserveDetails(ctx context.Context) <-chan []model.CartItemDetails {
	return observe(ctx, c.store, c.store.cartChanged, c.Details)
}
