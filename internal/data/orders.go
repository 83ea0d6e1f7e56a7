package data

import (
	"context"
	"fmt"

	"storefront/internal/api"
	apperrors "storefront/internal/errors"
)

// PlaceOrder submits the current cart as an order and clears the cart on
// success. An empty cart fails with ErrEmptyCart without touching the server.
func (r *Repository) PlaceOrder(ctx context.Context) (uint, error) {
	details, err := r.cart.Details(ctx)
	if err != nil {
		return 0, fmt.Errorf("read cart: %w", err)
	}
	if len(details) == 0 {
		return 0, apperrors.ErrEmptyCart
	}

	lines := make([]api.OrderLine, 0, len(details))
	for _, d := range details {
		lines = append(lines, api.OrderLine{ProductID: d.ProductID, Quantity: d.Quantity})
	}

	orderID, err := r.remote.PlaceOrder(ctx, lines)
	if err != nil {
		return 0, err
	}

	if err := r.cart.Clear(ctx); err != nil {
		// The order went through; a stale cart is recoverable, so report it
		// without failing the operation.
		r.log.Error().Err(err).Uint("order_id", orderID).Msg("order placed but cart clear failed")
	}
	return orderID, nil
}
