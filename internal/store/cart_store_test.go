package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
)

func newCartFixture(t *testing.T) (*Store, context.Context) {
	t.Helper()
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Products().ReplaceAll(ctx, catalog()))
	return s, ctx
}

func TestAddToEmptyCart(t *testing.T) {
	s, ctx := newCartFixture(t)

	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))

	item, err := s.Cart().Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, uint(1), item.ProductID)
	assert.Equal(t, 1, item.Quantity)

	details, err := s.Cart().Details(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
}

func TestAddTwiceAccumulates(t *testing.T) {
	s, ctx := newCartFixture(t)

	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))
	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))

	item, err := s.Cart().Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 2, item.Quantity)
}

func TestIncrementAbsentIsNoop(t *testing.T) {
	s, ctx := newCartFixture(t)

	require.NoError(t, s.Cart().Increment(ctx, 1))

	item, err := s.Cart().Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestDecrementRemovesAtOne(t *testing.T) {
	s, ctx := newCartFixture(t)

	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))
	require.NoError(t, s.Cart().Decrement(ctx, 1))

	// The row is gone entirely; quantity zero is never stored.
	item, err := s.Cart().Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, item)

	details, err := s.Cart().Details(ctx)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestDecrementLowersQuantity(t *testing.T) {
	s, ctx := newCartFixture(t)

	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))
	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))
	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))
	require.NoError(t, s.Cart().Decrement(ctx, 1))

	item, err := s.Cart().Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 2, item.Quantity)
}

func TestDecrementAbsentIsNoop(t *testing.T) {
	s, ctx := newCartFixture(t)

	require.NoError(t, s.Cart().AddOrIncrement(ctx, 2))
	require.NoError(t, s.Cart().Decrement(ctx, 1))

	// Untouched rows stay as they were.
	item, err := s.Cart().Get(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 1, item.Quantity)
}

func TestDetailsJoinsProducts(t *testing.T) {
	s, ctx := newCartFixture(t)

	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))
	require.NoError(t, s.Cart().AddOrIncrement(ctx, 2))
	require.NoError(t, s.Cart().Decrement(ctx, 1))

	details, err := s.Cart().Details(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, uint(2), details[0].ProductID)
	assert.Equal(t, 1, details[0].Quantity)
	assert.Equal(t, "Keyboard", details[0].Name)
	assert.True(t, details[0].Price.Equal(decimal.NewFromInt(50)), "price %s", details[0].Price)
}

func TestProductRefreshCascadesIntoCart(t *testing.T) {
	s, ctx := newCartFixture(t)

	require.NoError(t, s.Cart().AddOrIncrement(ctx, 3))

	// Product 3 disappears from the next refresh; its cart row must go too.
	fresh := []model.Product{
		{ID: 1, Name: "Mouse", Price: decimal.NewFromInt(20), Category: "Accessories"},
	}
	require.NoError(t, s.Products().ReplaceAll(ctx, fresh))

	item, err := s.Cart().Get(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestClearCart(t *testing.T) {
	s, ctx := newCartFixture(t)

	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))
	require.NoError(t, s.Cart().AddOrIncrement(ctx, 2))
	require.NoError(t, s.Cart().Clear(ctx))

	details, err := s.Cart().Details(ctx)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestObserveDetailsEmitsOnCartChange(t *testing.T) {
	s, ctx := newCartFixture(t)
	obsCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := s.Cart().ObserveDetails(obsCtx)
	assert.Empty(t, recvStore(t, ch))

	require.NoError(t, s.Cart().AddOrIncrement(ctx, 1))
	details := recvStore(t, ch)
	require.Len(t, details, 1)
	assert.Equal(t, uint(1), details[0].ProductID)
}
