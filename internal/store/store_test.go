package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func catalog() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Mouse", Price: decimal.NewFromInt(20), Category: "Accessories", ImageURL: "img/mouse.png"},
		{ID: 2, Name: "Keyboard", Price: decimal.NewFromInt(50), Category: "Accessories", ImageURL: "img/keyboard.png"},
		{ID: 3, Name: "Game", Price: decimal.NewFromInt(60), Category: "Games", ImageURL: "img/game.png"},
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.db")

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Products().ReplaceAll(ctx, catalog()))

	// Re-opening at the same schema version must keep the data.
	s2, err := Open(path, zerolog.Nop())
	require.NoError(t, err)

	products, err := s2.Products().All(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
}
