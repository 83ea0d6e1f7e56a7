package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// CatalogService exposes the product catalog.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	// SeedIfEmpty loads the built-in demo catalog when the table is empty.
	SeedIfEmpty(ctx context.Context) error
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogService) SeedIfEmpty(ctx context.Context) error {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.productRepo.CreateBatch(ctx, demoCatalog())
}

func demoCatalog() []model.Product {
	return []model.Product{
		{
			Name:         "Wireless Mouse",
			Price:        decimal.NewFromInt(20),
			Category:     "Accessories",
			ImageURL:     "https://images.storefront.dev/mouse.png",
			Description:  "Compact 2.4GHz wireless mouse.",
			Manufacturer: "Logi Labs",
			Distributor:  "TechSupply Co.",
		},
		{
			Name:         "Mechanical Keyboard",
			Price:        decimal.NewFromInt(50),
			Category:     "Accessories",
			ImageURL:     "https://images.storefront.dev/keyboard.png",
			Description:  "Tenkeyless mechanical keyboard with brown switches.",
			Manufacturer: "KeyWorks",
			Distributor:  "TechSupply Co.",
		},
		{
			Name:         "Adventure Quest",
			Price:        decimal.NewFromInt(60),
			Category:     "Games",
			ImageURL:     "https://images.storefront.dev/adventure-quest.png",
			Description:  "Open-world adventure game.",
			Manufacturer: "PixelForge Studios",
			Distributor:  "GameHub Distribution",
		},
		{
			Name:         "USB-C Hub",
			Price:        decimal.NewFromFloat(34.99),
			Category:     "Accessories",
			ImageURL:     "https://images.storefront.dev/usbc-hub.png",
			Description:  "7-in-1 USB-C hub with HDMI and card reader.",
			Manufacturer: "PortMax",
			Distributor:  "TechSupply Co.",
		},
		{
			Name:         "Space Raiders",
			Price:        decimal.NewFromFloat(45.5),
			Category:     "Games",
			ImageURL:     "https://images.storefront.dev/space-raiders.png",
			Description:  "Co-op space shooter.",
			Manufacturer: "PixelForge Studios",
			Distributor:  "GameHub Distribution",
		},
	}
}
