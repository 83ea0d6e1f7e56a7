package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/model"
	"storefront/internal/repository"
)

var (
	// ErrEmptyOrder is returned when an order has no items.
	ErrEmptyOrder = errors.New("order has no items")
	// ErrUnknownProduct is returned when an order references a product
	// that does not exist.
	ErrUnknownProduct = errors.New("unknown product in order")
)

// OrderLine is one requested order line.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// OrderService places orders, pricing each line at order time.
type OrderService interface {
	Place(ctx context.Context, userID uint, lines []OrderLine) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
}

type orderService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewOrderService creates a new order service.
func NewOrderService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) OrderService {
	return &orderService{productRepo: productRepo, orderRepo: orderRepo}
}

func (s *orderService) Place(ctx context.Context, userID uint, lines []OrderLine) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	byID := make(map[uint]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	order := &model.Order{UserID: userID, Total: decimal.Zero}
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			return nil, ErrUnknownProduct
		}
		if l.Quantity < 1 {
			return nil, ErrEmptyOrder
		}
		order.Items = append(order.Items, model.OrderItem{
			ProductID: p.ID,
			Quantity:  l.Quantity,
			UnitPrice: p.Price,
		})
		order.Total = order.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}
