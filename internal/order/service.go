package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendwear/storefront/internal/types/order"
)

var (
	ErrValidation    = errors.New("missing required fields")
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid status value")
)

type Service struct {
	orders      OrderRepository
	products    ProductRepository
	carts       CartRepository
	deliveryFee decimal.Decimal
}

func NewService(orders OrderRepository, products ProductRepository, carts CartRepository, deliveryFee decimal.Decimal) *Service {
	return &Service{orders: orders, products: products, carts: carts, deliveryFee: deliveryFee}
}

// PlacedItem is the client's view of a line item: product, size and
// quantity. Prices come from the catalog, never from the client.
type PlacedItem struct {
	ProductID uuid.UUID `json:"productId"`
	Size      string    `json:"size"`
	Quantity  int64     `json:"quantity"`
}

// PlaceOrder creates the order with server-side priced line items and
// clears the shopper's cart. The cart wipe is unconditional; if a later
// step fails the order persists and the cart stays empty.
func (s *Service) PlaceOrder(
	ctx context.Context,
	userID uuid.UUID,
	items []PlacedItem,
	addr order.Address,
	method order.PaymentMethod,
) (*order.Order, error) {
	if userID == uuid.Nil || len(items) == 0 {
		return nil, ErrValidation
	}
	if addr == (order.Address{}) {
		return nil, ErrValidation
	}
	for _, it := range items {
		if it.ProductID == uuid.Nil || it.Quantity <= 0 {
			return nil, ErrValidation
		}
	}

	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	catalog, err := s.products.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	amount := s.deliveryFee
	lineItems := make([]order.LineItem, 0, len(items))
	for _, it := range items {
		p, ok := catalog[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown product %s", ErrValidation, it.ProductID)
		}
		lineItems = append(lineItems, order.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Price:     p.Price,
		})
		amount = amount.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	o := &order.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Items:         lineItems,
		Address:       addr,
		Amount:        amount,
		PaymentMethod: method,
		Payment:       false,
		Status:        order.StatusPlaced,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.orders.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Best-effort sequence: the order is already persisted, a failed wipe
	// surfaces as an error without rolling it back.
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	return o, nil
}

func (s *Service) OrderStatus(ctx context.Context, id uuid.UUID) (order.OrderStatus, error) {
	o, err := s.orders.FindOrderByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return o.Status, nil
}

// TransitionStatus validates the vocabulary and applies the new status.
// The transition graph is deliberately open: any status is reachable from
// any other.
func (s *Service) TransitionStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) (*order.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.orders.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	o, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	return s.orders.ListOrdersByUser(ctx, userID)
}
