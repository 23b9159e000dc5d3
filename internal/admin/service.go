// Package admin builds the enriched order views the back-office reads.
package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendwear/storefront/internal/types/order"
	"github.com/trendwear/storefront/internal/types/product"
	"github.com/trendwear/storefront/internal/types/user"
)

var ErrNotFound = errors.New("order not found")

const (
	defaultLimit = 10
	maxLimit     = 100
)

type OrderRepository interface {
	FindOrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	CountOrders(ctx context.Context, f order.Filter) (int64, error)
	ListOrders(ctx context.Context, f order.Filter) ([]order.Order, error)
}

type UserRepository interface {
	FindUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.User, error)
}

type ProductRepository interface {
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error)
}

type Service struct {
	orders   OrderRepository
	users    UserRepository
	products ProductRepository
}

func NewService(orders OrderRepository, users UserRepository, products ProductRepository) *Service {
	return &Service{orders: orders, users: users, products: products}
}

// ProductDetails is the catalog snapshot joined onto a line item. A
// missing catalog record degrades to the Message placeholder instead of
// failing the request.
type ProductDetails struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	SubCategory string           `json:"subCategory,omitempty"`
	Image       string           `json:"image,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Sizes       []string         `json:"sizes,omitempty"`
	Message     string           `json:"message,omitempty"`
}

type EnrichedItem struct {
	order.LineItem
	ProductDetails ProductDetails `json:"productDetails"`
}

type Customer struct {
	UserID  uuid.UUID `json:"userId,omitempty"`
	Name    string    `json:"name,omitempty"`
	Email   string    `json:"email,omitempty"`
	Message string    `json:"message,omitempty"`
}

type EnrichedOrder struct {
	OrderID         uuid.UUID           `json:"orderId"`
	OrderDate       time.Time           `json:"orderDate"`
	Status          order.OrderStatus   `json:"status"`
	Amount          decimal.Decimal     `json:"amount"`
	PaymentMethod   order.PaymentMethod `json:"paymentMethod"`
	PaymentStatus   string              `json:"paymentStatus"`
	ShippingAddress order.Address       `json:"shippingAddress"`
	Items           []EnrichedItem      `json:"items"`
	Customer        Customer            `json:"customer"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// ListOrders returns one page of orders, newest first, with user and
// product enrichment fetched in two batched queries.
func (s *Service) ListOrders(ctx context.Context, f order.Filter) (*Pagination, []EnrichedOrder, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	total, err := s.orders.CountOrders(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("count orders: %w", err)
	}
	orders, err := s.orders.ListOrders(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("list orders: %w", err)
	}

	enriched, err := s.enrich(ctx, orders, false)
	if err != nil {
		return nil, nil, err
	}

	p := &Pagination{
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
		Pages: (total + int64(f.Limit) - 1) / int64(f.Limit),
	}
	return p, enriched, nil
}

// OrderByID returns one order with the same enrichment as the listing,
// plus price and size metadata per item.
func (s *Service) OrderByID(ctx context.Context, id uuid.UUID) (*EnrichedOrder, error) {
	o, err := s.orders.FindOrderByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	enriched, err := s.enrich(ctx, []order.Order{*o}, true)
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// enrich joins user profiles and catalog records onto the orders. Both
// lookups are batched by id set rather than issued per order and per
// item.
func (s *Service) enrich(ctx context.Context, orders []order.Order, detailed bool) ([]EnrichedOrder, error) {
	userIDs := make([]uuid.UUID, 0, len(orders))
	seenUsers := make(map[uuid.UUID]bool, len(orders))
	var productIDs []uuid.UUID
	seenProducts := map[uuid.UUID]bool{}
	for _, o := range orders {
		if !seenUsers[o.UserID] {
			seenUsers[o.UserID] = true
			userIDs = append(userIDs, o.UserID)
		}
		for _, it := range o.Items {
			if !seenProducts[it.ProductID] {
				seenProducts[it.ProductID] = true
				productIDs = append(productIDs, it.ProductID)
			}
		}
	}

	users, err := s.users.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	products, err := s.products.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	out := make([]EnrichedOrder, 0, len(orders))
	for _, o := range orders {
		eo := EnrichedOrder{
			OrderID:         o.ID,
			OrderDate:       o.CreatedAt,
			Status:          o.Status,
			Amount:          o.Amount,
			PaymentMethod:   o.PaymentMethod,
			PaymentStatus:   paymentStatus(o.Payment),
			ShippingAddress: o.Address,
			Items:           make([]EnrichedItem, 0, len(o.Items)),
		}

		if u, ok := users[o.UserID]; ok {
			eo.Customer = Customer{UserID: u.ID, Name: u.Name, Email: u.Email}
		} else {
			eo.Customer = Customer{Message: "User not found"}
		}

		for _, it := range o.Items {
			ei := EnrichedItem{LineItem: it}
			if p, ok := products[it.ProductID]; ok {
				ei.ProductDetails = ProductDetails{
					Name:        p.Name,
					Description: p.Description,
					Category:    p.Category,
					SubCategory: p.SubCategory,
					Image:       p.Image,
				}
				if detailed {
					price := p.Price
					ei.ProductDetails.Price = &price
					ei.ProductDetails.Sizes = p.Sizes
				}
			} else {
				ei.ProductDetails = ProductDetails{Message: "Product not found"}
			}
			eo.Items = append(eo.Items, ei)
		}

		out = append(out, eo)
	}
	return out, nil
}

func paymentStatus(paid bool) string {
	if paid {
		return "Paid"
	}
	return "Not Paid"
}
