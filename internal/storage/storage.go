package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/trendwear/storefront/internal/types/order"
	"github.com/trendwear/storefront/internal/types/payment"
	"github.com/trendwear/storefront/internal/types/product"
	"github.com/trendwear/storefront/internal/types/user"
)

// ErrDuplicatePayment is returned when a payment for the order or the
// gateway payment id already exists. The unique constraints are the
// concurrency guard against replayed gateway callbacks.
var ErrDuplicatePayment = errors.New("duplicate payment")

// OrderRepository owns order rows and their line items.
type OrderRepository interface {
	CreateOrder(ctx context.Context, o *order.Order) error
	FindOrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) error
	CountOrders(ctx context.Context, f order.Filter) (int64, error)
	ListOrders(ctx context.Context, f order.Filter) ([]order.Order, error)
}

// PaymentRepository persists verified gateway payments.
type PaymentRepository interface {
	// RecordPayment inserts the payment and flips the order's payment
	// flag in one transaction keyed by the order id.
	RecordPayment(ctx context.Context, p *payment.Payment) error
	FindPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error)
}

// ProductRepository reads the catalog collaborator's records.
type ProductRepository interface {
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error)
}

// UserRepository reads public profiles from the account collaborator.
type UserRepository interface {
	FindUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.User, error)
}

// CartRepository owns the per-user cart.
type CartRepository interface {
	GetCart(ctx context.Context, userID uuid.UUID) (user.Cart, error)
	AddCartItem(ctx context.Context, userID, productID uuid.UUID, size string) error
	SetCartQuantity(ctx context.Context, userID, productID uuid.UUID, size string, quantity int64) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

// Storage combines all repositories.
type Storage interface {
	OrderRepository
	PaymentRepository
	ProductRepository
	UserRepository
	CartRepository

	// connection management
	Ping(ctx context.Context) error
	Close() error
}
