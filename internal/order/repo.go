package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/trendwear/storefront/internal/types/order"
	"github.com/trendwear/storefront/internal/types/product"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, o *order.Order) error
	FindOrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) error
}

type ProductRepository interface {
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error)
}

type CartRepository interface {
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
