package order

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendwear/storefront/internal/types/order"
	"github.com/trendwear/storefront/internal/types/product"
)

type mockRepo struct {
	createOrderFn       func(ctx context.Context, o *order.Order) error
	findOrderByIDFn     func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	listOrdersByUserFn  func(ctx context.Context, userID uuid.UUID) ([]order.Order, error)
	updateOrderStatusFn func(ctx context.Context, id uuid.UUID, status order.OrderStatus) error
}

func (m *mockRepo) CreateOrder(ctx context.Context, o *order.Order) error {
	return m.createOrderFn(ctx, o)
}
func (m *mockRepo) FindOrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.findOrderByIDFn(ctx, id)
}
func (m *mockRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	return m.listOrdersByUserFn(ctx, userID)
}
func (m *mockRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) error {
	return m.updateOrderStatusFn(ctx, id, status)
}

type mockProducts struct {
	findProductsByIDsFn func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error)
}

func (m *mockProducts) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error) {
	return m.findProductsByIDsFn(ctx, ids)
}

type mockCarts struct {
	clearCartFn func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockCarts) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return m.clearCartFn(ctx, userID)
}

var testAddress = order.Address{
	Name:    "Jamie Fox",
	Street:  "12 Main St",
	City:    "Pune",
	State:   "MH",
	Zipcode: "411001",
	Country: "IN",
	Phone:   "9999999999",
}

func TestPlaceOrderComputesAmount(t *testing.T) {
	shirtID := uuid.New()
	jeansID := uuid.New()
	catalog := map[uuid.UUID]product.Product{
		shirtID: {ID: shirtID, Name: "Shirt", Image: "shirt.png", Price: decimal.NewFromInt(500)},
		jeansID: {ID: jeansID, Name: "Jeans", Image: "jeans.png", Price: decimal.NewFromInt(300)},
	}

	var created *order.Order
	var cartCleared bool
	repo := &mockRepo{
		createOrderFn: func(ctx context.Context, o *order.Order) error {
			created = o
			return nil
		},
	}
	products := &mockProducts{
		findProductsByIDsFn: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error) {
			return catalog, nil
		},
	}
	carts := &mockCarts{
		clearCartFn: func(ctx context.Context, userID uuid.UUID) error {
			cartCleared = true
			return nil
		},
	}
	svc := NewService(repo, products, carts, decimal.NewFromInt(40))

	userID := uuid.New()
	o, err := svc.PlaceOrder(context.Background(), userID, []PlacedItem{
		{ProductID: shirtID, Size: "M", Quantity: 1},
		{ProductID: jeansID, Size: "32", Quantity: 1},
	}, testAddress, order.MethodCOD)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, o.Amount.Equal(decimal.NewFromInt(840)), "want 500+300+40=840, got %s", o.Amount)
	assert.Equal(t, order.StatusPlaced, o.Status)
	assert.Equal(t, order.MethodCOD, o.PaymentMethod)
	assert.False(t, o.Payment)
	assert.Equal(t, userID, o.UserID)
	assert.True(t, cartCleared)

	// prices and display fields come from the catalog, not the client
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Shirt", o.Items[0].Name)
	assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "M", o.Items[0].Size)
}

func TestPlaceOrderQuantityMultiplies(t *testing.T) {
	id := uuid.New()
	repo := &mockRepo{
		createOrderFn: func(ctx context.Context, o *order.Order) error { return nil },
	}
	products := &mockProducts{
		findProductsByIDsFn: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error) {
			return map[uuid.UUID]product.Product{
				id: {ID: id, Name: "Socks", Price: decimal.RequireFromString("99.50")},
			}, nil
		},
	}
	carts := &mockCarts{clearCartFn: func(ctx context.Context, userID uuid.UUID) error { return nil }}
	svc := NewService(repo, products, carts, decimal.NewFromInt(40))

	o, err := svc.PlaceOrder(context.Background(), uuid.New(), []PlacedItem{
		{ProductID: id, Size: "L", Quantity: 3},
	}, testAddress, order.MethodCOD)
	require.NoError(t, err)
	assert.True(t, o.Amount.Equal(decimal.RequireFromString("338.50")), "got %s", o.Amount)
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockProducts{}, &mockCarts{}, decimal.NewFromInt(40))
	_, err := svc.PlaceOrder(context.Background(), uuid.New(), nil, testAddress, order.MethodCOD)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderMissingAddress(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockProducts{}, &mockCarts{}, decimal.NewFromInt(40))
	_, err := svc.PlaceOrder(context.Background(), uuid.New(), []PlacedItem{
		{ProductID: uuid.New(), Size: "M", Quantity: 1},
	}, order.Address{}, order.MethodCOD)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderMissingUser(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockProducts{}, &mockCarts{}, decimal.NewFromInt(40))
	_, err := svc.PlaceOrder(context.Background(), uuid.Nil, []PlacedItem{
		{ProductID: uuid.New(), Size: "M", Quantity: 1},
	}, testAddress, order.MethodCOD)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderBadQuantity(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockProducts{}, &mockCarts{}, decimal.NewFromInt(40))
	_, err := svc.PlaceOrder(context.Background(), uuid.New(), []PlacedItem{
		{ProductID: uuid.New(), Size: "M", Quantity: 0},
	}, testAddress, order.MethodCOD)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	products := &mockProducts{
		findProductsByIDsFn: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error) {
			return map[uuid.UUID]product.Product{}, nil
		},
	}
	svc := NewService(&mockRepo{}, products, &mockCarts{}, decimal.NewFromInt(40))
	_, err := svc.PlaceOrder(context.Background(), uuid.New(), []PlacedItem{
		{ProductID: uuid.New(), Size: "M", Quantity: 1},
	}, testAddress, order.MethodCOD)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransitionStatusInvalid(t *testing.T) {
	var updateCalled bool
	repo := &mockRepo{
		updateOrderStatusFn: func(ctx context.Context, id uuid.UUID, status order.OrderStatus) error {
			updateCalled = true
			return nil
		},
	}
	svc := NewService(repo, &mockProducts{}, &mockCarts{}, decimal.NewFromInt(40))

	_, err := svc.TransitionStatus(context.Background(), uuid.New(), "On a Boat")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.False(t, updateCalled)
}

func TestTransitionStatusNotFound(t *testing.T) {
	repo := &mockRepo{
		updateOrderStatusFn: func(ctx context.Context, id uuid.UUID, status order.OrderStatus) error {
			return sql.ErrNoRows
		},
	}
	svc := NewService(repo, &mockProducts{}, &mockCarts{}, decimal.NewFromInt(40))

	_, err := svc.TransitionStatus(context.Background(), uuid.New(), order.StatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionStatus(t *testing.T) {
	id := uuid.New()
	repo := &mockRepo{
		updateOrderStatusFn: func(ctx context.Context, gotID uuid.UUID, status order.OrderStatus) error {
			assert.Equal(t, id, gotID)
			assert.Equal(t, order.StatusShipped, status)
			return nil
		},
		findOrderByIDFn: func(ctx context.Context, gotID uuid.UUID) (*order.Order, error) {
			return &order.Order{ID: gotID, Status: order.StatusShipped}, nil
		},
	}
	svc := NewService(repo, &mockProducts{}, &mockCarts{}, decimal.NewFromInt(40))

	o, err := svc.TransitionStatus(context.Background(), id, order.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, o.Status)
}

func TestOrderStatusNotFound(t *testing.T) {
	repo := &mockRepo{
		findOrderByIDFn: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewService(repo, &mockProducts{}, &mockCarts{}, decimal.NewFromInt(40))

	_, err := svc.OrderStatus(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUserOrders(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepo{
		listOrdersByUserFn: func(ctx context.Context, gotID uuid.UUID) ([]order.Order, error) {
			assert.Equal(t, userID, gotID)
			return []order.Order{{UserID: gotID}}, nil
		},
	}
	svc := NewService(repo, &mockProducts{}, &mockCarts{}, decimal.NewFromInt(40))

	orders, err := svc.ListUserOrders(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
}
