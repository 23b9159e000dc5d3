package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPlaced          OrderStatus = "Order Placed"
	StatusProcessing      OrderStatus = "Processing"
	StatusShipped         OrderStatus = "Shipped"
	StatusOutForDelivery  OrderStatus = "Out for Delivery"
	StatusDelivered       OrderStatus = "Delivered"
	StatusCancelled       OrderStatus = "Cancelled"
	StatusRefundInitiated OrderStatus = "Refund Initiated"
	StatusRefunded        OrderStatus = "Refunded"
)

// ValidStatuses is the closed status vocabulary. Transitions between
// statuses are deliberately unconstrained; only membership is checked.
func ValidStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPlaced,
		StatusProcessing,
		StatusShipped,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
		StatusRefundInitiated,
		StatusRefunded,
	}
}

func (s OrderStatus) Valid() bool {
	for _, v := range ValidStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	MethodCOD     PaymentMethod = "COD"
	MethodGateway PaymentMethod = "razorpay"
)

// LineItem captures the catalog price and display fields at order
// creation time. Items are immutable once the order exists.
type LineItem struct {
	ProductID uuid.UUID       `db:"product_id" json:"productId"`
	Name      string          `db:"name" json:"name"`
	Image     string          `db:"image" json:"image"`
	Size      string          `db:"size" json:"size"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
}

type Address struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

type Order struct {
	ID            uuid.UUID       `db:"id" json:"orderId"`
	UserID        uuid.UUID       `db:"user_id" json:"userId"`
	Items         []LineItem      `db:"-" json:"items"`
	Address       Address         `db:"address" json:"address"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"paymentMethod"`
	Payment       bool            `db:"payment" json:"payment"`
	Status        OrderStatus     `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"date"`
}

// Filter narrows admin order listings. Nil fields match everything.
type Filter struct {
	UserID *uuid.UUID
	Status *OrderStatus
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}
