package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	StatusSuccess PaymentStatus = "success"
	StatusFailed  PaymentStatus = "failed"
)

// Payment is the append-only audit record of a verified gateway payment,
// tied 1:1 to an order. Never updated after creation.
type Payment struct {
	ID               uuid.UUID       `db:"id" json:"paymentId"`
	OrderID          uuid.UUID       `db:"order_id" json:"orderId"`
	UserID           uuid.UUID       `db:"user_id" json:"userId"`
	GatewayOrderID   string          `db:"gateway_order_id" json:"razorpayOrderId"`
	GatewayPaymentID string          `db:"gateway_payment_id" json:"razorpayPaymentId"`
	GatewaySignature string          `db:"gateway_signature" json:"-"`
	AmountPaid       decimal.Decimal `db:"amount_paid" json:"amountPaid"`
	Currency         string          `db:"currency" json:"currency"`
	Status           PaymentStatus   `db:"status" json:"status"`
	CreatedAt        time.Time       `db:"created_at" json:"timestamp"`
}
