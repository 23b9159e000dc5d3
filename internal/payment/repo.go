package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/trendwear/storefront/internal/types/payment"
)

type PaymentRepository interface {
	// RecordPayment persists the record and confirms the order atomically.
	RecordPayment(ctx context.Context, p *payment.Payment) error
	FindPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error)
}
