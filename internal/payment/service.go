package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendwear/storefront/internal/storage"
	"github.com/trendwear/storefront/internal/types/payment"
)

var (
	ErrValidation        = errors.New("missing required fields")
	ErrSignatureMismatch = errors.New("invalid payment signature")
	ErrDuplicatePayment  = errors.New("payment already recorded for this order or payment id")
	ErrNotFound          = errors.New("payment not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrGateway           = errors.New("gateway error")
)

type Service struct {
	repo      PaymentRepository
	gateway   Gateway
	keySecret string
	currency  string
}

func NewService(repo PaymentRepository, gateway Gateway, keySecret, currency string) *Service {
	return &Service{repo: repo, gateway: gateway, keySecret: keySecret, currency: currency}
}

// InitiateOrder creates the remote gateway order sized in minor currency
// units (amount x 100, rounded to the nearest integer).
func (s *Service) InitiateOrder(ctx context.Context, amount decimal.Decimal, userID, orderID uuid.UUID) (*GatewayOrder, error) {
	if !amount.IsPositive() || userID == uuid.Nil || orderID == uuid.Nil {
		return nil, ErrValidation
	}
	minor := amount.Shift(2).Round(0).IntPart()
	gw, err := s.gateway.CreateOrder(ctx, minor, s.currency, "receipt_"+orderID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGateway, err)
	}
	return gw, nil
}

// VerifyAndRecord authenticates the gateway callback, persists the audit
// record and confirms the order. A signature mismatch persists nothing.
func (s *Service) VerifyAndRecord(
	ctx context.Context,
	gatewayOrderID, gatewayPaymentID, gatewaySignature string,
	userID, orderID uuid.UUID,
	amountPaid decimal.Decimal,
) (*payment.Payment, error) {
	if gatewayOrderID == "" || gatewayPaymentID == "" || gatewaySignature == "" {
		return nil, ErrValidation
	}
	if orderID == uuid.Nil {
		return nil, ErrValidation
	}
	if !VerifySignature(s.keySecret, gatewayOrderID, gatewayPaymentID, gatewaySignature) {
		return nil, ErrSignatureMismatch
	}

	p := &payment.Payment{
		ID:               uuid.New(),
		OrderID:          orderID,
		UserID:           userID,
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: gatewayPaymentID,
		GatewaySignature: gatewaySignature,
		AmountPaid:       amountPaid,
		Currency:         s.currency,
		Status:           payment.StatusSuccess,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.RecordPayment(ctx, p); err != nil {
		if errors.Is(err, storage.ErrDuplicatePayment) {
			return nil, ErrDuplicatePayment
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) PaymentStatus(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	p, err := s.repo.FindPaymentByOrderID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
