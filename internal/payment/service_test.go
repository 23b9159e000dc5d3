package payment

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/trendwear/storefront/internal/storage"
	"github.com/trendwear/storefront/internal/types/payment"
)

type mockRepo struct {
	recordPaymentFn        func(ctx context.Context, p *payment.Payment) error
	findPaymentByOrderIDFn func(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error)
}

func (m *mockRepo) RecordPayment(ctx context.Context, p *payment.Payment) error {
	return m.recordPaymentFn(ctx, p)
}
func (m *mockRepo) FindPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	return m.findPaymentByOrderIDFn(ctx, orderID)
}

type fakeGateway struct {
	createOrderFn func(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	return f.createOrderFn(ctx, amountMinor, currency, receipt)
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	var recorded bool
	repo := &mockRepo{
		recordPaymentFn: func(ctx context.Context, p *payment.Payment) error {
			recorded = true
			return nil
		},
	}
	svc := NewService(repo, nil, "topsecret", "INR")

	_, err := svc.VerifyAndRecord(context.Background(),
		"order_abc", "pay_def", "deadbeef",
		uuid.New(), uuid.New(), decimal.NewFromInt(840))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.False(t, recorded)
}

func TestVerifyRecordsPayment(t *testing.T) {
	var captured *payment.Payment
	repo := &mockRepo{
		recordPaymentFn: func(ctx context.Context, p *payment.Payment) error {
			captured = p
			return nil
		},
	}
	svc := NewService(repo, nil, "topsecret", "INR")

	userID := uuid.New()
	orderID := uuid.New()
	sig := sign("topsecret", "order_abc", "pay_def")
	p, err := svc.VerifyAndRecord(context.Background(),
		"order_abc", "pay_def", sig,
		userID, orderID, decimal.NewFromInt(840))
	assert.NoError(t, err)
	assert.NotNil(t, captured)
	assert.Equal(t, orderID, captured.OrderID)
	assert.Equal(t, userID, captured.UserID)
	assert.Equal(t, "pay_def", captured.GatewayPaymentID)
	assert.Equal(t, payment.StatusSuccess, captured.Status)
	assert.Equal(t, "INR", captured.Currency)
	assert.True(t, p.AmountPaid.Equal(decimal.NewFromInt(840)))
}

func TestVerifyDuplicatePayment(t *testing.T) {
	repo := &mockRepo{
		recordPaymentFn: func(ctx context.Context, p *payment.Payment) error {
			return storage.ErrDuplicatePayment
		},
	}
	svc := NewService(repo, nil, "topsecret", "INR")

	sig := sign("topsecret", "order_abc", "pay_def")
	_, err := svc.VerifyAndRecord(context.Background(),
		"order_abc", "pay_def", sig,
		uuid.New(), uuid.New(), decimal.NewFromInt(840))
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

func TestVerifyOrderMissing(t *testing.T) {
	repo := &mockRepo{
		recordPaymentFn: func(ctx context.Context, p *payment.Payment) error {
			return sql.ErrNoRows
		},
	}
	svc := NewService(repo, nil, "topsecret", "INR")

	sig := sign("topsecret", "order_abc", "pay_def")
	_, err := svc.VerifyAndRecord(context.Background(),
		"order_abc", "pay_def", sig,
		uuid.New(), uuid.New(), decimal.NewFromInt(840))
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyMissingFields(t *testing.T) {
	svc := NewService(&mockRepo{}, nil, "topsecret", "INR")
	_, err := svc.VerifyAndRecord(context.Background(),
		"", "pay_def", "sig",
		uuid.New(), uuid.New(), decimal.NewFromInt(840))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInitiateSendsMinorUnits(t *testing.T) {
	var gotAmount int64
	var gotReceipt string
	gw := &fakeGateway{
		createOrderFn: func(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
			gotAmount = amountMinor
			gotReceipt = receipt
			return &GatewayOrder{ID: "order_abc", Amount: amountMinor, Currency: currency, Receipt: receipt}, nil
		},
	}
	svc := NewService(&mockRepo{}, gw, "topsecret", "INR")

	orderID := uuid.New()
	amount := decimal.RequireFromString("840.00")
	gwOrder, err := svc.InitiateOrder(context.Background(), amount, uuid.New(), orderID)
	assert.NoError(t, err)
	assert.Equal(t, int64(84000), gotAmount)
	assert.Equal(t, "receipt_"+orderID.String(), gotReceipt)
	assert.Equal(t, "order_abc", gwOrder.ID)
}

func TestInitiateValidation(t *testing.T) {
	svc := NewService(&mockRepo{}, &fakeGateway{}, "topsecret", "INR")
	_, err := svc.InitiateOrder(context.Background(), decimal.Zero, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.InitiateOrder(context.Background(), decimal.NewFromInt(100), uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInitiateGatewayFailure(t *testing.T) {
	gw := &fakeGateway{
		createOrderFn: func(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	svc := NewService(&mockRepo{}, gw, "topsecret", "INR")

	_, err := svc.InitiateOrder(context.Background(), decimal.NewFromInt(100), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrGateway)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestPaymentStatusNotFound(t *testing.T) {
	repo := &mockRepo{
		findPaymentByOrderIDFn: func(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewService(repo, nil, "topsecret", "INR")
	_, err := svc.PaymentStatus(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
