package payment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendwear/storefront/internal/middleware"
	"github.com/trendwear/storefront/internal/rest"
	"github.com/trendwear/storefront/internal/types/payment"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type initiateReq struct {
	Amount  decimal.Decimal `json:"amount"`
	OrderID uuid.UUID       `json:"orderId"`
}

type initiateResp struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

func (h *Handler) Initiate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	var req initiateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	gw, err := h.svc.InitiateOrder(r.Context(), req.Amount, userID, req.OrderID)
	switch {
	case errors.Is(err, ErrValidation):
		rest.Error(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, ErrGateway):
		rest.Error(w, http.StatusInternalServerError, err.Error())
	case err != nil:
		rest.Error(w, http.StatusInternalServerError, "Gateway order creation failed")
	default:
		rest.JSON(w, http.StatusOK, initiateResp{
			Success:  true,
			Message:  "Order created",
			OrderID:  gw.ID,
			Amount:   gw.Amount,
			Currency: gw.Currency,
			Receipt:  gw.Receipt,
		})
	}
}

type verifyReq struct {
	RazorpayOrderID   string          `json:"razorpayOrderId"`
	RazorpayPaymentID string          `json:"razorpayPaymentId"`
	RazorpaySignature string          `json:"razorpaySignature"`
	OrderID           uuid.UUID       `json:"orderId"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
}

type verifyResp struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Payment *payment.Payment `json:"payment"`
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	var req verifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.VerifyAndRecord(r.Context(),
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature,
		userID, req.OrderID, req.AmountPaid)
	switch {
	case errors.Is(err, ErrValidation):
		rest.Error(w, http.StatusBadRequest, "Missing Razorpay details")
	case errors.Is(err, ErrSignatureMismatch):
		rest.Error(w, http.StatusBadRequest, "Invalid payment signature")
	case errors.Is(err, ErrDuplicatePayment):
		rest.Error(w, http.StatusConflict, "Payment already recorded")
	case errors.Is(err, ErrOrderNotFound):
		rest.Error(w, http.StatusNotFound, "Order not found")
	case err != nil:
		rest.Error(w, http.StatusInternalServerError, "Payment verification failed")
	default:
		rest.JSON(w, http.StatusOK, verifyResp{
			Success: true,
			Message: "Payment verified & saved",
			Payment: p,
		})
	}
}

type statusResp struct {
	Success   bool                  `json:"success"`
	Status    payment.PaymentStatus `json:"status"`
	Amount    decimal.Decimal       `json:"amount"`
	PaymentID string                `json:"paymentId"`
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	p, err := h.svc.PaymentStatus(r.Context(), orderID)
	switch {
	case errors.Is(err, ErrNotFound):
		rest.Error(w, http.StatusNotFound, "Payment not found")
	case err != nil:
		rest.Error(w, http.StatusInternalServerError, "Error fetching payment status")
	default:
		rest.JSON(w, http.StatusOK, statusResp{
			Success:   true,
			Status:    p.Status,
			Amount:    p.AmountPaid,
			PaymentID: p.GatewayPaymentID,
		})
	}
}
