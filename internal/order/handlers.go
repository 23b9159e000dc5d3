package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trendwear/storefront/internal/middleware"
	"github.com/trendwear/storefront/internal/rest"
	"github.com/trendwear/storefront/internal/types/order"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type placeOrderReq struct {
	Items   []PlacedItem  `json:"items"`
	Address order.Address `json:"address"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	h.place(w, r, order.MethodCOD)
}

func (h *Handler) PlaceOrderGateway(w http.ResponseWriter, r *http.Request) {
	h.place(w, r, order.MethodGateway)
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request, method order.PaymentMethod) {
	userID := middleware.UserIDFromContext(r.Context())
	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.svc.PlaceOrder(r.Context(), userID, req.Items, req.Address, method)
	switch {
	case errors.Is(err, ErrValidation):
		rest.Error(w, http.StatusBadRequest, "Missing required fields")
	case err != nil:
		rest.Error(w, http.StatusInternalServerError, "Failed to place order")
	case method == order.MethodGateway:
		rest.JSON(w, http.StatusOK, struct {
			Success bool      `json:"success"`
			Message string    `json:"message"`
			OrderID uuid.UUID `json:"orderId"`
		}{true, "Order created successfully", o.ID})
	default:
		rest.JSON(w, http.StatusOK, struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}{true, "Order Placed"})
	}
}

func (h *Handler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	status, err := h.svc.OrderStatus(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		rest.Error(w, http.StatusNotFound, "Order not found")
	case err != nil:
		rest.Error(w, http.StatusInternalServerError, "Server error")
	default:
		rest.JSON(w, http.StatusOK, struct {
			Status order.OrderStatus `json:"status"`
		}{status})
	}
}

func (h *Handler) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orders, err := h.svc.ListUserOrders(r.Context(), userID)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	rest.JSON(w, http.StatusOK, struct {
		Success bool          `json:"success"`
		Orders  []order.Order `json:"orders"`
	}{true, orders})
}

type updateStatusReq struct {
	OrderID uuid.UUID         `json:"orderId"`
	Status  order.OrderStatus `json:"status"`
}

type updatedOrder struct {
	OrderID   uuid.UUID         `json:"orderId"`
	Status    order.OrderStatus `json:"status"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type updateStatusResp struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Order   updatedOrder `json:"order"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.OrderID == uuid.Nil || req.Status == "" {
		rest.Error(w, http.StatusBadRequest, "Order ID and status are required")
		return
	}

	o, err := h.svc.TransitionStatus(r.Context(), req.OrderID, req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		rest.JSON(w, http.StatusBadRequest, struct {
			Success       bool                `json:"success"`
			Message       string              `json:"message"`
			ValidStatuses []order.OrderStatus `json:"validStatuses"`
		}{false, "Invalid status value", order.ValidStatuses()})
	case errors.Is(err, ErrNotFound):
		rest.Error(w, http.StatusNotFound, "Order not found")
	case err != nil:
		rest.Error(w, http.StatusInternalServerError, "Failed to update order status")
	default:
		rest.JSON(w, http.StatusOK, updateStatusResp{
			Success: true,
			Message: "Order status updated successfully",
			Order:   updatedOrder{OrderID: o.ID, Status: o.Status, UpdatedAt: time.Now().UTC()},
		})
	}
}
