package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trendwear/storefront/internal/rest"
	"github.com/trendwear/storefront/internal/types/order"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type listResp struct {
	Success    bool            `json:"success"`
	Pagination *Pagination     `json:"pagination"`
	Orders     []EnrichedOrder `json:"orders"`
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		rest.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	p, orders, err := h.svc.ListOrders(r.Context(), f)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "Failed to fetch order details")
		return
	}
	if orders == nil {
		orders = []EnrichedOrder{}
	}
	rest.JSON(w, http.StatusOK, listResp{Success: true, Pagination: p, Orders: orders})
}

type orderResp struct {
	Success bool           `json:"success"`
	Order   *EnrichedOrder `json:"order"`
}

func (h *Handler) OrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	o, err := h.svc.OrderByID(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		rest.Error(w, http.StatusNotFound, "Order not found")
	case err != nil:
		rest.Error(w, http.StatusInternalServerError, "Failed to fetch order details")
	default:
		rest.JSON(w, http.StatusOK, orderResp{Success: true, Order: o})
	}
}

func parseFilter(r *http.Request) (order.Filter, error) {
	var f order.Filter
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, errors.New("invalid page")
		}
		f.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, errors.New("invalid limit")
		}
		f.Limit = n
	}
	if v := q.Get("userId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, errors.New("invalid userId")
		}
		f.UserID = &id
	}
	if v := q.Get("status"); v != "" {
		st := order.OrderStatus(v)
		if !st.Valid() {
			return f, errors.New("invalid status")
		}
		f.Status = &st
	}
	if v := q.Get("fromDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid fromDate, want RFC 3339")
		}
		f.From = &t
	}
	if v := q.Get("toDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid toDate, want RFC 3339")
		}
		f.To = &t
	}
	return f, nil
}
