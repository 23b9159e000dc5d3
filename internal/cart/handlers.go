package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/trendwear/storefront/internal/middleware"
	"github.com/trendwear/storefront/internal/rest"
	"github.com/trendwear/storefront/internal/types/user"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type addReq struct {
	ItemID uuid.UUID `json:"itemId"`
	Size   string    `json:"size"`
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	var req addReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.svc.Add(r.Context(), userID, req.ItemID, req.Size)
	switch {
	case errors.Is(err, ErrValidation):
		rest.Error(w, http.StatusBadRequest, "Invalid input data")
	case err != nil:
		rest.Error(w, http.StatusInternalServerError, "Failed to update cart")
	default:
		rest.JSON(w, http.StatusOK, struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}{true, "Added to cart"})
	}
}

type updateReq struct {
	ItemID   uuid.UUID `json:"itemId"`
	Size     string    `json:"size"`
	Quantity int64     `json:"quantity"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	var req updateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.svc.Update(r.Context(), userID, req.ItemID, req.Size, req.Quantity)
	switch {
	case errors.Is(err, ErrValidation):
		rest.Error(w, http.StatusBadRequest, "Invalid input data")
	case err != nil:
		rest.Error(w, http.StatusInternalServerError, "Failed to update cart")
	default:
		rest.JSON(w, http.StatusOK, struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}{true, "Cart updated"})
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	cart, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	rest.JSON(w, http.StatusOK, struct {
		Success  bool      `json:"success"`
		CartData user.Cart `json:"cartData"`
	}{true, cart})
}
