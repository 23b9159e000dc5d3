package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/trendwear/storefront/internal/types/user"
)

var ErrValidation = errors.New("invalid input data")

type CartRepository interface {
	GetCart(ctx context.Context, userID uuid.UUID) (user.Cart, error)
	AddCartItem(ctx context.Context, userID, productID uuid.UUID, size string) error
	SetCartQuantity(ctx context.Context, userID, productID uuid.UUID, size string, quantity int64) error
}

type Service struct {
	repo CartRepository
}

func NewService(repo CartRepository) *Service {
	return &Service{repo: repo}
}

// Add increments the quantity for the product+size by one.
func (s *Service) Add(ctx context.Context, userID, productID uuid.UUID, size string) error {
	if userID == uuid.Nil || productID == uuid.Nil || size == "" {
		return ErrValidation
	}
	return s.repo.AddCartItem(ctx, userID, productID, size)
}

// Update sets the quantity for the product+size; zero removes the entry.
func (s *Service) Update(ctx context.Context, userID, productID uuid.UUID, size string, quantity int64) error {
	if userID == uuid.Nil || productID == uuid.Nil || size == "" || quantity < 0 {
		return ErrValidation
	}
	return s.repo.SetCartQuantity(ctx, userID, productID, size, quantity)
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (user.Cart, error) {
	return s.repo.GetCart(ctx, userID)
}
