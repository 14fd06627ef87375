package user

import (
	"context"

	"ecomcart/internal/domain"
)

// ProfileUpdate carries the optional profile fields; nil means "leave as is".
type ProfileUpdate struct {
	Name   *string
	Mobile *string
}

// CheckoutWrite replaces the mutable parts of a user document in a single
// conditional write. PrevBalance is the balance observed when the request
// was authenticated; the write fails with domain.ErrConflict if a concurrent
// update changed it in the meantime.
type CheckoutWrite struct {
	UserID      string
	PrevBalance int64
	NewBalance  int64
	Orders      []domain.Order
}

// Repository persists and fetches user documents.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateCart(ctx context.Context, id string, cart []domain.CartItem) error
	UpdateAddresses(ctx context.Context, id string, addresses []domain.Address) error
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) error
	ApplyCheckout(ctx context.Context, in CheckoutWrite) error
}
