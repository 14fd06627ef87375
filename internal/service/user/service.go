package user

import (
	"context"
	"errors"
	"unicode/utf8"

	"ecomcart/internal/domain"
	userrepo "ecomcart/internal/repository/user"
	"github.com/google/uuid"
)

const (
	addressMinLen = 20
	addressMaxLen = 128
)

var (
	// ErrAddressTooShort rejects addresses below the minimum length.
	ErrAddressTooShort = errors.New("address should be greater than 20 characters")
	// ErrAddressTooLong rejects addresses above the maximum length.
	ErrAddressTooLong = errors.New("address should be less than 128 characters")
	// ErrAddressNotFound is returned when deleting an unknown address id.
	ErrAddressNotFound = errors.New("address to delete was not found")
	// ErrNoProfileFields is returned when a profile update carries nothing.
	ErrNoProfileFields = errors.New("no valid fields to update")
)

// Profile is the projection of a user record returned by profile endpoints.
type Profile struct {
	Username  string           `json:"username"`
	Balance   int64            `json:"balance"`
	Addresses []domain.Address `json:"addresses"`
	Name      string           `json:"name"`
	Mobile    string           `json:"mobile"`
	Orders    []domain.Order   `json:"orders"`
}

// Service implements address book and profile operations.
type Service struct {
	repo userrepo.Repository
}

func New(repo userrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Addresses returns the user's address list unchanged.
func (s *Service) Addresses(u *domain.User) []domain.Address {
	if u.Addresses == nil {
		return []domain.Address{}
	}
	return u.Addresses
}

// AddAddress validates the text length in characters (20-128, boundaries
// inclusive), appends a new entry and persists the updated list.
func (s *Service) AddAddress(ctx context.Context, u *domain.User, text string) ([]domain.Address, error) {
	length := utf8.RuneCountInString(text)
	if length < addressMinLen {
		return nil, ErrAddressTooShort
	}
	if length > addressMaxLen {
		return nil, ErrAddressTooLong
	}

	addresses := append(u.Addresses, domain.Address{
		ID:      uuid.NewString(),
		Address: text,
	})
	if err := s.repo.UpdateAddresses(ctx, u.ID, addresses); err != nil {
		return nil, err
	}
	u.Addresses = addresses
	return s.Addresses(u), nil
}

// RemoveAddress deletes an address by id and persists the updated list.
func (s *Service) RemoveAddress(ctx context.Context, u *domain.User, id string) ([]domain.Address, error) {
	idx := -1
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrAddressNotFound
	}
	addresses := append(u.Addresses[:idx], u.Addresses[idx+1:]...)
	if err := s.repo.UpdateAddresses(ctx, u.ID, addresses); err != nil {
		return nil, err
	}
	u.Addresses = addresses
	return s.Addresses(u), nil
}

// GetProfile projects the profile fields, defaulting absent sequences.
func (s *Service) GetProfile(u *domain.User) Profile {
	return toProfile(u)
}

// UpdateProfile persists the supplied fields only, then re-reads the user
// document and returns the full projected profile.
func (s *Service) UpdateProfile(ctx context.Context, u *domain.User, name, mobile *string) (*Profile, error) {
	if name == nil && mobile == nil {
		return nil, ErrNoProfileFields
	}
	if err := s.repo.UpdateProfile(ctx, u.ID, userrepo.ProfileUpdate{Name: name, Mobile: mobile}); err != nil {
		return nil, err
	}
	updated, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	profile := toProfile(updated)
	return &profile, nil
}

func toProfile(u *domain.User) Profile {
	p := Profile{
		Username:  u.Username,
		Balance:   u.Balance,
		Addresses: u.Addresses,
		Name:      u.Name,
		Mobile:    u.Mobile,
		Orders:    u.Orders,
	}
	if p.Addresses == nil {
		p.Addresses = []domain.Address{}
	}
	if p.Orders == nil {
		p.Orders = []domain.Order{}
	}
	return p
}
