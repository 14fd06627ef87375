package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecomcart/internal/domain"
	productrepo "ecomcart/internal/repository/product"
	userrepo "ecomcart/internal/repository/user"
	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a cart upsert references an
	// unknown catalog product.
	ErrProductNotFound = errors.New("product doesn't exist")
	// ErrNotInCart is returned when removing a product that is not in the cart.
	ErrNotInCart = errors.New("product not found in cart")
	// ErrNegativeQuantity rejects negative quantities on upsert.
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	// ErrEmptyCart aborts a checkout with nothing to charge.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCartProductGone aborts a checkout whose cart references a product
	// that no longer resolves in the catalog.
	ErrCartProductGone = errors.New("product in cart no longer exists")
	// ErrInsufficientFunds aborts a checkout exceeding the wallet balance.
	ErrInsufficientFunds = errors.New("wallet balance not sufficient to place order")
	// ErrAddressRequired aborts a checkout without a delivery address.
	ErrAddressRequired = errors.New("address not set")
	// ErrAddressNotFound aborts a checkout whose addressId matches nothing.
	ErrAddressNotFound = errors.New("bad address specified")
)

// Service implements cart mutation and the checkout flow.
type Service struct {
	users    userRepo
	products productRepo
}

type userRepo interface {
	UpdateCart(ctx context.Context, id string, cart []domain.CartItem) error
	ApplyCheckout(ctx context.Context, in userrepo.CheckoutWrite) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(users userrepo.Repository, products productrepo.Repository) *Service {
	return &Service{users: users, products: products}
}

// Get returns the user's current cart. No side effects.
func (s *Service) Get(u *domain.User) []domain.CartItem {
	if u.Cart == nil {
		return []domain.CartItem{}
	}
	return u.Cart
}

// Upsert adds, updates or removes a single cart line and persists the full
// updated cart. Quantity zero deletes an existing line instead of keeping a
// zero-quantity entry.
func (s *Service) Upsert(ctx context.Context, u *domain.User, productID string, qty int) ([]domain.CartItem, error) {
	if qty < 0 {
		return nil, ErrNegativeQuantity
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart := u.Cart
	idx := cartIndex(cart, productID)
	switch {
	case idx == -1 && qty == 0:
		// Nothing to add, nothing to remove.
		return s.Get(u), nil
	case idx == -1:
		cart = append(cart, domain.CartItem{ProductID: productID, Qty: qty})
	case qty == 0:
		cart = append(cart[:idx], cart[idx+1:]...)
	default:
		cart[idx].Qty = qty
	}

	if err := s.users.UpdateCart(ctx, u.ID, cart); err != nil {
		return nil, err
	}
	u.Cart = cart
	return s.Get(u), nil
}

// Remove deletes a cart line by product id and persists the updated cart.
func (s *Service) Remove(ctx context.Context, u *domain.User, productID string) ([]domain.CartItem, error) {
	idx := cartIndex(u.Cart, productID)
	if idx == -1 {
		return nil, ErrNotInCart
	}
	cart := append(u.Cart[:idx], u.Cart[idx+1:]...)
	if err := s.users.UpdateCart(ctx, u.ID, cart); err != nil {
		return nil, err
	}
	u.Cart = cart
	return s.Get(u), nil
}

// Checkout consumes the cart: it resolves every cart line against the
// catalog, debits the wallet, appends an immutable order record and clears
// the cart, all persisted as one conditional write. A cart line whose
// product no longer resolves fails the whole checkout rather than being
// silently dropped from the charge.
func (s *Service) Checkout(ctx context.Context, u *domain.User, addressID string) (*domain.Order, error) {
	if len(u.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	var total int64
	items := make([]domain.OrderItem, 0, len(u.Cart))
	for _, line := range u.Cart {
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("resolve product %s: %w", line.ProductID, ErrCartProductGone)
			}
			return nil, err
		}
		total += int64(line.Qty) * p.Cost
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Cost:      p.Cost,
			Qty:       line.Qty,
			Image:     p.Image,
		})
	}
	if total == 0 {
		return nil, ErrEmptyCart
	}
	if total > u.Balance {
		return nil, ErrInsufficientFunds
	}
	if addressID == "" {
		return nil, ErrAddressRequired
	}

	var address *domain.Address
	for i := range u.Addresses {
		if u.Addresses[i].ID == addressID {
			address = &u.Addresses[i]
			break
		}
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	order := domain.Order{
		ID:      uuid.NewString(),
		Items:   items,
		Total:   total,
		Address: *address,
		Date:    time.Now().UTC().Format(time.RFC3339),
	}
	orders := make([]domain.Order, 0, len(u.Orders)+1)
	orders = append(orders, u.Orders...)
	orders = append(orders, order)

	if err := s.users.ApplyCheckout(ctx, userrepo.CheckoutWrite{
		UserID:      u.ID,
		PrevBalance: u.Balance,
		NewBalance:  u.Balance - total,
		Orders:      orders,
	}); err != nil {
		return nil, err
	}

	u.Balance -= total
	u.Cart = []domain.CartItem{}
	u.Orders = orders
	return &order, nil
}

func cartIndex(cart []domain.CartItem, productID string) int {
	for i := range cart {
		if cart[i].ProductID == productID {
			return i
		}
	}
	return -1
}
