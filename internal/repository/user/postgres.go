package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"

	"ecomcart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres. The embedded cart,
// addresses and orders sequences live in JSONB columns on the users row.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	cartJSON, addrJSON, ordersJSON, err := marshalEmbedded(u)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO users (username, password_hash, balance, cart, addresses, name, mobile, orders)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id::text, username, password_hash, balance, cart, addresses, name, mobile, orders, created_at
`
	return r.scanUser(r.pool.QueryRow(
		ctx,
		q,
		strings.ToLower(u.Username),
		u.PasswordHash,
		u.Balance,
		cartJSON,
		addrJSON,
		u.Name,
		u.Mobile,
		ordersJSON,
	))
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
SELECT id::text, username, password_hash, balance, cart, addresses, name, mobile, orders, created_at
FROM users
WHERE lower(username) = lower($1)
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, username))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id::text, username, password_hash, balance, cart, addresses, name, mobile, orders, created_at
FROM users
WHERE id = $1
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) UpdateCart(ctx context.Context, id string, cart []domain.CartItem) error {
	if cart == nil {
		cart = []domain.CartItem{}
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.updateColumn(ctx, id, "cart", payload)
}

func (r *postgresRepo) UpdateAddresses(ctx context.Context, id string, addresses []domain.Address) error {
	if addresses == nil {
		addresses = []domain.Address{}
	}
	payload, err := json.Marshal(addresses)
	if err != nil {
		return err
	}
	return r.updateColumn(ctx, id, "addresses", payload)
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) error {
	const q = `
UPDATE users
SET name = COALESCE($2, name),
    mobile = COALESCE($3, mobile)
WHERE id = $1
`
	cmd, err := r.pool.Exec(ctx, q, id, in.Name, in.Mobile)
	if err != nil {
		r.logger.Printf("user repo: update profile id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ApplyCheckout(ctx context.Context, in CheckoutWrite) error {
	ordersJSON, err := json.Marshal(in.Orders)
	if err != nil {
		return err
	}

	// Single conditional write: debit, cleared cart and appended order land
	// together or not at all. The balance precondition rejects a write that
	// raced with another mutation of the same user.
	const q = `
UPDATE users
SET balance = $3,
    cart = '[]'::jsonb,
    orders = $4
WHERE id = $1 AND balance = $2
`
	cmd, err := r.pool.Exec(ctx, q, in.UserID, in.PrevBalance, in.NewBalance, ordersJSON)
	if err != nil {
		r.logger.Printf("user repo: apply checkout id=%s error=%v", in.UserID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *postgresRepo) updateColumn(ctx context.Context, id, column string, payload []byte) error {
	// column is one of the fixed names above, never caller input.
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET `+column+` = $2 WHERE id = $1`, id, payload)
	if err != nil {
		r.logger.Printf("user repo: update %s id=%s error=%v", column, id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var cartJSON, addrJSON, ordersJSON []byte
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Balance,
		&cartJSON,
		&addrJSON,
		&u.Name,
		&u.Mobile,
		&ordersJSON,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: scan error=%v", err)
		return nil, err
	}
	if len(cartJSON) > 0 {
		if err := json.Unmarshal(cartJSON, &u.Cart); err != nil {
			r.logger.Printf("user repo: decode cart id=%s err=%v", u.ID, err)
			return nil, err
		}
	}
	if len(addrJSON) > 0 {
		if err := json.Unmarshal(addrJSON, &u.Addresses); err != nil {
			r.logger.Printf("user repo: decode addresses id=%s err=%v", u.ID, err)
			return nil, err
		}
	}
	if len(ordersJSON) > 0 {
		if err := json.Unmarshal(ordersJSON, &u.Orders); err != nil {
			r.logger.Printf("user repo: decode orders id=%s err=%v", u.ID, err)
			return nil, err
		}
	}
	return &u, nil
}

func marshalEmbedded(u domain.User) (cart, addresses, orders []byte, err error) {
	if u.Cart == nil {
		u.Cart = []domain.CartItem{}
	}
	if u.Addresses == nil {
		u.Addresses = []domain.Address{}
	}
	if u.Orders == nil {
		u.Orders = []domain.Order{}
	}
	if cart, err = json.Marshal(u.Cart); err != nil {
		return nil, nil, nil, err
	}
	if addresses, err = json.Marshal(u.Addresses); err != nil {
		return nil, nil, nil, err
	}
	if orders, err = json.Marshal(u.Orders); err != nil {
		return nil, nil, nil, err
	}
	return cart, addresses, orders, nil
}
