package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	ID             string
	Name           string
	Category       string
	Cost           int64
	Rating         int
	Image          string
	Promoted       bool
	PromotionOrder int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			ID:             "0b27a8de-2c34-4e2b-a9cb-5e5b8a6e0a11",
			Name:           "UNIFACTOR Mens Running Shoes",
			Category:       "Fashion",
			Cost:           50,
			Rating:         5,
			Image:          "https://images.ecomcart.dev/products/running-shoes.png",
			Promoted:       true,
			PromotionOrder: 1,
		},
		{
			ID:       "3c6ef1f0-18ad-4019-ad0a-bf2a3e4b7c22",
			Name:     "YONEX Smash Badminton Racquet",
			Category: "Sports",
			Cost:     100,
			Rating:   4,
			Image:    "https://images.ecomcart.dev/products/badminton-racquet.png",
		},
		{
			ID:       "9f4b1c5a-7d2e-4d3f-8a58-c0de5f6a7b33",
			Name:     "Centaur Ceramic Coffee Mug",
			Category: "Home",
			Cost:     25,
			Rating:   3,
			Image:    "https://images.ecomcart.dev/products/coffee-mug.png",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
	}

	if err := ensureUser(ctx, pool, "demo", "demo-password"); err != nil {
		return fmt.Errorf("ensure demo user: %w", err)
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, category, cost, rating, image, promoted, promotion_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    category = EXCLUDED.category,
    cost = EXCLUDED.cost,
    rating = EXCLUDED.rating,
    image = EXCLUDED.image,
    promoted = EXCLUDED.promoted,
    promotion_order = EXCLUDED.promotion_order
`
	_, err := pool.Exec(ctx, q, p.ID, p.Name, p.Category, p.Cost, p.Rating, p.Image, p.Promoted, p.PromotionOrder)
	return err
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (username, password_hash)
VALUES ($1, $2)
ON CONFLICT (lower(username)) DO NOTHING
`
	_, err = pool.Exec(ctx, q, username, string(hashed))
	return err
}
