package product

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"ecomcart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, category, cost, rating, image, promoted, promotion_order, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY promoted DESC, promotion_order ASC, name ASC
`
	return r.queryProducts(ctx, q)
}

func (r *postgresRepo) Search(ctx context.Context, value string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'
ORDER BY promoted DESC, promotion_order ASC, name ASC
`
	return r.queryProducts(ctx, q, escapeLike(value))
}

// escapeLike neutralizes LIKE metacharacters so the search value matches as
// a literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id::text = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image, &p.Promoted, &p.PromotionOrder, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or refreshes a catalog row. Used by the seeder and importer.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, category, cost, rating, image, promoted, promotion_order)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    category = EXCLUDED.category,
    cost = EXCLUDED.cost,
    rating = EXCLUDED.rating,
    image = EXCLUDED.image,
    promoted = EXCLUDED.promoted,
    promotion_order = EXCLUDED.promotion_order
RETURNING ` + productColumns + `
`
	var out domain.Product
	err := r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Category, p.Cost, p.Rating, p.Image, p.Promoted, p.PromotionOrder,
	).Scan(&out.ID, &out.Name, &out.Category, &out.Cost, &out.Rating, &out.Image, &out.Promoted, &out.PromotionOrder, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%q error=%v", p.Name, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image, &p.Promoted, &p.PromotionOrder, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: rows error=%v", err)
		return nil, err
	}
	return result, nil
}
