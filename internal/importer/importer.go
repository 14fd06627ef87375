package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"ecomcart/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// JSONImporter reads a catalog export (a JSON array of product objects in
// the store's wire format) and inserts/updates products.
type JSONImporter struct {
	reader      io.Reader
	productRepo ProductWriter
}

func NewJSONImporter(r io.Reader, repo ProductWriter) *JSONImporter {
	return &JSONImporter{
		reader:      r,
		productRepo: repo,
	}
}

type jsonRow struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Cost           int64  `json:"cost"`
	Rating         int    `json:"rating"`
	Image          string `json:"image"`
	Promoted       bool   `json:"promoted"`
	PromotionOrder int    `json:"promotionOrder"`
}

// Run parses the export and upserts every product, failing fast on the
// first invalid row.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var rows []jsonRow
	if err := json.NewDecoder(i.reader).Decode(&rows); err != nil {
		return 0, fmt.Errorf("decode catalog export: %w", err)
	}

	imported := 0
	for _, row := range rows {
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *JSONImporter) save(ctx context.Context, row jsonRow) error {
	if row.Name == "" || row.Category == "" || row.Image == "" {
		return fmt.Errorf("invalid product row (missing required fields) for %q", row.Name)
	}
	if row.Cost <= 0 {
		return fmt.Errorf("invalid cost %d for %q", row.Cost, row.Name)
	}
	if row.ID != "" && len(row.ID) != 36 {
		return fmt.Errorf("invalid id for %q: %s", row.Name, row.ID)
	}

	p := domain.Product{
		ID:             row.ID,
		Name:           row.Name,
		Category:       row.Category,
		Cost:           row.Cost,
		Rating:         row.Rating,
		Image:          row.Image,
		Promoted:       row.Promoted,
		PromotionOrder: row.PromotionOrder,
	}

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Name, err)
	}
	return nil
}
