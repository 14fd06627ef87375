package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ecomcart/internal/domain"
)

type stubProductWriter struct {
	upserted []domain.Product
	err      error
}

func (s *stubProductWriter) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.upserted = append(s.upserted, product)
	return &product, nil
}

const validExport = `[
	{"_id":"7c9e6679-7425-40de-944b-e07fc1f90ae7","name":"UNIFACTOR Mens Running Shoes","category":"Fashion","cost":50,"rating":5,"image":"https://example.com/shoes.png"},
	{"name":"YONEX Smash Badminton Racquet","category":"Sports","cost":100,"rating":4,"image":"https://example.com/racquet.png","promoted":true,"promotionOrder":1}
]`

func TestRunImportsAllRows(t *testing.T) {
	writer := &stubProductWriter{}
	imp := NewJSONImporter(strings.NewReader(validExport), writer)

	n, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}
	if len(writer.upserted) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(writer.upserted))
	}
	if writer.upserted[0].ID != "7c9e6679-7425-40de-944b-e07fc1f90ae7" {
		t.Fatalf("id not preserved: %q", writer.upserted[0].ID)
	}
	if !writer.upserted[1].Promoted || writer.upserted[1].PromotionOrder != 1 {
		t.Fatalf("promotion fields not preserved: %+v", writer.upserted[1])
	}
}

func TestRunRejectsMalformedJSON(t *testing.T) {
	imp := NewJSONImporter(strings.NewReader(`{"not":"an array"`), &stubProductWriter{})

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRunFailsFastOnInvalidRow(t *testing.T) {
	export := `[
		{"name":"Valid Mug","category":"Home","cost":25,"image":"https://example.com/mug.png"},
		{"name":"Free Item","category":"Home","cost":0,"image":"https://example.com/free.png"},
		{"name":"Never Reached","category":"Home","cost":10,"image":"https://example.com/later.png"}
	]`
	writer := &stubProductWriter{}
	imp := NewJSONImporter(strings.NewReader(export), writer)

	n, err := imp.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for non-positive cost")
	}
	if n != 1 {
		t.Fatalf("expected 1 imported before failure, got %d", n)
	}
	if len(writer.upserted) != 1 {
		t.Fatalf("expected import to stop after the bad row, got %d upserts", len(writer.upserted))
	}
}

func TestRunRejectsBadID(t *testing.T) {
	export := `[{"_id":"short","name":"Mug","category":"Home","cost":25,"image":"https://example.com/mug.png"}]`
	imp := NewJSONImporter(strings.NewReader(export), &stubProductWriter{})

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for malformed id")
	}
}

func TestRunWrapsWriterError(t *testing.T) {
	wantErr := errors.New("connection reset")
	imp := NewJSONImporter(strings.NewReader(validExport), &stubProductWriter{err: wantErr})

	_, err := imp.Run(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped writer error, got %v", err)
	}
}
