package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	brandsFile   = "brands.json"
	productsFile = "products.json"
)

// MemStore holds the catalog decoded from the seed documents. Data is
// immutable after construction, so reads need no locking.
type MemStore struct {
	brands     []Brand
	products   []Product
	brandsByID map[string]Brand
	productsBy map[string]Product
}

func NewMemStore(brands []Brand, products []Product) *MemStore {
	s := &MemStore{
		brands:     brands,
		products:   products,
		brandsByID: make(map[string]Brand, len(brands)),
		productsBy: make(map[string]Product, len(products)),
	}
	for _, b := range brands {
		s.brandsByID[b.ID] = b
	}
	for _, p := range products {
		s.productsBy[p.ID] = p
	}
	return s
}

// LoadDir reads brands.json and products.json from dir. Any read or
// decode failure aborts startup.
func LoadDir(dir string) (*MemStore, error) {
	var brands []Brand
	if err := decodeFile(filepath.Join(dir, brandsFile), &brands); err != nil {
		return nil, err
	}

	var products []Product
	if err := decodeFile(filepath.Join(dir, productsFile), &products); err != nil {
		return nil, err
	}

	return NewMemStore(brands, products), nil
}

func decodeFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// DanglingCategories reports product ids whose categoryId matches no
// brand. The catalog is served as-is either way.
func (s *MemStore) DanglingCategories() []string {
	var out []string
	for _, p := range s.products {
		if _, ok := s.brandsByID[p.CategoryID]; !ok {
			out = append(out, p.ID)
		}
	}
	return out
}

func (s *MemStore) Ping(context.Context) error { return nil }

func (s *MemStore) Brands(context.Context) ([]Brand, error) {
	out := make([]Brand, len(s.brands))
	copy(out, s.brands)
	return out, nil
}

func (s *MemStore) BrandByID(_ context.Context, id string) (Brand, bool, error) {
	b, ok := s.brandsByID[id]
	return b, ok, nil
}

func (s *MemStore) Products(context.Context) ([]Product, error) {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemStore) ProductsByBrand(_ context.Context, brandID string) ([]Product, error) {
	out := make([]Product, 0, 4)
	for _, p := range s.products {
		if p.CategoryID == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) Search(_ context.Context, query string) ([]Product, error) {
	q := strings.ToLower(query)

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) ProductByID(_ context.Context, id string) (Product, bool, error) {
	p, ok := s.productsBy[id]
	return p, ok, nil
}
