package catalog

import "context"

type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          string   `json:"id"`
	CategoryID  string   `json:"categoryId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURLs   []string `json:"imageUrls"`
}

// Store is the read-only catalog. Listing methods preserve catalog order.
type Store interface {
	Ping(ctx context.Context) error
	Brands(ctx context.Context) ([]Brand, error)
	BrandByID(ctx context.Context, id string) (Brand, bool, error)
	Products(ctx context.Context) ([]Product, error)
	ProductsByBrand(ctx context.Context, brandID string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	ProductByID(ctx context.Context, id string) (Product, bool, error)
}
