package catalog

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresStore serves the catalog from brands/products/product_images
// tables. It is a read-only seed backend like MemStore, just shared.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Brands(ctx context.Context) ([]Brand, error) {
	var out []Brand

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name
			FROM brands
			ORDER BY position ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Brand, 0, 8)
		for rows.Next() {
			var b Brand
			if err := rows.Scan(&b.ID, &b.Name); err != nil {
				return err
			}
			out = append(out, b)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) BrandByID(ctx context.Context, id string) (Brand, bool, error) {
	var b Brand

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name
			FROM brands
			WHERE id = $1
		`, id).Scan(&b.ID, &b.Name)
	})

	if err == sql.ErrNoRows {
		return Brand{}, false, nil
	}
	if err != nil {
		return Brand{}, false, err
	}
	return b, true, nil
}

func (s *PostgresStore) Products(ctx context.Context) ([]Product, error) {
	return s.queryProducts(ctx, `
		SELECT id, category_id, name, description, price
		FROM products
		ORDER BY position ASC
	`)
}

func (s *PostgresStore) ProductsByBrand(ctx context.Context, brandID string) ([]Product, error) {
	return s.queryProducts(ctx, `
		SELECT id, category_id, name, description, price
		FROM products
		WHERE category_id = $1
		ORDER BY position ASC
	`, brandID)
}

func (s *PostgresStore) Search(ctx context.Context, query string) ([]Product, error) {
	return s.queryProducts(ctx, `
		SELECT id, category_id, name, description, price
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY position ASC
	`, query)
}

func (s *PostgresStore) ProductByID(ctx context.Context, id string) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if err := s.db.QueryRowContext(ctx, `
			SELECT id, category_id, name, description, price
			FROM products
			WHERE id = $1
		`, id).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price); err != nil {
			return err
		}

		urls, err := s.imageURLs(ctx, id)
		if err != nil {
			return err
		}
		p.ImageURLs = urls
		return nil
	})

	if err == sql.ErrNoRows {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) queryProducts(ctx context.Context, q string, args ...any) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price); err != nil {
				return err
			}
			out = append(out, p)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range out {
			urls, err := s.imageURLs(ctx, out[i].ID)
			if err != nil {
				return err
			}
			out[i].ImageURLs = urls
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) imageURLs(ctx context.Context, productID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url
		FROM product_images
		WHERE product_id = $1
		ORDER BY position ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make([]string, 0, 4)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
