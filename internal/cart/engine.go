package cart

import (
	"context"
	"errors"

	"SunShop/internal/catalog"
)

var ErrUnknownProduct = errors.New("unknown product")

// Engine applies cart mutations for a user already resolved by the
// session middleware. Product ids are checked against the catalog before
// any mutation, including removes.
type Engine struct {
	Catalog catalog.Store
	Carts   *Store
}

func (e *Engine) Items(username string) []Item {
	return e.Carts.Items(username)
}

func (e *Engine) Add(ctx context.Context, username, productID string) ([]Item, error) {
	p, ok, err := e.Catalog.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownProduct
	}
	return e.Carts.Add(username, p), nil
}

func (e *Engine) Remove(ctx context.Context, username, productID string) ([]Item, error) {
	_, ok, err := e.Catalog.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownProduct
	}
	return e.Carts.Remove(username, productID), nil
}
