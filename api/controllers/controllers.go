package controllers

import (
	"context"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/store"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
)

// Dispatcher is the slice of the state store handlers depend on.
type Dispatcher interface {
	Dispatch(ctx context.Context, action store.Action) store.AppState
	Snapshot() store.AppState
}

// ProductGetter resolves a single product from the remote catalog.
type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

// resolveProduct looks the product up remotely and falls back to the
// built-in catalog when the remote API is unreachable.
func resolveProduct(ctx context.Context, getter ProductGetter, id string) (catalog.Product, error) {
	if getter != nil {
		product, err := getter.GetProduct(ctx, id)
		if err == nil {
			return product, nil
		}
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return catalog.Product{}, err
		}
	}
	if product, ok := catalog.FixtureProduct(id); ok {
		return product, nil
	}
	return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}
