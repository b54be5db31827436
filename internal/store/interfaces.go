package store

import (
	"context"

	"storefront-service/internal/domain"
)

// ProductSource supplies the full product catalog once at startup. The
// engine never writes back through it; after Load the catalog is fixed
// until the process restarts.
type ProductSource interface {
	LoadProducts(ctx context.Context) ([]domain.Product, error)
}
