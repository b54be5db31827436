package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-service/internal/domain"
)

// ErrEmptyCatalog is returned when the product table holds no rows; an
// empty storefront is a deployment mistake worth failing loudly on.
var ErrEmptyCatalog = errors.New("store: product catalog is empty")

// PostgresSource loads the catalog from PostgreSQL. It implements
// ProductSource and is read-only: the storefront never writes products.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource creates a PostgresSource on top of an open connection
// pool. The caller owns opening the pool; Close tears it down.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// LoadProducts fetches every product ordered by id. The returned order is
// the catalog order the query engine preserves through filters.
func (s *PostgresSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, category, stock, rating
		FROM storefront.products
		ORDER BY id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: LoadProducts failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price,
			&p.ImageURL, &p.Category, &p.Stock, &p.Rating,
		); err != nil {
			return nil, fmt.Errorf("store: LoadProducts failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: LoadProducts iteration error: %w", err)
	}

	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}
	return products, nil
}

// Close closes the underlying connection pool.
func (s *PostgresSource) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
