package store

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront-service/internal/domain"
)

// SampleSource serves the built-in demo catalog. It is the default
// ProductSource so the service runs without a database.
type SampleSource struct{}

// NewSampleSource creates a SampleSource.
func NewSampleSource() *SampleSource {
	return &SampleSource{}
}

// LoadProducts returns the demo catalog.
func (s *SampleSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return SampleProducts(), nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SampleProducts returns the demo catalog in id order.
func SampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Smartphone XYZ",
			Description: "Smartphone com tela de 6.5 polegadas, 128GB, câmera tripla",
			Price:       price("899.99"),
			ImageURL:    "https://images.unsplash.com/photo-1598327105854-c8674faddf74?w=300",
			Category:    "eletronicos",
			Stock:       15,
			Rating:      4.5,
		},
		{
			ID:          2,
			Name:        "Notebook ABC",
			Description: "Notebook i5, 8GB RAM, SSD 256GB, tela 15.6 polegadas",
			Price:       price("2499.99"),
			ImageURL:    "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=300",
			Category:    "eletronicos",
			Stock:       8,
			Rating:      4.8,
		},
		{
			ID:          3,
			Name:        "Camiseta Básica",
			Description: "Camiseta 100% algodão, diversas cores, confortável e durável",
			Price:       price("29.99"),
			ImageURL:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=300",
			Category:    "roupas",
			Stock:       50,
			Rating:      4.3,
		},
		{
			ID:          4,
			Name:        "Tênis Esportivo",
			Description: "Tênis para corrida, amortecimento premium, design moderno",
			Price:       price("199.99"),
			ImageURL:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300",
			Category:    "calcados",
			Stock:       20,
			Rating:      4.6,
		},
		{
			ID:          5,
			Name:        "Livro Python Avançado",
			Description: "Livro sobre programação Python avançada, 400 páginas",
			Price:       price("59.99"),
			ImageURL:    "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=300",
			Category:    "livros",
			Stock:       30,
			Rating:      4.7,
		},
		{
			ID:          6,
			Name:        "Fone Bluetooth",
			Description: "Fone sem fio com cancelamento de ruído, bateria de 20h",
			Price:       price("159.99"),
			ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300",
			Category:    "eletronicos",
			Stock:       25,
			Rating:      4.4,
		},
		{
			ID:          7,
			Name:        "Mochila Executiva",
			Description: "Mochila resistente à água, compartimento para notebook",
			Price:       price("129.99"),
			ImageURL:    "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300",
			Category:    "acessorios",
			Stock:       18,
			Rating:      4.2,
		},
		{
			ID:          8,
			Name:        "Smartwatch",
			Description: "Relógio inteligente com monitor de frequência cardíaca",
			Price:       price("299.99"),
			ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300",
			Category:    "eletronicos",
			Stock:       12,
			Rating:      4.9,
		},
	}
}

// SampleUser returns the demo customer that is signed in on startup.
func SampleUser() domain.User {
	return domain.User{
		ID:      1,
		Name:    "João Silva",
		Email:   "joao@email.com",
		Address: "Rua das Flores, 123 - São Paulo, SP",
		Phone:   "(11) 99999-9999",
	}
}
