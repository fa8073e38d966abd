package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertProductRequest entrada para crear o actualizar un producto.
// Si Code coincide con un producto existente la operación es una
// actualización; UpdateIntent autoriza sobrescribir cuando el nombre o la
// categoría difieren del registro existente.
type UpsertProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"min_stock"`
	Unit         string          `json:"unit" validate:"required"`
	CategoryID   string          `json:"category_id" validate:"required"`
	Brand        string          `json:"brand"`
	Location     string          `json:"location"`
	UpdateIntent bool            `json:"update_intent"`
}

// AdjustStockRequest entrada para ajustar stock (delta positivo o negativo).
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Unit        string          `json:"unit"`
	CategoryID  string          `json:"category_id"`
	Brand       string          `json:"brand,omitempty"`
	Location    string          `json:"location,omitempty"`
	Active      bool            `json:"active"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
