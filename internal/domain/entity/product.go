package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de la ferretería.
// Stock y MinStock son enteros no negativos; Price es decimal no negativo.
// Code es el código opcional del producto, único cuando está presente.
type Product struct {
	ID          string
	Code        string // vacío si el producto no tiene código asignado
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	MinStock    int
	Unit        string // "unidad", "metro", "litro", etc.
	CategoryID  string
	Brand       string
	Location    string // ubicación física en la ferretería
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize recorta espacios y normaliza el código a mayúsculas.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	p.Brand = strings.TrimSpace(p.Brand)
	p.Unit = strings.TrimSpace(p.Unit)
	p.Location = strings.TrimSpace(p.Location)
}

// LowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// HasStock indica si hay unidades disponibles.
func (p *Product) HasStock() bool {
	return p.Stock > 0
}
