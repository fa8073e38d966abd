package entity

import "time"

// Category representa una categoría de productos (ej: "Herramientas", "Pinturas").
// El nombre es único sin distinguir mayúsculas. Una categoría referenciada por
// productos nunca se elimina: se desactiva (Active = false).
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
