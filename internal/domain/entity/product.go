package entity

import "time"

// Product agrupa variantes vendibles bajo un nombre y categoría.
type Product struct {
	ID        string
	Name      string
	Category  string
	CreatedAt time.Time
}
