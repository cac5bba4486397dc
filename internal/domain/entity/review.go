package entity

import "time"

// Review reseña de cliente sobre una variante. Rating 1..5.
type Review struct {
	ID        string
	VariantID string
	Body      string
	UserName  string
	Rating    int
	CreatedAt time.Time
}
