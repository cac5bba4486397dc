package dto

import "time"

// CreateLocationRequest alta de ubicación (bodega o punto de venta).
type CreateLocationRequest struct {
	Name      string `json:"name"`
	IsStorage bool   `json:"is_storage"`
	Address   string `json:"address"`
}

// LocationResponse ubicación registrada.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsStorage bool      `json:"is_storage"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
