package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jfuentes/stock-ledger/internal/application/dto"
	"github.com/jfuentes/stock-ledger/internal/application/ledger"
	"github.com/jfuentes/stock-ledger/internal/application/report"
	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del ledger de stock (protegido).
type InventoryHandler struct {
	uc       *ledger.UseCase
	reportUC *report.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase, reportUC *report.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, reportUC: reportUC}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "variant_id, location_id (destino), source_location_id (solo TRANSFER), amount, type, reason, initial_status (opcional)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.RecordMovement(c.Context(), ledger.RecordMovementInput{
		VariantID:        in.VariantID,
		LocationID:       in.LocationID,
		SourceLocationID: in.SourceLocationID,
		Amount:           in.Amount,
		Type:             in.Type,
		Reason:           in.Reason,
		InitialStatus:    in.InitialStatus,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// GetMovement godoc
// @Summary      Consultar un movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	movement, err := h.uc.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(toMovementResponse(movement))
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        variant_id   query  string  false  "Filtrar por variante"
// @Param        location_id  query  string  false  "Filtrar por ubicación (destino u origen)"
// @Param        status       query  string  false  "Filtrar por estado"
// @Param        limit        query  int     false  "Tamaño de página (default 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListMovements(c.Context(), repository.MovementFilter{
		VariantID:  c.Query("variant_id"),
		LocationID: c.Query("location_id"),
		Status:     c.Query("status"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(items), "movements": items})
}

// UpdateStatus godoc
// @Summary      Transicionar el estado de un movimiento
// @Description  Mover a un estado terminal (COMPLETED o CANCELLED). Al entrar a
//
//	COMPLETED se reconcilia el stock en la misma transacción.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del movimiento"
// @Param        body  body  dto.UpdateStatusRequest  true  "status destino"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/status [patch]
func (h *InventoryHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	id := c.Params("id")
	if err := h.uc.UpdateStatus(c.Context(), id, in.Status); err != nil {
		return mapLedgerError(c, err)
	}
	movement, err := h.uc.GetMovement(c.Context(), id)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(toMovementResponse(movement))
}

// GetAvailability godoc
// @Summary      Disponibilidad de una variante en una ubicación
// @Description  disponible = físico − suma de OUT pendientes. Vista derivada,
//
//	nunca persistida.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        variant_id   query  string  true  "ID de la variante"
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/availability [get]
func (h *InventoryHandler) GetAvailability(c *fiber.Ctx) error {
	availability, err := h.uc.ComputeAvailable(c.Context(), c.Query("variant_id"), c.Query("location_id"))
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{
		VariantID:       availability.VariantID,
		LocationID:      availability.LocationID,
		PhysicalAmount:  availability.PhysicalAmount,
		AvailableAmount: availability.AvailableAmount,
	})
}

// GetStockReport godoc
// @Summary      Reporte PDF de stock por ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/report [get]
func (h *InventoryHandler) GetStockReport(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.GenerateStockReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="reporte-stock.pdf"`)
	return c.Send(pdfBytes)
}

// mapLedgerError traduce errores de dominio a códigos HTTP.
func mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		VariantID:        m.VariantID,
		LocationID:       m.LocationID,
		SourceLocationID: m.SourceLocationID,
		ChangeAmount:     m.ChangeAmount,
		Type:             m.Type,
		Reason:           m.Reason,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
	}
}
