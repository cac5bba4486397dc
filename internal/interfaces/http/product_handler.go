package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jfuentes/stock-ledger/internal/application/catalog"
	"github.com/jfuentes/stock-ledger/internal/application/dto"
	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP del catálogo: productos, variantes
// y precios (protegido).
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, category"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.CreateProduct(c.Context(), in.Name, in.Category)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
}

// List godoc
// @Summary      Listar productos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListProducts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return mapCatalogError(c, err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(items), "products": items})
}

// GetByID godoc
// @Summary      Consultar producto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(toProductResponse(product))
}

// Resolve godoc
// @Summary      Resolver nombre de producto a ID
// @Description  Búsqueda insensible a mayúsculas y tildes. Es la única vía de
//
//	resolución por nombre: el resto de la API trabaja con IDs.
//
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        name  query  string  true  "Nombre del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/resolve [get]
func (h *ProductHandler) Resolve(c *fiber.Ctx) error {
	product, err := h.uc.ResolveProductByName(c.Context(), c.Query("name"))
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(toProductResponse(product))
}

// CreateVariant godoc
// @Summary      Crear variante de un producto
// @Description  Si initial_price viene, la variante, su primer precio histórico
//
//	y la caché current_price se escriben en una sola transacción.
//
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.CreateVariantRequest  true  "description, initial_price (opcional)"
// @Success      201   {object}  dto.VariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variants [post]
func (h *ProductHandler) CreateVariant(c *fiber.Ctx) error {
	var in dto.CreateVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	variant, err := h.uc.CreateVariant(c.Context(), c.Params("id"), in.Description, in.InitialPrice)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toVariantResponse(variant))
}

// ListVariants godoc
// @Summary      Listar variantes de un producto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.VariantResponse
// @Router       /api/products/{id}/variants [get]
func (h *ProductHandler) ListVariants(c *fiber.Ctx) error {
	list, err := h.uc.ListVariants(c.Context(), c.Params("id"))
	if err != nil {
		return mapCatalogError(c, err)
	}
	items := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		items = append(items, toVariantResponse(v))
	}
	return c.JSON(fiber.Map{"total": len(items), "variants": items})
}

// GetVariant godoc
// @Summary      Consultar variante
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la variante"
// @Success      200  {object}  dto.VariantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/variants/{id} [get]
func (h *ProductHandler) GetVariant(c *fiber.Ctx) error {
	variant, err := h.uc.GetVariant(c.Context(), c.Params("id"))
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(toVariantResponse(variant))
}

// SetPrice godoc
// @Summary      Fijar precio de una variante
// @Description  Inserta la fila en el historial y refresca la caché
//
//	current_price en una sola transacción.
//
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la variante"
// @Param        body  body  dto.SetPriceRequest  true  "price"
// @Success      200   {object}  dto.VariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/price [put]
func (h *ProductHandler) SetPrice(c *fiber.Ctx) error {
	var in dto.SetPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id := c.Params("id")
	if err := h.uc.SetVariantPrice(c.Context(), id, in.Price); err != nil {
		return mapCatalogError(c, err)
	}
	variant, err := h.uc.GetVariant(c.Context(), id)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(toVariantResponse(variant))
}

// ListPriceHistory godoc
// @Summary      Historial de precios de una variante
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la variante"
// @Success      200  {array}  dto.PriceHistoryResponse
// @Router       /api/variants/{id}/prices [get]
func (h *ProductHandler) ListPriceHistory(c *fiber.Ctx) error {
	list, err := h.uc.ListPriceHistory(c.Context(), c.Params("id"))
	if err != nil {
		return mapCatalogError(c, err)
	}
	items := make([]dto.PriceHistoryResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.PriceHistoryResponse{
			ID:        p.ID,
			VariantID: p.VariantID,
			Price:     p.Price,
			StartDate: p.StartDate,
		})
	}
	return c.JSON(fiber.Map{"total": len(items), "prices": items})
}

// mapCatalogError traduce errores de dominio a códigos HTTP.
func mapCatalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
	}
}

func toVariantResponse(v *entity.Variant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		Description:  v.Description,
		CurrentPrice: v.CurrentPrice,
		CreatedAt:    v.CreatedAt,
	}
}
