package catalog

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// UseCase catálogo de productos y variantes con historial de precios.
// Colaborador simple del ledger: CRUD sin máquina de estados, pero las
// escrituras de precio son compuestas (price_history + caché en variants)
// y corren en una sola transacción.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	priceRepo   repository.PriceHistoryRepository
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	priceRepo repository.PriceHistoryRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		variantRepo: variantRepo,
		priceRepo:   priceRepo,
	}
}

// CreateProduct crea un producto del catálogo.
func (uc *UseCase) CreateProduct(ctx context.Context, name, category string) (*entity.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidation
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		CreatedAt: time.Now(),
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ResolveProductByName resuelve un nombre de producto a su ID.
// Es la llamada explícita de resolución de nombres: los demás casos de uso
// reciben siempre IDs tipados, nunca "id o nombre" ambiguo.
func (uc *UseCase) ResolveProductByName(ctx context.Context, name string) (*entity.Product, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, domain.ErrValidation
	}
	product, err := uc.productRepo.FindByNormalizedName(normalized)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// NormalizeName minúsculas y sin diacríticos ("Chaqueta Impermeável" → "chaqueta impermeavel"),
// para que la búsqueda por nombre no dependa de tildes ni mayúsculas.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	clean, _, err := transform.String(t, name)
	if err != nil {
		clean = name
	}
	return strings.ToLower(strings.TrimSpace(clean))
}

// CreateVariant crea una variante; si initialPrice no es nil, el alta de la
// variante, el primer registro de price_history y la caché CurrentPrice se
// escriben en la misma transacción.
func (uc *UseCase) CreateVariant(ctx context.Context, productID, description string, initialPrice *decimal.Decimal) (*entity.Variant, error) {
	if productID == "" {
		return nil, domain.ErrValidation
	}
	if initialPrice != nil && initialPrice.IsNegative() {
		return nil, domain.ErrValidation
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	variant := &entity.Variant{
		ID:          uuid.New().String(),
		ProductID:   productID,
		Description: description,
		CreatedAt:   now,
	}
	if initialPrice != nil {
		variant.CurrentPrice = *initialPrice
	}

	err = uc.txRunner.RunCatalog(ctx, func(
		variantRepo repository.VariantRepository,
		priceRepo repository.PriceHistoryRepository,
	) error {
		if err := variantRepo.Create(variant); err != nil {
			return err
		}
		if initialPrice == nil {
			return nil
		}
		return priceRepo.Create(&entity.PriceHistory{
			ID:        uuid.New().String(),
			VariantID: variant.ID,
			Price:     *initialPrice,
			StartDate: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return variant, nil
}

// SetVariantPrice registra un nuevo precio: fila en price_history y refresco
// de la caché denormalizada de la variante, ambos en una transacción.
func (uc *UseCase) SetVariantPrice(ctx context.Context, variantID string, price decimal.Decimal) error {
	if variantID == "" || price.IsNegative() {
		return domain.ErrValidation
	}
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	return uc.txRunner.RunCatalog(ctx, func(
		variantRepo repository.VariantRepository,
		priceRepo repository.PriceHistoryRepository,
	) error {
		if err := priceRepo.Create(&entity.PriceHistory{
			ID:        uuid.New().String(),
			VariantID: variantID,
			Price:     price,
			StartDate: now,
		}); err != nil {
			return err
		}
		return variantRepo.UpdateCurrentPrice(variantID, price)
	})
}

// GetVariant devuelve la variante o ErrNotFound.
func (uc *UseCase) GetVariant(ctx context.Context, id string) (*entity.Variant, error) {
	variant, err := uc.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	return variant, nil
}

// ListVariants lista las variantes de un producto.
func (uc *UseCase) ListVariants(ctx context.Context, productID string) ([]*entity.Variant, error) {
	return uc.variantRepo.ListByProduct(productID)
}

// ListPriceHistory historial de precios de una variante, más reciente primero.
func (uc *UseCase) ListPriceHistory(ctx context.Context, variantID string) ([]*entity.PriceHistory, error) {
	return uc.priceRepo.ListByVariant(variantID)
}

// GetProduct devuelve el producto o ErrNotFound.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista productos con paginación.
func (uc *UseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.productRepo.List(limit, offset)
}
