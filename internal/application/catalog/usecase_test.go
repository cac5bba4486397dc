package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfuentes/stock-ledger/internal/application/catalog"
	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: mismo patrón snapshot/commit que los tests del ledger para verificar
// que variante + precio inicial componen UNA transacción (todo o nada).
// ──────────────────────────────────────────────────────────────────────────────

var errPrice = errors.New("insert price: violación de constraint")

type catalogStore struct {
	products map[string]*entity.Product
	variants map[string]*entity.Variant
	prices   []*entity.PriceHistory
}

func newCatalogStore() *catalogStore {
	return &catalogStore{
		products: map[string]*entity.Product{},
		variants: map[string]*entity.Variant{},
	}
}

func (s *catalogStore) clone() *catalogStore {
	c := newCatalogStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, v := range s.variants {
		cp := *v
		c.variants[id] = &cp
	}
	c.prices = append(c.prices, s.prices...)
	return c
}

type fakeProductRepo struct{ store *catalogStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.store.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeProductRepo) FindByNormalizedName(name string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if catalog.NormalizeName(p.Name) == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) List(_, _ int) ([]*entity.Product, error) { return nil, nil }

type fakeVariantRepo struct{ store *catalogStore }

func (r *fakeVariantRepo) Create(v *entity.Variant) error {
	cp := *v
	r.store.variants[v.ID] = &cp
	return nil
}
func (r *fakeVariantRepo) GetByID(id string) (*entity.Variant, error) {
	if v, ok := r.store.variants[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeVariantRepo) ListByProduct(productID string) ([]*entity.Variant, error) {
	var list []*entity.Variant
	for _, v := range r.store.variants {
		if v.ProductID == productID {
			cp := *v
			list = append(list, &cp)
		}
	}
	return list, nil
}
func (r *fakeVariantRepo) UpdateCurrentPrice(id string, price decimal.Decimal) error {
	v, ok := r.store.variants[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.CurrentPrice = price
	return nil
}

type fakePriceRepo struct {
	store      *catalogStore
	failCreate bool
}

func (r *fakePriceRepo) Create(p *entity.PriceHistory) error {
	if r.failCreate {
		return errPrice
	}
	cp := *p
	r.store.prices = append(r.store.prices, &cp)
	return nil
}
func (r *fakePriceRepo) ListByVariant(variantID string) ([]*entity.PriceHistory, error) {
	var list []*entity.PriceHistory
	for _, p := range r.store.prices {
		if p.VariantID == variantID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

type fakeCatalogTx struct {
	store     *catalogStore
	failPrice bool
}

func (t *fakeCatalogTx) RunCatalog(_ context.Context, fn func(
	variantRepo repository.VariantRepository,
	priceRepo repository.PriceHistoryRepository,
) error) error {
	snapshot := t.store.clone()
	err := fn(&fakeVariantRepo{store: snapshot}, &fakePriceRepo{store: snapshot, failCreate: t.failPrice})
	if err != nil {
		return err
	}
	*t.store = *snapshot
	return nil
}

func newCatalogFixture(failPrice bool) (*catalog.UseCase, *catalogStore) {
	store := newCatalogStore()
	uc := catalog.NewUseCase(
		&fakeCatalogTx{store: store, failPrice: failPrice},
		&fakeProductRepo{store: store},
		&fakeVariantRepo{store: store},
		&fakePriceRepo{store: store},
	)
	return uc, store
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVariant_ConPrecioInicialComponeUnaTx(t *testing.T) {
	uc, store := newCatalogFixture(false)
	ctx := context.Background()

	product, err := uc.CreateProduct(ctx, "Nike Air Max", "Footwear")
	require.NoError(t, err)

	price := decimal.NewFromInt(99)
	variant, err := uc.CreateVariant(ctx, product.ID, "38, Purple", &price)
	require.NoError(t, err)

	assert.True(t, variant.CurrentPrice.Equal(price))
	require.Len(t, store.prices, 1)
	assert.Equal(t, variant.ID, store.prices[0].VariantID)
}

func TestCreateVariant_RollbackSiFallaPrecio(t *testing.T) {
	uc, store := newCatalogFixture(true)
	ctx := context.Background()

	product, err := uc.CreateProduct(ctx, "Adidas Rainproof Jacket", "Jackets")
	require.NoError(t, err)

	price := decimal.NewFromInt(42)
	_, err = uc.CreateVariant(ctx, product.ID, "M", &price)
	require.ErrorIs(t, err, errPrice)

	assert.Empty(t, store.variants, "sin commits anidados: falla el precio, no queda la variante")
	assert.Empty(t, store.prices)
}

func TestSetVariantPrice_ActualizaCacheEHistorial(t *testing.T) {
	uc, store := newCatalogFixture(false)
	ctx := context.Background()

	product, err := uc.CreateProduct(ctx, "Ippon Karate Gloves", "Sports accessories")
	require.NoError(t, err)
	initial := decimal.NewFromInt(67)
	variant, err := uc.CreateVariant(ctx, product.ID, "M", &initial)
	require.NoError(t, err)

	require.NoError(t, uc.SetVariantPrice(ctx, variant.ID, decimal.NewFromInt(69)))

	got, err := uc.GetVariant(ctx, variant.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentPrice.Equal(decimal.NewFromInt(69)), "la caché refleja el último precio")
	assert.Len(t, store.prices, 2, "el historial conserva ambos precios")
}

func TestResolveProductByName_NormalizaAcentosYMayusculas(t *testing.T) {
	uc, _ := newCatalogFixture(false)
	ctx := context.Background()

	product, err := uc.CreateProduct(ctx, "Botín Clásico", "Footwear")
	require.NoError(t, err)

	got, err := uc.ResolveProductByName(ctx, "  botin CLASICO ")
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)

	_, err = uc.ResolveProductByName(ctx, "no existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "chaqueta impermeavel", catalog.NormalizeName("Chaqueta Impermeável"))
	assert.Equal(t, "nino", catalog.NormalizeName("NIÑO"))
	assert.Equal(t, "", catalog.NormalizeName("   "))
}
