package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfuentes/stock-ledger/internal/application/ledger"
	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeTxRunner imita la semántica del TxRunner real: fn opera sobre una COPIA
// del estado y solo si devuelve nil la copia se promueve a estado visible.
// Con eso los tests de rollback verifican que un fallo a mitad de la
// reconciliación no deja ni movimiento ni stock a medias.
// ──────────────────────────────────────────────────────────────────────────────

var errDisk = errors.New("upsert stock: disco lleno")

type fakeStore struct {
	movements map[string]*entity.Movement
	levels    map[string]*entity.StockLevel // clave "variant|location"
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movements: map[string]*entity.Movement{},
		levels:    map[string]*entity.StockLevel{},
	}
}

func levelKey(variantID, locationID string) string { return variantID + "|" + locationID }

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, m := range s.movements {
		cp := *m
		c.movements[id] = &cp
	}
	for k, l := range s.levels {
		cp := *l
		c.levels[k] = &cp
	}
	return c
}

func (s *fakeStore) physical(variantID, locationID string) int64 {
	if l, ok := s.levels[levelKey(variantID, locationID)]; ok {
		return l.PhysicalAmount
	}
	return 0
}

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.store.movements[m.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	if m, ok := r.store.movements[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMovementRepo) GetByIDForUpdate(id string) (*entity.Movement, error) {
	return r.GetByID(id)
}

func (r *fakeMovementRepo) UpdateStatus(id, status string) error {
	m, ok := r.store.movements[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Status = status
	return nil
}

func (r *fakeMovementRepo) SumPendingOut(_ context.Context, variantID, locationID string) (int64, error) {
	var sum int64
	for _, m := range r.store.movements {
		if m.Type == entity.MovementTypeOUT && m.Status == entity.StatusPending &&
			m.VariantID == variantID && m.LocationID == locationID {
			sum += m.ChangeAmount
		}
	}
	return sum, nil
}

func (r *fakeMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.store.movements {
		if filter.VariantID != "" && m.VariantID != filter.VariantID {
			continue
		}
		if filter.LocationID != "" && m.LocationID != filter.LocationID {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	return list, nil
}

type fakeStockRepo struct {
	store      *fakeStore
	failUpsert bool // simula fallo de almacenamiento a mitad de la reconciliación
}

func (r *fakeStockRepo) Get(variantID, locationID string) (*entity.StockLevel, error) {
	if l, ok := r.store.levels[levelKey(variantID, locationID)]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeStockRepo) GetForUpdate(variantID, locationID string) (*entity.StockLevel, error) {
	l, err := r.Get(variantID, locationID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return &entity.StockLevel{VariantID: variantID, LocationID: locationID}, nil
	}
	return l, nil
}

func (r *fakeStockRepo) Upsert(level *entity.StockLevel) error {
	if r.failUpsert {
		return errDisk
	}
	cp := *level
	r.store.levels[levelKey(level.VariantID, level.LocationID)] = &cp
	return nil
}

func (r *fakeStockRepo) ListByLocation(locationID string, _, _ int) ([]*entity.StockLevel, error) {
	var list []*entity.StockLevel
	for _, l := range r.store.levels {
		if l.LocationID == locationID {
			cp := *l
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeStockRepo) ListAll() ([]*entity.StockLevel, error) {
	var list []*entity.StockLevel
	for _, l := range r.store.levels {
		cp := *l
		list = append(list, &cp)
	}
	return list, nil
}

type fakeTxRunner struct {
	store      *fakeStore
	failUpsert bool
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockLevelRepository,
) error) error {
	snapshot := t.store.clone()
	err := fn(&fakeMovementRepo{store: snapshot}, &fakeStockRepo{store: snapshot, failUpsert: t.failUpsert})
	if err != nil {
		return err // rollback: la copia se descarta
	}
	*t.store = *snapshot
	return nil
}

type fakeVariantRepo struct{ known map[string]bool }

func (r *fakeVariantRepo) Create(*entity.Variant) error { return nil }
func (r *fakeVariantRepo) GetByID(id string) (*entity.Variant, error) {
	if r.known[id] {
		return &entity.Variant{ID: id}, nil
	}
	return nil, nil
}
func (r *fakeVariantRepo) ListByProduct(string) ([]*entity.Variant, error)  { return nil, nil }
func (r *fakeVariantRepo) UpdateCurrentPrice(string, decimal.Decimal) error { return nil }

type fakeLocationRepo struct{ known map[string]bool }

func (r *fakeLocationRepo) Create(*entity.Location) error { return nil }
func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	if r.known[id] {
		return &entity.Location{ID: id}, nil
	}
	return nil, nil
}
func (r *fakeLocationRepo) List(_, _ int) ([]*entity.Location, error) { return nil, nil }

// fixture con variante V y ubicaciones S (bodega) y D (punto de venta).
const (
	varX = "variant-x"
	locD = "loc-destino"
	locS = "loc-origen"
)

func newFixture(failUpsert bool) (*ledger.UseCase, *fakeStore) {
	store := newFakeStore()
	runner := &fakeTxRunner{store: store, failUpsert: failUpsert}
	return ledger.NewUseCase(
		runner,
		&fakeMovementRepo{store: store},
		&fakeStockRepo{store: store},
		&fakeVariantRepo{known: map[string]bool{varX: true}},
		&fakeLocationRepo{known: map[string]bool{locD: true, locS: true}},
	), store
}

func seedPhysical(store *fakeStore, variantID, locationID string, amount int64) {
	store.levels[levelKey(variantID, locationID)] = &entity.StockLevel{
		VariantID: variantID, LocationID: locationID, PhysicalAmount: amount,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_INCompletadoSumaFisico(t *testing.T) {
	uc, store := newFixture(false)

	m, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 5,
		Type: entity.MovementTypeIN, Reason: entity.ReasonRestock,
	})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.StatusCompleted, m.Status, "IN sin estado explícito nace COMPLETED")
	assert.EqualValues(t, 5, store.physical(varX, locD))
}

func TestRecordMovement_INPendienteNoTocaStock(t *testing.T) {
	uc, store := newFixture(false)

	m, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 5,
		Type: entity.MovementTypeIN, Reason: entity.ReasonRestock,
		InitialStatus: entity.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, m.Status)
	assert.EqualValues(t, 0, store.physical(varX, locD), "el efecto se aplica al COMPLETAR, no al crear")
}

func TestRecordMovement_TransferNaceEnTransito(t *testing.T) {
	uc, store := newFixture(false)

	m, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, SourceLocationID: locS, Amount: 4,
		Type: entity.MovementTypeTRANSFER, Reason: entity.ReasonInternal,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInTransit, m.Status)
	assert.EqualValues(t, 0, store.physical(varX, locD))
	assert.EqualValues(t, 0, store.physical(varX, locS))
}

func TestRecordMovement_Validaciones(t *testing.T) {
	uc, _ := newFixture(false)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ledger.RecordMovementInput
	}{
		{"cantidad cero", ledger.RecordMovementInput{
			VariantID: varX, LocationID: locD, Amount: 0,
			Type: entity.MovementTypeIN, Reason: entity.ReasonRestock}},
		{"cantidad negativa", ledger.RecordMovementInput{
			VariantID: varX, LocationID: locD, Amount: -3,
			Type: entity.MovementTypeOUT, Reason: entity.ReasonSale}},
		{"TRANSFER sin origen", ledger.RecordMovementInput{
			VariantID: varX, LocationID: locD, Amount: 2,
			Type: entity.MovementTypeTRANSFER, Reason: entity.ReasonInternal}},
		{"TRANSFER origen igual a destino", ledger.RecordMovementInput{
			VariantID: varX, LocationID: locD, SourceLocationID: locD, Amount: 2,
			Type: entity.MovementTypeTRANSFER, Reason: entity.ReasonInternal}},
		{"origen en tipo no TRANSFER", ledger.RecordMovementInput{
			VariantID: varX, LocationID: locD, SourceLocationID: locS, Amount: 2,
			Type: entity.MovementTypeIN, Reason: entity.ReasonRestock}},
		{"motivo ajeno al tipo", ledger.RecordMovementInput{
			VariantID: varX, LocationID: locD, Amount: 2,
			Type: entity.MovementTypeIN, Reason: entity.ReasonSale}},
		{"tipo desconocido", ledger.RecordMovementInput{
			VariantID: varX, LocationID: locD, Amount: 2,
			Type: "LOAN", Reason: entity.ReasonSale}},
		{"estado inicial cancelado", ledger.RecordMovementInput{
			VariantID: varX, LocationID: locD, Amount: 2,
			Type: entity.MovementTypeIN, Reason: entity.ReasonRestock,
			InitialStatus: entity.StatusCancelled}},
		{"estado inicial ajeno al tipo", ledger.RecordMovementInput{
			VariantID: varX, LocationID: locD, Amount: 2,
			Type: entity.MovementTypeADJUST, Reason: entity.ReasonCorrection,
			InitialStatus: entity.StatusPending}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := uc.RecordMovement(ctx, c.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRecordMovement_VarianteOUbicacionInexistente(t *testing.T) {
	uc, _ := newFixture(false)
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, ledger.RecordMovementInput{
		VariantID: "no-existe", LocationID: locD, Amount: 1,
		Type: entity.MovementTypeIN, Reason: entity.ReasonRestock,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RecordMovement(ctx, ledger.RecordMovementInput{
		VariantID: varX, LocationID: "no-existe", Amount: 1,
		Type: entity.MovementTypeIN, Reason: entity.ReasonRestock,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus + reconciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_ConservacionEnTransfer(t *testing.T) {
	uc, store := newFixture(false)
	seedPhysical(store, varX, locS, 10)

	m, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, SourceLocationID: locS, Amount: 4,
		Type: entity.MovementTypeTRANSFER, Reason: entity.ReasonInternal,
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(context.Background(), m.ID, entity.StatusCompleted))
	assert.EqualValues(t, 4, store.physical(varX, locD), "destino sube exactamente la cantidad")
	assert.EqualValues(t, 6, store.physical(varX, locS), "origen baja exactamente la cantidad")
}

func TestUpdateStatus_RecompletarRechazadoSinEfecto(t *testing.T) {
	uc, store := newFixture(false)

	m, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 5,
		Type: entity.MovementTypeIN, Reason: entity.ReasonRestock,
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, store.physical(varX, locD))

	err = uc.UpdateStatus(context.Background(), m.ID, entity.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "re-completar un COMPLETED debe fallar")
	assert.EqualValues(t, 5, store.physical(varX, locD), "el físico no cambia: aplicación única")
}

func TestUpdateStatus_ReconciliacionDeDisponibilidad(t *testing.T) {
	uc, store := newFixture(false)
	ctx := context.Background()
	seedPhysical(store, varX, locD, 10)

	m, err := uc.RecordMovement(ctx, ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 3,
		Type: entity.MovementTypeOUT, Reason: entity.ReasonSale,
		InitialStatus: entity.StatusPending,
	})
	require.NoError(t, err)

	// Pendiente: físico 10, disponible 7.
	av, err := uc.ComputeAvailable(ctx, varX, locD)
	require.NoError(t, err)
	assert.EqualValues(t, 10, av.PhysicalAmount)
	assert.EqualValues(t, 7, av.AvailableAmount)

	// Completado: físico 7, disponible 7 (sin doble descuento).
	require.NoError(t, uc.UpdateStatus(ctx, m.ID, entity.StatusCompleted))
	av, err = uc.ComputeAvailable(ctx, varX, locD)
	require.NoError(t, err)
	assert.EqualValues(t, 7, av.PhysicalAmount)
	assert.EqualValues(t, 7, av.AvailableAmount)
}

func TestUpdateStatus_AdjustReemplazaNoSuma(t *testing.T) {
	uc, store := newFixture(false)
	seedPhysical(store, varX, locD, 12)

	_, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 5,
		Type: entity.MovementTypeADJUST, Reason: entity.ReasonCorrection,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, store.physical(varX, locD), "ADJUST escribe 5, no 17")
}

func TestUpdateStatus_CancelarNoTocaStock(t *testing.T) {
	uc, store := newFixture(false)
	seedPhysical(store, varX, locD, 8)

	m, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 3,
		Type: entity.MovementTypeOUT, Reason: entity.ReasonDamage,
		InitialStatus: entity.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(context.Background(), m.ID, entity.StatusCancelled))
	assert.EqualValues(t, 8, store.physical(varX, locD))

	// CANCELLED es terminal.
	err = uc.UpdateStatus(context.Background(), m.ID, entity.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_MismoEstadoNoTerminalEsNoOp(t *testing.T) {
	uc, store := newFixture(false)

	m, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 2,
		Type: entity.MovementTypeIN, Reason: entity.ReasonReturn,
		InitialStatus: entity.StatusPending,
	})
	require.NoError(t, err)

	assert.NoError(t, uc.UpdateStatus(context.Background(), m.ID, entity.StatusPending))
	assert.EqualValues(t, 0, store.physical(varX, locD))
}

func TestUpdateStatus_MovimientoInexistente(t *testing.T) {
	uc, _ := newFixture(false)
	err := uc.UpdateStatus(context.Background(), "no-existe", entity.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_SobreventaPermitida(t *testing.T) {
	uc, store := newFixture(false)

	// OUT sobre un par sin fila previa: el físico queda negativo.
	_, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 3,
		Type: entity.MovementTypeOUT, Reason: entity.ReasonSale,
	})
	require.NoError(t, err)
	assert.EqualValues(t, -3, store.physical(varX, locD))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rollback atómico
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_RollbackTotalSiFallaReconciliacion(t *testing.T) {
	uc, store := newFixture(true) // el upsert de stock falla dentro de la tx

	_, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 5,
		Type: entity.MovementTypeIN, Reason: entity.ReasonRestock,
	})
	require.ErrorIs(t, err, errDisk)

	assert.Empty(t, store.movements, "ni el movimiento ni el stock deben ser observables")
	assert.EqualValues(t, 0, store.physical(varX, locD))
}

func TestUpdateStatus_RollbackDejaEstadoPrevio(t *testing.T) {
	uc, store := newFixture(false)
	m, err := uc.RecordMovement(context.Background(), ledger.RecordMovementInput{
		VariantID: varX, LocationID: locD, Amount: 5,
		Type: entity.MovementTypeIN, Reason: entity.ReasonRestock,
		InitialStatus: entity.StatusPending,
	})
	require.NoError(t, err)

	// A partir de aquí el almacenamiento de stock falla.
	ucFail := rewireFailing(store)
	err = ucFail.UpdateStatus(context.Background(), m.ID, entity.StatusCompleted)
	require.ErrorIs(t, err, errDisk)

	kept, err := uc.GetMovement(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, kept.Status, "el estado vuelve exactamente al previo")
	assert.EqualValues(t, 0, store.physical(varX, locD))
}

// rewireFailing construye un UseCase sobre el mismo store con upserts fallidos.
func rewireFailing(store *fakeStore) *ledger.UseCase {
	return ledger.NewUseCase(
		&fakeTxRunner{store: store, failUpsert: true},
		&fakeMovementRepo{store: store},
		&fakeStockRepo{store: store},
		&fakeVariantRepo{known: map[string]bool{varX: true}},
		&fakeLocationRepo{known: map[string]bool{locD: true, locS: true}},
	)
}
