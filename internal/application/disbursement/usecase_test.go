package disbursement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-stock/internal/application/disbursement"
	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	admin   = entity.Actor{ID: "u-001", Username: "admin", Role: entity.RoleAdmin}
	regular = entity.Actor{ID: "u-002", Username: "farmaceutico", Role: entity.RoleUser}
)

type fakeSnapshotStore struct {
	writes int
	fail   bool
}

func (f *fakeSnapshotStore) ReadAll(_ context.Context) ([]entity.Drug, bool, error) {
	return nil, false, nil
}

func (f *fakeSnapshotStore) WriteAll(_ context.Context, _ []entity.Drug) error {
	if f.fail {
		return errors.New("almacén externo caído")
	}
	f.writes++
	return nil
}

type fixture struct {
	uc       *disbursement.UseCase
	store    *memory.Store
	drugRepo *memory.DrugRepo
	txRepo   *memory.TransactionRepo
	disbRepo *memory.DisbursementRepo
	snap     *fakeSnapshotStore
}

// newFixture arma el caso de uso con un medicamento de 50 unidades.
func newFixture() *fixture {
	store := memory.NewStore()
	store.SeedDrugs([]entity.Drug{{
		ID:         "d-001",
		Name:       "Amoxicilina 250mg",
		Quantity:   50,
		Unit:       "cápsulas",
		ExpiryDate: time.Now().AddDate(1, 0, 0),
		Location:   "Estante B",
	}})
	drugRepo := memory.NewDrugRepository(store)
	txRepo := memory.NewTransactionRepository(store)
	disbRepo := memory.NewDisbursementRepository(store)
	snap := &fakeSnapshotStore{}
	uc := disbursement.NewUseCase(memory.NewTxRunner(store), drugRepo, disbRepo, snap)
	return &fixture{uc: uc, store: store, drugRepo: drugRepo, txRepo: txRepo, disbRepo: disbRepo, snap: snap}
}

func (fx *fixture) createPending(t *testing.T, qty int) *entity.DisbursementRecord {
	t.Helper()
	record, err := fx.uc.Create(context.Background(), regular, dto.CreateDisbursementRequest{
		DrugID: "d-001", Quantity: qty,
	})
	require.NoError(t, err)
	return record
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CualquierUsuarioPuedeSolicitar(t *testing.T) {
	fx := newFixture()

	record := fx.createPending(t, 10)
	assert.Equal(t, entity.DisbursementStatusPending, record.Status)
	assert.Equal(t, "farmaceutico", record.RequestedBy)
	assert.Equal(t, "Amoxicilina 250mg", record.DrugName, "nombre y unidad se desnormalizan al crear")
	assert.Equal(t, "cápsulas", record.Unit)
	assert.Nil(t, record.ApprovalDate)

	// Crear no toca el inventario.
	drug, _ := fx.drugRepo.GetByID("d-001")
	assert.Equal(t, 50, drug.Quantity)
}

func TestCreate_CantidadIgualAlStock_EsValida(t *testing.T) {
	fx := newFixture()
	record := fx.createPending(t, 50)
	assert.Equal(t, 50, record.QuantityDisbursed, "pedir exactamente todo el stock está permitido")
}

func TestCreate_CantidadInvalida(t *testing.T) {
	fx := newFixture()

	for _, qty := range []int{0, -5, 51} {
		_, err := fx.uc.Create(context.Background(), regular, dto.CreateDisbursementRequest{
			DrugID: "d-001", Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
}

func TestCreate_MedicamentoInexistente(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.Create(context.Background(), regular, dto.CreateDisbursementRequest{
		DrugID: "no-existe", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_DecrementaStockYRegistraSalida(t *testing.T) {
	fx := newFixture()
	record := fx.createPending(t, 20)

	approved, err := fx.uc.Approve(context.Background(), admin, record.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DisbursementStatusApproved, approved.Status)
	assert.Equal(t, "admin", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovalDate)

	drug, _ := fx.drugRepo.GetByID("d-001")
	assert.Equal(t, 30, drug.Quantity)

	txs, _ := fx.txRepo.Recent(1)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionTypeDisbursement, txs[0].Type)
	assert.Equal(t, -20, txs[0].QuantityChange)
	assert.Equal(t, 30, txs[0].QuantityAfter)
	assert.Equal(t, "admin", txs[0].User, "la salida se atribuye al aprobador, no al solicitante")

	assert.Equal(t, 1, fx.snap.writes)
}

func TestApprove_UsuarioNoAdmin(t *testing.T) {
	fx := newFixture()
	record := fx.createPending(t, 10)

	_, err := fx.uc.Approve(context.Background(), regular, record.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApprove_StockInsuficiente_SinEfectoObservable(t *testing.T) {
	fx := newFixture()
	// Dos solicitudes que en conjunto exceden el stock.
	first := fx.createPending(t, 40)
	second := fx.createPending(t, 40)

	_, err := fx.uc.Approve(context.Background(), admin, first.ID)
	require.NoError(t, err)

	_, err = fx.uc.Approve(context.Background(), admin, second.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La solicitud queda Pending, con los campos de resolución limpios.
	reloaded, _ := fx.disbRepo.GetByID(second.ID)
	assert.Equal(t, entity.DisbursementStatusPending, reloaded.Status)
	assert.Nil(t, reloaded.ApprovalDate)
	assert.Empty(t, reloaded.ApprovedBy)

	// Ni el inventario ni el libro registran el intento.
	drug, _ := fx.drugRepo.GetByID("d-001")
	assert.Equal(t, 10, drug.Quantity)
	txs, _ := fx.txRepo.Recent(10)
	assert.Len(t, txs, 1, "solo la salida de la primera aprobación")
}

func TestApprove_SolicitudYaResuelta_Conflicto(t *testing.T) {
	fx := newFixture()
	record := fx.createPending(t, 10)

	_, err := fx.uc.Approve(context.Background(), admin, record.ID)
	require.NoError(t, err)

	_, err = fx.uc.Approve(context.Background(), admin, record.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una solicitud transiciona exactamente una vez")

	drug, _ := fx.drugRepo.GetByID("d-001")
	assert.Equal(t, 40, drug.Quantity, "la doble aprobación no descuenta dos veces")
}

func TestApprove_Inexistente(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.Approve(context.Background(), admin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reject
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_SinEfectosSobreInventarioNiLibro(t *testing.T) {
	fx := newFixture()
	record := fx.createPending(t, 10)

	rejected, err := fx.uc.Reject(context.Background(), admin, record.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DisbursementStatusRejected, rejected.Status)
	assert.Equal(t, "admin", rejected.ApprovedBy)
	require.NotNil(t, rejected.ApprovalDate)

	drug, _ := fx.drugRepo.GetByID("d-001")
	assert.Equal(t, 50, drug.Quantity)
	txs, _ := fx.txRepo.Recent(10)
	assert.Empty(t, txs)
	assert.Zero(t, fx.snap.writes, "rechazar no persiste la colección: nada cambió")
}

func TestReject_YaResuelta_Conflicto(t *testing.T) {
	fx := newFixture()
	record := fx.createPending(t, 10)

	_, err := fx.uc.Reject(context.Background(), admin, record.ID)
	require.NoError(t, err)

	_, err = fx.uc.Approve(context.Background(), admin, record.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una solicitud rechazada no puede aprobarse después")
}

// ──────────────────────────────────────────────────────────────────────────────
// EditDates
// ──────────────────────────────────────────────────────────────────────────────

func TestEditDates_CorrigeSinMutarInventario(t *testing.T) {
	fx := newFixture()
	record := fx.createPending(t, 20)
	_, err := fx.uc.Approve(context.Background(), admin, record.ID)
	require.NoError(t, err)

	edited, err := fx.uc.EditDates(context.Background(), admin, record.ID, dto.EditDisbursementDatesRequest{
		RequestDate:  "2026-08-01T09:00:00Z",
		ApprovalDate: "2026-08-02T10:30:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 2026, edited.RequestDate.Year())
	require.NotNil(t, edited.ApprovalDate)
	assert.Equal(t, time.August, edited.ApprovalDate.Month())

	// La corrección retroactiva nunca vuelve a descontar stock.
	drug, _ := fx.drugRepo.GetByID("d-001")
	assert.Equal(t, 30, drug.Quantity)
}

func TestEditDates_ResueltaExigeFechaDeResolucion(t *testing.T) {
	fx := newFixture()
	record := fx.createPending(t, 10)
	_, err := fx.uc.Approve(context.Background(), admin, record.ID)
	require.NoError(t, err)

	_, err = fx.uc.EditDates(context.Background(), admin, record.ID, dto.EditDisbursementDatesRequest{
		RequestDate: "2026-08-01T09:00:00Z",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"en una solicitud resuelta la fecha de resolución es obligatoria")
}

func TestEditDates_PendienteNoLlevaFechaDeResolucion(t *testing.T) {
	fx := newFixture()
	record := fx.createPending(t, 10)

	edited, err := fx.uc.EditDates(context.Background(), admin, record.ID, dto.EditDisbursementDatesRequest{
		RequestDate: "2026-08-01T09:00:00Z",
	})
	require.NoError(t, err)
	assert.Nil(t, edited.ApprovalDate)
}
