package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/application/inventory"
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

// fakeSnapshotStore simula el almacén externo clave-valor.
type fakeSnapshotStore struct {
	writes int
	fail   bool
	last   []entity.Drug
}

func (f *fakeSnapshotStore) ReadAll(_ context.Context) ([]entity.Drug, bool, error) {
	return f.last, len(f.last) > 0, nil
}

func (f *fakeSnapshotStore) WriteAll(_ context.Context, drugs []entity.Drug) error {
	if f.fail {
		return errors.New("almacén externo caído")
	}
	f.writes++
	f.last = drugs
	return nil
}

type fixture struct {
	uc       *inventory.UseCase
	store    *memory.Store
	drugRepo *memory.DrugRepo
	txRepo   *memory.TransactionRepo
	snap     *fakeSnapshotStore
}

func newFixture() *fixture {
	store := memory.NewStore()
	drugRepo := memory.NewDrugRepository(store)
	txRepo := memory.NewTransactionRepository(store)
	snap := &fakeSnapshotStore{}
	uc := inventory.NewUseCase(memory.NewTxRunner(store), drugRepo, snap)
	return &fixture{uc: uc, store: store, drugRepo: drugRepo, txRepo: txRepo, snap: snap}
}

func validCreate() dto.CreateDrugRequest {
	return dto.CreateDrugRequest{
		Name:       "Paracetamol 500mg",
		Quantity:   100,
		Unit:       "tabletas",
		ExpiryDate: "2027-05-01",
		Location:   "Estante A, Nivel 1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddDrug
// ──────────────────────────────────────────────────────────────────────────────

func TestAddDrug_CreaFichaYTransaccionInitial(t *testing.T) {
	fx := newFixture()

	drug, err := fx.uc.AddDrug(context.Background(), admin, validCreate())
	require.NoError(t, err)
	require.NotEmpty(t, drug.ID)

	txs, err := fx.txRepo.Recent(10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionTypeInitial, txs[0].Type)
	assert.Equal(t, 100, txs[0].QuantityChange)
	assert.Equal(t, 100, txs[0].QuantityAfter,
		"en la transacción inicial el delta y la cantidad resultante coinciden")
	assert.Equal(t, "admin", txs[0].User)

	assert.Equal(t, 1, fx.snap.writes, "la colección debe persistirse tras la mutación")
}

func TestAddDrug_UsuarioNoAdmin_EsRechazado(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.AddDrug(context.Background(), regular, validCreate())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	drugs, _ := fx.drugRepo.List()
	assert.Empty(t, drugs, "un rechazo de rol no debe dejar rastro")
	assert.Zero(t, fx.snap.writes)
}

func TestAddDrug_CamposObligatorios(t *testing.T) {
	fx := newFixture()

	casos := []dto.CreateDrugRequest{
		{Quantity: 10, Unit: "tabletas", ExpiryDate: "2027-05-01", Location: "A"},   // sin nombre
		{Name: "X", Quantity: 10, ExpiryDate: "2027-05-01", Location: "A"},          // sin unidad
		{Name: "X", Quantity: 10, Unit: "tabletas", Location: "A"},                  // sin fecha
		{Name: "X", Quantity: 10, Unit: "tabletas", ExpiryDate: "01/05/2027",        // fecha mal formada
			Location: "A"},
		{Name: "X", Quantity: -5, Unit: "tabletas", ExpiryDate: "2027-05-01",        // cantidad negativa
			Location: "A"},
	}
	for _, in := range casos {
		_, err := fx.uc.AddDrug(context.Background(), admin, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateDrug
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateDrug_CambioDeCantidadRegistraAjuste(t *testing.T) {
	fx := newFixture()
	drug, err := fx.uc.AddDrug(context.Background(), admin, validCreate())
	require.NoError(t, err)

	in := dto.UpdateDrugRequest{
		Name: drug.Name, Quantity: 80, Unit: drug.Unit,
		ExpiryDate: "2027-05-01", Location: drug.Location,
	}
	updated, err := fx.uc.UpdateDrug(context.Background(), admin, drug.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 80, updated.Quantity)

	txs, _ := fx.txRepo.Recent(10)
	require.Len(t, txs, 2, "alta + ajuste por edición")
	assert.Equal(t, entity.TransactionTypeAdjustment, txs[0].Type)
	assert.Equal(t, -20, txs[0].QuantityChange)
	assert.Equal(t, 80, txs[0].QuantityAfter)
}

func TestUpdateDrug_SinCambioDeCantidad_NoRegistraAjuste(t *testing.T) {
	fx := newFixture()
	drug, err := fx.uc.AddDrug(context.Background(), admin, validCreate())
	require.NoError(t, err)

	in := dto.UpdateDrugRequest{
		Name: "Paracetamol 500mg genérico", Quantity: drug.Quantity, Unit: drug.Unit,
		ExpiryDate: "2027-05-01", Location: drug.Location,
	}
	_, err = fx.uc.UpdateDrug(context.Background(), admin, drug.ID, in)
	require.NoError(t, err)

	txs, _ := fx.txRepo.Recent(10)
	assert.Len(t, txs, 1, "editar la ficha sin tocar la cantidad no genera movimiento")
}

func TestUpdateDrug_Inexistente(t *testing.T) {
	fx := newFixture()
	in := dto.UpdateDrugRequest{
		Name: "X", Quantity: 1, Unit: "u", ExpiryDate: "2027-05-01", Location: "A",
	}
	_, err := fx.uc.UpdateDrug(context.Background(), admin, "no-existe", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_MotivoObligatorio(t *testing.T) {
	fx := newFixture()
	drug, _ := fx.uc.AddDrug(context.Background(), admin, validCreate())

	_, err := fx.uc.AdjustStock(context.Background(), admin, drug.ID, -10, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	recargado, _ := fx.uc.Get(drug.ID)
	assert.Equal(t, 100, recargado.Quantity, "un ajuste rechazado no altera la cantidad")
}

func TestAdjustStock_ResultadoNegativo_SinEfecto(t *testing.T) {
	fx := newFixture()
	drug, _ := fx.uc.AddDrug(context.Background(), admin, validCreate())
	writesBefore := fx.snap.writes

	_, err := fx.uc.AdjustStock(context.Background(), admin, drug.ID, -150, "merma")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	recargado, _ := fx.uc.Get(drug.ID)
	assert.Equal(t, 100, recargado.Quantity)
	txs, _ := fx.txRepo.Recent(10)
	assert.Len(t, txs, 1, "el libro no debe registrar el intento fallido")
	assert.Equal(t, writesBefore, fx.snap.writes)
}

func TestAdjustStock_DeltaConSigno(t *testing.T) {
	fx := newFixture()
	drug, _ := fx.uc.AddDrug(context.Background(), admin, validCreate())

	adjusted, err := fx.uc.AdjustStock(context.Background(), admin, drug.ID, -30, "rotura en bodega")
	require.NoError(t, err)
	assert.Equal(t, 70, adjusted.Quantity)

	txs, _ := fx.txRepo.Recent(1)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionTypeAdjustment, txs[0].Type)
	assert.Equal(t, -30, txs[0].QuantityChange)
	assert.Equal(t, "rotura en bodega", txs[0].Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteDrug
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteDrug_RegistraAjusteDeCierre(t *testing.T) {
	fx := newFixture()
	drug, _ := fx.uc.AddDrug(context.Background(), admin, validCreate())

	require.NoError(t, fx.uc.DeleteDrug(context.Background(), admin, drug.ID))

	_, err := fx.uc.Get(drug.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	txs, _ := fx.txRepo.Recent(10)
	require.Len(t, txs, 2)
	assert.Equal(t, entity.TransactionTypeAdjustment, txs[0].Type)
	assert.Equal(t, -100, txs[0].QuantityChange)
	assert.Zero(t, txs[0].QuantityAfter, "el cierre lleva la cantidad exactamente a cero")
	assert.Equal(t, drug.Name, txs[0].DrugName,
		"el historial conserva el nombre aunque la ficha ya no exista")
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkImport
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkImport_TimestampCompartidoYTipoStockIn(t *testing.T) {
	fx := newFixture()
	rows := []dto.ImportDrugRow{
		{Name: "Ibuprofeno 400mg", Quantity: 50, Unit: "tabletas", ExpiryDate: "2027-01-15", Location: "B1"},
		{Name: "Loratadina 10mg", Quantity: 30, Unit: "tabletas", ExpiryDate: "2027-03-20", Location: "C2"},
		{Name: "Omeprazol 20mg", Quantity: 40, Unit: "cápsulas", ExpiryDate: "2027-06-01", Location: "B2"},
	}

	drugs, err := fx.uc.BulkImport(context.Background(), admin, rows)
	require.NoError(t, err)
	assert.Len(t, drugs, 3)

	txs, _ := fx.txRepo.Recent(10)
	require.Len(t, txs, 3)
	var stamp time.Time
	for i, tx := range txs {
		assert.Equal(t, entity.TransactionTypeStockIn, tx.Type)
		assert.Equal(t, "admin", tx.User)
		if i == 0 {
			stamp = tx.Timestamp
			continue
		}
		assert.True(t, tx.Timestamp.Equal(stamp),
			"todas las entradas del lote comparten el mismo timestamp de importación")
	}
	assert.Equal(t, 1, fx.snap.writes, "una sola escritura para todo el lote")
}

func TestBulkImport_FilaInvalidaDescartaElLote(t *testing.T) {
	fx := newFixture()
	rows := []dto.ImportDrugRow{
		{Name: "Válido", Quantity: 50, Unit: "tabletas", ExpiryDate: "2027-01-15", Location: "B1"},
		{Name: "", Quantity: 30, Unit: "tabletas", ExpiryDate: "2027-03-20", Location: "C2"},
	}

	_, err := fx.uc.BulkImport(context.Background(), admin, rows)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	drugs, _ := fx.drugRepo.List()
	assert.Empty(t, drugs, "todo o nada: la fila válida tampoco entra")
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia externa
// ──────────────────────────────────────────────────────────────────────────────

func TestPersistencia_FalloSeReportaComoIntegracion(t *testing.T) {
	fx := newFixture()
	fx.snap.fail = true

	_, err := fx.uc.AddDrug(context.Background(), admin, validCreate())
	assert.ErrorIs(t, err, domain.ErrIntegration)

	// La mutación en memoria se conserva: quien llama decide reintentar.
	drugs, _ := fx.drugRepo.List()
	assert.Len(t, drugs, 1)
	txs, _ := fx.txRepo.Recent(10)
	assert.Len(t, txs, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante: la cantidad actual es la suma de los deltas del libro
// ──────────────────────────────────────────────────────────────────────────────

func TestLibro_SumaDeDeltasIgualACantidadActual(t *testing.T) {
	fx := newFixture()
	drug, _ := fx.uc.AddDrug(context.Background(), admin, validCreate())

	_, err := fx.uc.AdjustStock(context.Background(), admin, drug.ID, -30, "dispensación manual")
	require.NoError(t, err)
	_, err = fx.uc.AdjustStock(context.Background(), admin, drug.ID, 15, "devolución")
	require.NoError(t, err)

	recargado, _ := fx.uc.Get(drug.ID)

	txs, _ := fx.txRepo.Recent(10)
	sum := 0
	for _, tx := range txs {
		if tx.DrugID == drug.ID {
			sum += tx.QuantityChange
		}
	}
	assert.Equal(t, recargado.Quantity, sum)

	// Y cada entrada registra la cantidad exacta tras su evento (más reciente primero).
	assert.Equal(t, 85, txs[0].QuantityAfter)
	assert.Equal(t, 70, txs[1].QuantityAfter)
	assert.Equal(t, 100, txs[2].QuantityAfter)
}
