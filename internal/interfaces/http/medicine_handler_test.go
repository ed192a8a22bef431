package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/inventory"
	appsync "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/sync"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/view"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/entity"
	httpiface "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/interfaces/http"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del API de comandos con app.Test de Fiber: los casos de uso son reales,
// solo la persistencia y el remoto son fakes en memoria. Cubren los códigos de
// estado y el contrato JSON que consume la UI de escritorio.
// ──────────────────────────────────────────────────────────────────────────────

type memRepo struct {
	items []entity.Medicine
}

func (r *memRepo) Get(_ context.Context, id string) (*entity.Medicine, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			m := r.items[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (r *memRepo) Put(_ context.Context, m *entity.Medicine) error {
	for i := range r.items {
		if r.items[i].ID == m.ID {
			r.items[i] = *m
			return nil
		}
	}
	r.items = append(r.items, *m)
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memRepo) All(_ context.Context) ([]entity.Medicine, error) {
	out := make([]entity.Medicine, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *memRepo) Search(_ context.Context, query string, limit, offset int) ([]entity.Medicine, error) {
	var out []entity.Medicine
	for _, m := range r.items {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(query)) {
			out = append(out, m)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) Clear(_ context.Context) error {
	r.items = nil
	return nil
}

type memRemote struct {
	medicines []entity.Medicine
	deleted   []string
}

func (s *memRemote) FetchAll(context.Context, string) ([]entity.Medicine, int, error) {
	return s.medicines, 0, nil
}
func (s *memRemote) Exists(context.Context, string, string, string) (bool, error) {
	return false, nil
}
func (s *memRemote) Insert(context.Context, entity.Medicine) error { return nil }
func (s *memRemote) Update(context.Context, entity.Medicine) error { return nil }
func (s *memRemote) Delete(_ context.Context, id, _ string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newApp(repo *memRepo, rem *memRemote) *fiber.App {
	log := logger.Nop()
	app := fiber.New()
	httpiface.Router(app, httpiface.RouterDeps{
		StockUC:    inventory.NewStockUseCase(repo, rem, log),
		Projector:  view.NewProjector(repo),
		Loader:     appsync.NewLoader(repo, rem, log),
		Reconciler: appsync.NewReconciler(repo, rem, nil, log),
		HospitalID: "hosp-1",
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// TestCreate_AltaValidaDevuelve201 el alta correcta responde 201 con el
// registro ya identificado.
func TestCreate_AltaValidaDevuelve201(t *testing.T) {
	app := newApp(&memRepo{}, &memRemote{})

	resp := doJSON(t, app, fiber.MethodPost, "/api/medicines/", `{
		"name": "Cetirizina 10mg",
		"batchNumber": "CET-8",
		"wholesalerName": "Droguería Uno",
		"quantity": 25,
		"purchasePrice": "2.10",
		"sellingPrice": "3.90"
	}`)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out entity.Medicine
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "hosp-1", out.HospitalID, "el tenant lo fija el proceso, no el cliente")
}

// TestCreate_SinNombreDevuelve400 la validación del caso de uso sale como 400
// con código VALIDATION.
func TestCreate_SinNombreDevuelve400(t *testing.T) {
	app := newApp(&memRepo{}, &memRemote{})

	resp := doJSON(t, app, fiber.MethodPost, "/api/medicines/", `{"batchNumber": "X-1", "wholesalerName": "D"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out["code"])
}

// TestGetByID_InexistenteDevuelve404.
func TestGetByID_InexistenteDevuelve404(t *testing.T) {
	app := newApp(&memRepo{}, &memRemote{})

	resp := doJSON(t, app, fiber.MethodGet, "/api/medicines/no-existe", "")

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// TestUpdate_ParcialDevuelveRegistroActualizado.
func TestUpdate_ParcialDevuelveRegistroActualizado(t *testing.T) {
	repo := &memRepo{items: []entity.Medicine{{
		ID: "med-1", HospitalID: "hosp-1", Name: "Original", BatchNumber: "B-1", WholesalerName: "D",
	}}}
	app := newApp(repo, &memRemote{})

	resp := doJSON(t, app, fiber.MethodPut, "/api/medicines/med-1", `{"quantity": -4}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out entity.Medicine
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Zero(t, out.Quantity, "la cantidad negativa entra acotada a 0")
	assert.Equal(t, "Original", out.Name)
}

// TestDelete_Devuelve204YPropagaAlRemoto.
func TestDelete_Devuelve204YPropagaAlRemoto(t *testing.T) {
	repo := &memRepo{items: []entity.Medicine{{
		ID: "med-1", HospitalID: "hosp-1", Name: "N", BatchNumber: "B", WholesalerName: "D",
	}}}
	rem := &memRemote{}
	app := newApp(repo, rem)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/medicines/med-1", "")

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, repo.items)
	assert.Equal(t, []string{"med-1"}, rem.deleted)
}

// TestSearch_FiltraPorSubcadena.
func TestSearch_FiltraPorSubcadena(t *testing.T) {
	repo := &memRepo{items: []entity.Medicine{
		{ID: "1", Name: "Amoxicilina", BatchNumber: "B1"},
		{ID: "2", Name: "Paracetamol", BatchNumber: "B2"},
	}}
	app := newApp(repo, &memRemote{})

	resp := doJSON(t, app, fiber.MethodGet, "/api/medicines/search?q=amox", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []entity.Medicine
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "Amoxicilina", out[0].Name)
}

// TestGroups_DevuelveProyeccionAgrupada la ruta /wholesalers expone la vista
// derivada con los medicamentos anidados por grupo.
func TestGroups_DevuelveProyeccionAgrupada(t *testing.T) {
	repo := &memRepo{items: []entity.Medicine{
		{ID: "1", Name: "A", BatchNumber: "B1", WholesalerName: "Norte", PurchaseDate: "2026-01-01"},
		{ID: "2", Name: "B", BatchNumber: "B2", WholesalerName: "Norte", PurchaseDate: "2026-01-01"},
		{ID: "3", Name: "C", BatchNumber: "B3", WholesalerName: "Sur", PurchaseDate: "2026-01-02"},
	}}
	app := newApp(repo, &memRemote{})

	resp := doJSON(t, app, fiber.MethodGet, "/api/wholesalers", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []entity.WholesalerGroup
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, "Norte", out[0].WholesalerName)
	assert.Len(t, out[0].Medicines, 2)
}

// TestSyncReconcile_DevuelveContadores el endpoint manual devuelve los mismos
// contadores que la pasada interna.
func TestSyncReconcile_DevuelveContadores(t *testing.T) {
	repo := &memRepo{items: []entity.Medicine{
		{ID: "1", Name: "A", BatchNumber: "B1", WholesalerName: "D"},
	}}
	app := newApp(repo, &memRemote{})

	resp := doJSON(t, app, fiber.MethodPost, "/api/sync/reconcile", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out appsync.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, appsync.Result{Succeeded: 1, Failed: 0}, out)
}

// TestSyncRefresh_ReemplazaCacheLocal.
func TestSyncRefresh_ReemplazaCacheLocal(t *testing.T) {
	repo := &memRepo{items: []entity.Medicine{{ID: "viejo", Name: "V", BatchNumber: "B"}}}
	rem := &memRemote{medicines: []entity.Medicine{
		{ID: "nuevo-1", HospitalID: "hosp-1", Name: "N1", BatchNumber: "B1"},
		{ID: "nuevo-2", HospitalID: "hosp-1", Name: "N2", BatchNumber: "B2"},
	}}
	app := newApp(repo, rem)

	resp := doJSON(t, app, fiber.MethodPost, "/api/sync/refresh", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, repo.items, 2)
	assert.Equal(t, "nuevo-1", repo.items[0].ID)
}
