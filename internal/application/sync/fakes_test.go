package sync_test

import (
	"context"
	"fmt"
	"strings"

	appsync "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/sync"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/entity"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los tests del núcleo de sincronización. El fakeRepo
// conserva el orden de inserción (igual que la caché real ordena por rowid) y
// permite inyectar fallos puntuales para ejercitar el aislamiento de errores.
// ──────────────────────────────────────────────────────────────────────────────

var (
	_ repository.MedicineRepository = (*fakeRepo)(nil)
	_ appsync.RemoteStore           = (*fakeRemote)(nil)
)

type fakeRepo struct {
	items []entity.Medicine

	allErr   error
	putErr   error
	clearErr error

	clearCalls int
	putCalls   int
}

func (f *fakeRepo) Get(_ context.Context, id string) (*entity.Medicine, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			m := f.items[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Put(_ context.Context, m *entity.Medicine) error {
	f.putCalls++
	if f.putErr != nil {
		return f.putErr
	}
	for i := range f.items {
		if f.items[i].ID == m.ID {
			f.items[i] = *m
			return nil
		}
	}
	f.items = append(f.items, *m)
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepo) All(_ context.Context) ([]entity.Medicine, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	out := make([]entity.Medicine, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeRepo) Search(_ context.Context, query string, limit, offset int) ([]entity.Medicine, error) {
	var out []entity.Medicine
	for _, m := range f.items {
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

func (f *fakeRepo) Clear(_ context.Context) error {
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.items = nil
	return nil
}

// fakeRemote simula el almacén documental. existing indexa por (lote|nombre)
// los documentos que Exists reporta como ya presentes.
type fakeRemote struct {
	fetchMedicines []entity.Medicine
	fetchSkipped   int
	fetchErr       error

	existing  map[string]bool
	existsErr map[string]error // fallos de Exists por (lote|nombre)
	insertErr map[string]error // fallos de Insert por ID
	updateErr map[string]error // fallos de Update por ID

	inserted []string
	updated  []string
	deleted  []string
}

func remoteKey(batchNumber, name string) string {
	return batchNumber + "|" + name
}

func (f *fakeRemote) FetchAll(context.Context, string) ([]entity.Medicine, int, error) {
	if f.fetchErr != nil {
		return nil, 0, f.fetchErr
	}
	return f.fetchMedicines, f.fetchSkipped, nil
}

func (f *fakeRemote) Exists(_ context.Context, batchNumber, name, _ string) (bool, error) {
	if err := f.existsErr[remoteKey(batchNumber, name)]; err != nil {
		return false, err
	}
	return f.existing[remoteKey(batchNumber, name)], nil
}

func (f *fakeRemote) Insert(_ context.Context, m entity.Medicine) error {
	if err := f.insertErr[m.ID]; err != nil {
		return err
	}
	f.inserted = append(f.inserted, m.ID)
	return nil
}

func (f *fakeRemote) Update(_ context.Context, m entity.Medicine) error {
	if err := f.updateErr[m.ID]; err != nil {
		return err
	}
	f.updated = append(f.updated, m.ID)
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, id, _ string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// medFixture construye un medicamento de prueba con valores distinguibles.
func medFixture(n int) entity.Medicine {
	return entity.Medicine{
		ID:             fmt.Sprintf("med-%03d", n),
		HospitalID:     "hosp-1",
		Name:           fmt.Sprintf("Paracetamol %d", n),
		BatchNumber:    fmt.Sprintf("LOTE-%03d", n),
		ExpiryDate:     "2027-06-30",
		Quantity:       int64(10 * n),
		WholesalerName: "Droguería Central",
		PurchaseDate:   "2026-01-15",
	}
}
