package repository

import (
	"context"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/entity"
)

// MedicineRepository define el puerto de persistencia local para Medicine (DIP).
// Es la caché embebida que sobrevive reinicios del proceso: todas las operaciones
// son locales (sin red) y un fallo de escritura se propaga al caller, nunca se traga.
type MedicineRepository interface {
	// Get devuelve el registro por ID, o nil si no existe.
	Get(ctx context.Context, id string) (*entity.Medicine, error)
	// Put inserta o reemplaza el registro (upsert por ID).
	Put(ctx context.Context, m *entity.Medicine) error
	// Delete elimina el registro por ID. No es error si no existe.
	Delete(ctx context.Context, id string) error
	// All devuelve todos los registros en orden de inserción.
	All(ctx context.Context) ([]entity.Medicine, error)
	// Search busca por subcadena de nombre (case-insensitive) con paginación.
	Search(ctx context.Context, query string, limit, offset int) ([]entity.Medicine, error)
	// Clear vacía la tabla completa.
	Clear(ctx context.Context) error
}
