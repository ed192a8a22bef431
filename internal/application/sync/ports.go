package sync

import (
	"context"
	"time"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/entity"
)

// RemoteStore define el puerto de salida hacia el almacén documental del hospital.
// La mecánica de transporte (codificación, autenticación, reintentos de red) es
// del adaptador; aquí solo viven las operaciones que el núcleo de sincronización
// consume. Para tests se inyecta un fake.
type RemoteStore interface {
	// FetchAll descarga todos los medicamentos del tenant. skipped cuenta los
	// payloads malformados que el gateway descartó al normalizar.
	FetchAll(ctx context.Context, hospitalID string) (medicines []entity.Medicine, skipped int, err error)
	// Exists verifica si ya hay un documento remoto con ese lote y nombre.
	Exists(ctx context.Context, batchNumber, name, hospitalID string) (bool, error)
	// Insert crea el documento remoto.
	Insert(ctx context.Context, m entity.Medicine) error
	// Update reemplaza el documento remoto.
	Update(ctx context.Context, m entity.Medicine) error
	// Delete elimina el documento remoto por ID local normalizado.
	Delete(ctx context.Context, id, hospitalID string) error
}

// Observer recibe el resultado de cada pasada de reconciliación para
// observabilidad (métricas). La implementación no debe bloquear.
type Observer interface {
	ReconcilePass(succeeded, failed int, elapsed time.Duration)
	RefreshPass(loaded, skipped int)
}

// NopObserver implementación vacía para cuando no se exponen métricas.
type NopObserver struct{}

func (NopObserver) ReconcilePass(int, int, time.Duration) {}
func (NopObserver) RefreshPass(int, int)                  {}
