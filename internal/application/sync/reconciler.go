package sync

import (
	"context"
	"sync"
	"time"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/repository"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/pkg/logger"
)

// Reconciler empuja los registros de la caché local al almacén remoto,
// resolviendo crear-vs-actualizar por registro con una consulta de existencia.
// No hay estado "ya sincronizado" local: re-derivar el estado desde el remoto
// en cada pasada es autocurativo (un registro que falló ayer se reintenta hoy
// sin contabilidad extra), a costa de una ida y vuelta adicional por registro.
// El motor solo LEE la caché local; nunca la muta.
type Reconciler struct {
	repo   repository.MedicineRepository
	remote RemoteStore
	log    *logger.Logger
	obs    Observer

	// Serializa pasadas: dos reconciliaciones simultáneas no deben entrelazar
	// el par existencia→escritura de un mismo registro.
	mu sync.Mutex
}

// NewReconciler construye el motor de reconciliación. obs puede ser NopObserver.
func NewReconciler(repo repository.MedicineRepository, remote RemoteStore, obs Observer, log *logger.Logger) *Reconciler {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Reconciler{repo: repo, remote: remote, obs: obs, log: log}
}

// Result contadores de una pasada de reconciliación.
type Result struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Reconcile recorre la caché local y empuja cada registro al remoto. El fallo
// de un registro se registra y NO aborta el resto del lote: ese es el contrato
// central de aislamiento de fallos. Solo devuelve error si no puede enumerar
// la caché local o si el contexto se cancela a mitad de pasada.
func (r *Reconciler) Reconcile(ctx context.Context, hospitalID string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	medicines, err := r.repo.All(ctx)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i := range medicines {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		m := medicines[i]

		exists, err := r.remote.Exists(ctx, m.BatchNumber, m.Name, hospitalID)
		if err != nil {
			r.log.Warn().Err(err).Str("id", m.ID).Str("name", m.Name).Msg("reconciliación: consulta de existencia fallida, se continúa con el resto")
			res.Failed++
			continue
		}

		if exists {
			err = r.remote.Update(ctx, m)
		} else {
			err = r.remote.Insert(ctx, m)
		}
		if err != nil {
			r.log.Warn().Err(err).Str("id", m.ID).Str("name", m.Name).Bool("exists", exists).Msg("reconciliación: escritura remota fallida, se continúa con el resto")
			res.Failed++
			continue
		}
		res.Succeeded++
	}

	elapsed := time.Since(start)
	r.obs.ReconcilePass(res.Succeeded, res.Failed, elapsed)
	r.log.Info().
		Str("hospital_id", hospitalID).
		Int("succeeded", res.Succeeded).
		Int("failed", res.Failed).
		Dur("elapsed", elapsed).
		Msg("pasada de reconciliación terminada")
	return res, nil
}
