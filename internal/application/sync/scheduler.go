package sync

import (
	"context"
	"time"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/polling"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/pkg/logger"
)

// Scheduler el temporizador externo al núcleo: dispara la reconciliación y el
// refresh periódicos hasta que el contexto se cancela. Las pasadas manuales
// (endpoint /sync) conviven sin riesgo porque Reconciler y Loader ya serializan
// sus propias pasadas.
type Scheduler struct {
	loader     *Loader
	reconciler *Reconciler
	detector   *polling.Detector // opcional: anuncio de llegadas tras cada refresh
	obs        Observer
	log        *logger.Logger

	hospitalID        string
	reconcileInterval time.Duration
	refreshInterval   time.Duration
}

// NewScheduler construye el planificador. detector puede ser nil.
func NewScheduler(
	loader *Loader,
	reconciler *Reconciler,
	detector *polling.Detector,
	obs Observer,
	log *logger.Logger,
	hospitalID string,
	reconcileInterval, refreshInterval time.Duration,
) *Scheduler {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Scheduler{
		loader:            loader,
		reconciler:        reconciler,
		detector:          detector,
		obs:               obs,
		log:               log,
		hospitalID:        hospitalID,
		reconcileInterval: reconcileInterval,
		refreshInterval:   refreshInterval,
	}
}

// Run bloquea ejecutando los ciclos periódicos hasta que ctx se cancela.
// Un fallo de ciclo se registra y se reintenta en el siguiente tick; nunca
// detiene el planificador.
func (s *Scheduler) Run(ctx context.Context) {
	reconcileTick := time.NewTicker(s.reconcileInterval)
	defer reconcileTick.Stop()
	refreshTick := time.NewTicker(s.refreshInterval)
	defer refreshTick.Stop()

	var pollState polling.State

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("planificador de sincronización detenido")
			return
		case <-reconcileTick.C:
			if _, err := s.reconciler.Reconcile(ctx, s.hospitalID); err != nil && ctx.Err() == nil {
				s.log.Error().Err(err).Msg("ciclo de reconciliación fallido, se reintenta en el siguiente tick")
			}
		case <-refreshTick.C:
			res, err := s.loader.Refresh(ctx, s.hospitalID)
			if err != nil {
				if ctx.Err() == nil {
					s.log.Error().Err(err).Msg("ciclo de refresh fallido, se reintenta en el siguiente tick")
				}
				continue
			}
			s.obs.RefreshPass(res.Loaded, res.Skipped)
			pollState = s.announceArrivals(ctx, pollState)
		}
	}
}

// announceArrivals compara el conteo local contra el del refresh anterior y
// registra las llegadas nuevas. El estado vive aquí, en el dueño del bucle.
func (s *Scheduler) announceArrivals(ctx context.Context, st polling.State) polling.State {
	if s.detector == nil {
		return st
	}
	arrivals, next, err := s.detector.Poll(ctx, s.hospitalID, st)
	if err != nil {
		s.log.Warn().Err(err).Msg("sondeo de llegadas fallido")
		return st
	}
	if arrivals > 0 {
		s.log.Info().Int("arrivals", arrivals).Msg("registros nuevos desde el último refresh")
	}
	return next
}
