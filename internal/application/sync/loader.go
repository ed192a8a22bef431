package sync

import (
	"context"
	"sync"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/repository"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/pkg/logger"
)

// Loader puebla y refresca la caché local desde el almacén remoto, siempre
// acotado al hospital del login. Local-first: si la caché ya tiene datos, el
// arranque no toca la red.
type Loader struct {
	repo   repository.MedicineRepository
	remote RemoteStore
	log    *logger.Logger

	// Serializa Refresh/Mirror concurrentes: la unidad clear + bulk put no debe
	// entrelazarse con otra igual. Las lecturas no se bloquean.
	mu sync.Mutex
}

// NewLoader construye el cargador de caché.
func NewLoader(repo repository.MedicineRepository, remote RemoteStore, log *logger.Logger) *Loader {
	return &Loader{repo: repo, remote: remote, log: log}
}

// LoadResult resultado de una carga desde remoto.
type LoadResult struct {
	Loaded  int // registros escritos en la caché local
	Skipped int // payloads remotos malformados descartados por el gateway
}

// Initialize arranque local-first: si la caché ya contiene registros no hace
// nada; si está vacía descarga el snapshot remoto. Un fallo remoto con caché
// vacía se propaga porque la UI no tendría nada que mostrar.
func (l *Loader) Initialize(ctx context.Context, hospitalID string) (LoadResult, error) {
	existing, err := l.repo.All(ctx)
	if err != nil {
		return LoadResult{}, err
	}
	if len(existing) > 0 {
		l.log.Debug().Int("cached", len(existing)).Msg("caché local ya poblada, se omite descarga")
		return LoadResult{}, nil
	}
	return l.Refresh(ctx, hospitalID)
}

// Refresh reemplaza la caché local con el snapshot remoto completo (clear +
// bulk put, no merge). Si la inserción falla a medias la caché queda donde
// llegó; el siguiente Refresh la sobreescribe a un snapshot consistente.
func (l *Loader) Refresh(ctx context.Context, hospitalID string) (LoadResult, error) {
	medicines, skipped, err := l.remote.FetchAll(ctx, hospitalID)
	if err != nil {
		return LoadResult{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.repo.Clear(ctx); err != nil {
		return LoadResult{}, err
	}
	for i := range medicines {
		if err := l.repo.Put(ctx, &medicines[i]); err != nil {
			return LoadResult{Loaded: i, Skipped: skipped}, err
		}
	}
	if skipped > 0 {
		l.log.Warn().Int("skipped", skipped).Msg("registros remotos malformados omitidos en el refresh")
	}
	l.log.Info().Str("hospital_id", hospitalID).Int("loaded", len(medicines)).Msg("caché local refrescada desde remoto")
	return LoadResult{Loaded: len(medicines), Skipped: skipped}, nil
}
