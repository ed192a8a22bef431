package sync

import (
	"context"
)

// MirrorResult resultado de una pasada de espejo (pull con borrados).
type MirrorResult struct {
	Upserted int // registros remotos escritos (nuevos o actualizados) en la caché
	Deleted  int // registros locales eliminados por no existir ya en remoto
	Skipped  int // payloads remotos malformados descartados
}

// Mirror sincroniza la caché local contra el remoto mezclando en sitio, al
// contrario que Refresh: upsert de cada registro remoto y borrado de los
// locales que ya no existen allí. Lo usan las instalaciones de solo lectura
// (consultorio del médico), donde el remoto es la fuente de verdad y no hay
// ediciones locales pendientes que conservar.
func (l *Loader) Mirror(ctx context.Context, hospitalID string) (MirrorResult, error) {
	medicines, skipped, err := l.remote.FetchAll(ctx, hospitalID)
	if err != nil {
		return MirrorResult{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	local, err := l.repo.All(ctx)
	if err != nil {
		return MirrorResult{}, err
	}

	res := MirrorResult{Skipped: skipped}
	remoteIDs := make(map[string]struct{}, len(medicines))
	for i := range medicines {
		remoteIDs[medicines[i].ID] = struct{}{}
		if err := l.repo.Put(ctx, &medicines[i]); err != nil {
			return res, err
		}
		res.Upserted++
	}

	for i := range local {
		if _, ok := remoteIDs[local[i].ID]; ok {
			continue
		}
		if err := l.repo.Delete(ctx, local[i].ID); err != nil {
			return res, err
		}
		res.Deleted++
	}

	l.log.Info().
		Str("hospital_id", hospitalID).
		Int("upserted", res.Upserted).
		Int("deleted", res.Deleted).
		Int("skipped", res.Skipped).
		Msg("caché local espejada contra remoto")
	return res, nil
}
