package view

import (
	"context"

	"github.com/google/uuid"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/entity"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/repository"
)

// Projector deriva la vista agrupada por (mayorista, fecha de compra) desde la
// caché local. La vista es de solo lectura y se recalcula en cada petición:
// las mutaciones pasan por las operaciones de Medicine, nunca por el grupo.
type Projector struct {
	repo repository.MedicineRepository
}

// NewProjector construye el proyector.
func NewProjector(repo repository.MedicineRepository) *Projector {
	return &Projector{repo: repo}
}

// Project agrupa el contenido actual de la caché por (wholesalerName,
// purchaseDate). El orden de los grupos sigue la primera aparición de la clave
// al recorrer All() y cada grupo conserva el orden relativo de sus registros.
// Un mayorista en blanco agrupa bajo la clave vacía; no es un error. El ID del
// grupo se sintetiza por proyección.
func (p *Projector) Project(ctx context.Context) ([]entity.WholesalerGroup, error) {
	medicines, err := p.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	groups := []entity.WholesalerGroup{}
	index := make(map[string]int, len(medicines))
	for _, m := range medicines {
		key := m.GroupKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, entity.WholesalerGroup{
				ID:             uuid.New().String(),
				WholesalerName: m.WholesalerName,
				PurchaseDate:   m.PurchaseDate,
			})
		}
		groups[i].Medicines = append(groups[i].Medicines, m)
	}
	return groups, nil
}
