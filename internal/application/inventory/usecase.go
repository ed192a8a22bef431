package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/dto"
	appsync "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/sync"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/entity"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/repository"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/pkg/logger"
)

// StockUseCase operaciones de edición directa sobre la caché local (alta,
// edición, borrado, búsqueda), disparadas por acciones del usuario. Las
// escrituras son local-first: quedan pendientes hasta que el motor de
// reconciliación las empuje al remoto. El borrado es la excepción: intenta
// además el borrado remoto inmediato (mejor esfuerzo, no atómico).
type StockUseCase struct {
	repo   repository.MedicineRepository
	remote appsync.RemoteStore
	log    *logger.Logger
}

// NewStockUseCase construye el caso de uso de stock.
func NewStockUseCase(repo repository.MedicineRepository, remote appsync.RemoteStore, log *logger.Logger) *StockUseCase {
	return &StockUseCase{repo: repo, remote: remote, log: log}
}

// Add valida y guarda un medicamento nuevo en la caché local. La cantidad
// negativa se acota a 0 y los precios negativos se rechazan.
func (uc *StockUseCase) Add(ctx context.Context, hospitalID string, in dto.AddMedicineRequest) (*entity.Medicine, error) {
	if hospitalID == "" || in.Name == "" || in.BatchNumber == "" || in.WholesalerName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.LessThan(decimal.Zero) || in.SellingPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.Medicine{
		ID:             uuid.New().String(),
		HospitalID:     hospitalID,
		Name:           in.Name,
		BatchNumber:    in.BatchNumber,
		ExpiryDate:     in.ExpiryDate,
		Quantity:       clampQuantity(in.Quantity),
		PurchasePrice:  in.PurchasePrice,
		SellingPrice:   in.SellingPrice,
		WholesalerName: in.WholesalerName,
		PurchaseDate:   in.PurchaseDate,
	}
	if err := uc.repo.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update edición parcial de un medicamento existente. Devuelve nil si no existe.
// Una cantidad negativa se acota a 0; nunca se persiste un valor negativo.
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.UpdateMedicineRequest) (*entity.Medicine, error) {
	m, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.BatchNumber != nil {
		m.BatchNumber = *in.BatchNumber
	}
	if in.ExpiryDate != nil {
		m.ExpiryDate = *in.ExpiryDate
	}
	if in.Quantity != nil {
		m.Quantity = clampQuantity(*in.Quantity)
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		m.PurchasePrice = *in.PurchasePrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		m.SellingPrice = *in.SellingPrice
	}
	if in.WholesalerName != nil {
		m.WholesalerName = *in.WholesalerName
	}
	if in.PurchaseDate != nil {
		m.PurchaseDate = *in.PurchaseDate
	}
	if err := uc.repo.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete elimina el medicamento de la caché local y después intenta el borrado
// remoto. Las dos mitades no son atómicas: si el remoto falla, el borrado
// local queda firme y el fallo solo se registra (el remoto conserva un
// documento huérfano hasta una limpieza manual; riesgo aceptado).
func (uc *StockUseCase) Delete(ctx context.Context, id, hospitalID string) error {
	m, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.remote.Delete(ctx, id, hospitalID); err != nil {
		uc.log.Warn().Err(err).Str("id", id).Msg("borrado remoto fallido tras borrado local")
	}
	return nil
}

// Get obtiene un medicamento por ID, o nil si no existe.
func (uc *StockUseCase) Get(ctx context.Context, id string) (*entity.Medicine, error) {
	return uc.repo.Get(ctx, id)
}

// List devuelve todos los medicamentos en orden de inserción.
func (uc *StockUseCase) List(ctx context.Context) ([]entity.Medicine, error) {
	return uc.repo.All(ctx)
}

// Search busca por subcadena de nombre con paginación.
func (uc *StockUseCase) Search(ctx context.Context, in dto.SearchRequest) ([]entity.Medicine, error) {
	in.DefaultPage()
	return uc.repo.Search(ctx, in.Query, in.Limit, in.Offset)
}

// clampQuantity la cantidad nunca es negativa: los intentos se acotan a 0.
func clampQuantity(q int64) int64 {
	if q < 0 {
		return 0
	}
	return q
}
