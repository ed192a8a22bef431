package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/polling"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/entity"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/repository"
)

var (
	_ repository.MedicineRepository = (*MedicineRepo)(nil)
	_ polling.CountSource           = (*MedicineRepo)(nil)
)

// MedicineRepo implementación del puerto MedicineRepository sobre SQLite embebida.
// All() devuelve los registros en orden de inserción (rowid), del que dependen
// la proyección por mayorista y el motor de reconciliación.
type MedicineRepo struct {
	db *sqlx.DB
}

// NewMedicineRepository construye el adaptador de persistencia local.
func NewMedicineRepository(db *sqlx.DB) *MedicineRepo {
	return &MedicineRepo{db: db}
}

const medicineColumns = `id, hospital_id, name, batch_number, expiry_date, quantity, purchase_price, selling_price, wholesaler_name, purchase_date`

// Get obtiene un medicamento por ID, o nil si no existe.
func (r *MedicineRepo) Get(ctx context.Context, id string) (*entity.Medicine, error) {
	var m entity.Medicine
	err := r.db.GetContext(ctx, &m,
		`SELECT `+medicineColumns+` FROM medicines WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: leer medicamento: %v", domain.ErrStorage, err)
	}
	return &m, nil
}

// Put inserta o reemplaza el medicamento. El upsert conserva el rowid original,
// así que editar un registro no altera su posición en All().
func (r *MedicineRepo) Put(ctx context.Context, m *entity.Medicine) error {
	if m.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medicines (`+medicineColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hospital_id = excluded.hospital_id,
			name = excluded.name,
			batch_number = excluded.batch_number,
			expiry_date = excluded.expiry_date,
			quantity = excluded.quantity,
			purchase_price = excluded.purchase_price,
			selling_price = excluded.selling_price,
			wholesaler_name = excluded.wholesaler_name,
			purchase_date = excluded.purchase_date`,
		m.ID, m.HospitalID, m.Name, m.BatchNumber, m.ExpiryDate,
		m.Quantity, m.PurchasePrice, m.SellingPrice, m.WholesalerName, m.PurchaseDate,
	)
	if err != nil {
		return fmt.Errorf("%w: guardar medicamento: %v", domain.ErrStorage, err)
	}
	return nil
}

// Delete elimina un medicamento por ID. No es error si no existía.
func (r *MedicineRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: eliminar medicamento: %v", domain.ErrStorage, err)
	}
	return nil
}

// All devuelve todos los medicamentos en orden de inserción.
func (r *MedicineRepo) All(ctx context.Context) ([]entity.Medicine, error) {
	list := []entity.Medicine{}
	err := r.db.SelectContext(ctx, &list,
		`SELECT `+medicineColumns+` FROM medicines ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: listar medicamentos: %v", domain.ErrStorage, err)
	}
	return list, nil
}

// Search busca por subcadena de nombre sin distinguir mayúsculas, con paginación.
func (r *MedicineRepo) Search(ctx context.Context, query string, limit, offset int) ([]entity.Medicine, error) {
	list := []entity.Medicine{}
	err := r.db.SelectContext(ctx, &list, `
		SELECT `+medicineColumns+` FROM medicines
		WHERE name LIKE '%' || ? || '%'
		ORDER BY rowid LIMIT ? OFFSET ?`,
		query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar medicamentos: %v", domain.ErrStorage, err)
	}
	return list, nil
}

// Count total de registros del tenant; alimenta el detector de llegadas.
func (r *MedicineRepo) Count(ctx context.Context, hospitalID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM medicines WHERE hospital_id = ?`, hospitalID)
	if err != nil {
		return 0, fmt.Errorf("%w: contar medicamentos: %v", domain.ErrStorage, err)
	}
	return n, nil
}

// Clear vacía la tabla completa (usado por Refresh antes del bulk put).
func (r *MedicineRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM medicines`); err != nil {
		return fmt.Errorf("%w: vaciar caché local: %v", domain.ErrStorage, err)
	}
	return nil
}
