package entity

import "github.com/shopspring/decimal"

// Medicine representa una unidad de stock de la farmacia, cacheada localmente
// y espejada al almacén remoto del hospital. Las fechas se manejan como
// cadenas ISO 8601 (YYYY-MM-DD), sin componente de hora, igual que el payload remoto.
type Medicine struct {
	ID             string          `db:"id" json:"id"`
	HospitalID     string          `db:"hospital_id" json:"hospitalId"`
	Name           string          `db:"name" json:"name"`
	BatchNumber    string          `db:"batch_number" json:"batchNumber"`
	ExpiryDate     string          `db:"expiry_date" json:"expiryDate"`
	Quantity       int64           `db:"quantity" json:"quantity"`
	PurchasePrice  decimal.Decimal `db:"purchase_price" json:"purchasePrice"`
	SellingPrice   decimal.Decimal `db:"selling_price" json:"sellingPrice"`
	WholesalerName string          `db:"wholesaler_name" json:"wholesalerName"`
	PurchaseDate   string          `db:"purchase_date" json:"purchaseDate"`
}

// GroupKey devuelve la clave compuesta (mayorista, fecha de compra) que determina
// a qué grupo pertenece el registro en la proyección. Un mayorista en blanco es
// válido: agrupa bajo la clave vacía.
func (m Medicine) GroupKey() string {
	return m.WholesalerName + "|" + m.PurchaseDate
}

// WholesalerGroup vista derivada de solo lectura: los medicamentos de un mayorista
// comprados en una misma fecha. No se persiste; se recalcula en cada proyección y
// su ID se sintetiza al construirla.
type WholesalerGroup struct {
	ID             string     `json:"id"`
	WholesalerName string     `json:"wholesalerName"`
	PurchaseDate   string     `json:"purchaseDate"`
	Medicines      []Medicine `json:"medicines"`
}
