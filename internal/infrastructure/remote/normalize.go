package remote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/entity"
)

// wireMedicine forma laxa del documento remoto (snake_case, identificadores de
// documento anidados). Solo existe dentro del gateway: el resto del sistema
// trabaja con entity.Medicine estricta.
type wireMedicine struct {
	OID            *oidRef         `json:"_id,omitempty"`
	LocalID        string          `json:"local_id,omitempty"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	BatchNumber    string          `json:"batch_number"`
	ExpiryDate     string          `json:"expiry_date"`
	Quantity       int64           `json:"quantity"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	WholesalerName string          `json:"wholesaler_name"`
	PurchaseDate   string          `json:"purchase_date"`
}

// oidRef identificador de documento remoto ({"$oid": "..."}).
type oidRef struct {
	Hex string `json:"$oid"`
}

// normalize convierte el payload laxo en la entidad estricta. Es el ÚNICO punto
// que confía en entrada sin tipar: aquí se normaliza el identificador remoto a
// la forma local, se acotan cantidades y precios negativos y se rechaza lo que
// no tenga los campos obligatorios.
func normalize(w wireMedicine, hospitalID string) (entity.Medicine, error) {
	id := w.LocalID
	if id == "" && w.OID != nil {
		id = w.OID.Hex
	}
	if id == "" || w.Name == "" || w.BatchNumber == "" {
		return entity.Medicine{}, fmt.Errorf("%w: faltan id, name o batch_number", domain.ErrMalformedRecord)
	}

	tenant := w.UserID
	if tenant == "" {
		tenant = hospitalID
	}

	qty := w.Quantity
	if qty < 0 {
		qty = 0
	}
	purchase := w.PurchasePrice
	if purchase.LessThan(decimal.Zero) {
		purchase = decimal.Zero
	}
	selling := w.SellingPrice
	if selling.LessThan(decimal.Zero) {
		selling = decimal.Zero
	}

	return entity.Medicine{
		ID:             id,
		HospitalID:     tenant,
		Name:           w.Name,
		BatchNumber:    w.BatchNumber,
		ExpiryDate:     w.ExpiryDate,
		Quantity:       qty,
		PurchasePrice:  purchase,
		SellingPrice:   selling,
		WholesalerName: w.WholesalerName,
		PurchaseDate:   w.PurchaseDate,
	}, nil
}

// toWire convierte la entidad local a la forma snake_case del remoto.
func toWire(m entity.Medicine) wireMedicine {
	return wireMedicine{
		LocalID:        m.ID,
		UserID:         m.HospitalID,
		Name:           m.Name,
		BatchNumber:    m.BatchNumber,
		ExpiryDate:     m.ExpiryDate,
		Quantity:       m.Quantity,
		PurchasePrice:  m.PurchasePrice,
		SellingPrice:   m.SellingPrice,
		WholesalerName: m.WholesalerName,
		PurchaseDate:   m.PurchaseDate,
	}
}
