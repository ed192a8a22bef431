package dto

import "github.com/shopspring/decimal"

// AddMedicineRequest alta de un medicamento en la caché local (pendiente de sync).
type AddMedicineRequest struct {
	Name           string          `json:"name"`
	BatchNumber    string          `json:"batchNumber"`
	ExpiryDate     string          `json:"expiryDate"`
	Quantity       int64           `json:"quantity"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice"`
	SellingPrice   decimal.Decimal `json:"sellingPrice"`
	WholesalerName string          `json:"wholesalerName"`
	PurchaseDate   string          `json:"purchaseDate"`
}

// UpdateMedicineRequest edición parcial; los campos nil no se tocan.
type UpdateMedicineRequest struct {
	Name           *string          `json:"name"`
	BatchNumber    *string          `json:"batchNumber"`
	ExpiryDate     *string          `json:"expiryDate"`
	Quantity       *int64           `json:"quantity"`
	PurchasePrice  *decimal.Decimal `json:"purchasePrice"`
	SellingPrice   *decimal.Decimal `json:"sellingPrice"`
	WholesalerName *string          `json:"wholesalerName"`
	PurchaseDate   *string          `json:"purchaseDate"`
}
