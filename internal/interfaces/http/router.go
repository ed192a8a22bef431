package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/inventory"
	appsync "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/sync"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/view"
)

// RouterDeps dependencias para el router de comandos.
type RouterDeps struct {
	StockUC    *inventory.StockUseCase
	Projector  *view.Projector
	Loader     *appsync.Loader
	Reconciler *appsync.Reconciler
	HospitalID string
}

// Router registra los comandos locales que consume la UI de escritorio.
// Sin autenticación: el listener ata a loopback y el login ya ocurrió contra
// el backend del hospital antes de arrancar este proceso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	medicines := api.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.StockUC, deps.Projector, deps.HospitalID)
	medicines.Get("/", medicineHandler.List)
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/search", medicineHandler.Search)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Delete("/:id", medicineHandler.Delete)

	// Proyección de solo lectura por (mayorista, fecha de compra)
	api.Get("/wholesalers", medicineHandler.Groups)

	// Sincronización manual
	syncGroup := api.Group("/sync")
	syncHandler := NewSyncHandler(deps.Loader, deps.Reconciler, deps.HospitalID)
	syncGroup.Post("/reconcile", syncHandler.Reconcile)
	syncGroup.Post("/refresh", syncHandler.Refresh)
	syncGroup.Post("/mirror", syncHandler.Mirror)
}
