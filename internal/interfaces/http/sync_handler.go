package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/dto"
	appsync "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/sync"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain"
)

// SyncHandler comandos manuales de sincronización (botón "sync" de la UI).
// Las pasadas disparadas aquí conviven con las del planificador: Loader y
// Reconciler serializan internamente.
type SyncHandler struct {
	loader     *appsync.Loader
	reconciler *appsync.Reconciler
	hospitalID string
}

// NewSyncHandler construye el handler.
func NewSyncHandler(loader *appsync.Loader, reconciler *appsync.Reconciler, hospitalID string) *SyncHandler {
	return &SyncHandler{loader: loader, reconciler: reconciler, hospitalID: hospitalID}
}

// Reconcile empuja la caché local al remoto y devuelve los contadores.
// El fallo parcial no es error: viaja dentro de los contadores.
func (h *SyncHandler) Reconcile(c *fiber.Ctx) error {
	res, err := h.reconciler.Reconcile(c.Context(), h.hospitalID)
	if err != nil {
		return syncError(c, err)
	}
	return c.JSON(res)
}

// Refresh reemplaza la caché local con el snapshot remoto.
func (h *SyncHandler) Refresh(c *fiber.Ctx) error {
	res, err := h.loader.Refresh(c.Context(), h.hospitalID)
	if err != nil {
		return syncError(c, err)
	}
	return c.JSON(res)
}

// Mirror mezcla el remoto en la caché local, con borrados (instalación lectora).
func (h *SyncHandler) Mirror(c *fiber.Ctx) error {
	res, err := h.loader.Mirror(c.Context(), h.hospitalID)
	if err != nil {
		return syncError(c, err)
	}
	return c.JSON(res)
}

// syncError mapea la taxonomía de errores del núcleo a HTTP.
func syncError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REMOTE_UNAVAILABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrStorage):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
