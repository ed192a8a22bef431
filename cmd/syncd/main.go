package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/inventory"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/polling"
	appsync "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/sync"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/view"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/infrastructure/metrics"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/infrastructure/remote"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/infrastructure/sqlite"
	httpRouter "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/interfaces/http"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/pkg/config"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("hospital_id", cfg.App.HospitalID).
		Msg("iniciando núcleo de sincronización")

	if cfg.App.HospitalID == "" {
		log.Fatal().Msg("HOSPITAL_ID es obligatorio (tenant del login)")
	}

	db, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("abrir caché local")
	}
	defer db.Close()

	medicineRepo := sqlite.NewMedicineRepository(db)
	gateway := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIKey, cfg.Remote.Timeout, log)

	registry := prometheus.NewRegistry()
	syncMetrics := metrics.New(registry)

	loader := appsync.NewLoader(medicineRepo, gateway, log)
	reconciler := appsync.NewReconciler(medicineRepo, gateway, syncMetrics, log)
	projector := view.NewProjector(medicineRepo)
	stockUC := inventory.NewStockUseCase(medicineRepo, gateway, log)
	detector := polling.NewDetector(medicineRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Arranque local-first: con caché poblada no hay viaje de red. Si la caché
	// está vacía y el remoto no responde, la UI queda sin datos hasta que el
	// planificador (o un refresh manual) lo consiga.
	if res, err := loader.Initialize(ctx, cfg.App.HospitalID); err != nil {
		log.Error().Err(err).Msg("carga inicial fallida; se reintentará en el siguiente ciclo")
	} else if res.Loaded > 0 {
		log.Info().Int("loaded", res.Loaded).Int("skipped", res.Skipped).Msg("carga inicial completada")
	}

	scheduler := appsync.NewScheduler(
		loader, reconciler, detector, syncMetrics, log,
		cfg.App.HospitalID, cfg.Sync.ReconcileInterval, cfg.Sync.RefreshInterval,
	)
	go scheduler.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:    stockUC,
		Projector:  projector,
		Loader:     loader,
		Reconciler: reconciler,
		HospitalID: cfg.App.HospitalID,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("API de comandos finalizado")
		}
	}()

	var ops *metrics.Server
	if cfg.Ops.Enabled {
		ops = metrics.NewServer(cfg.Ops.Addr, registry)
		go func() {
			if err := ops.Start(); err != nil {
				log.Error().Err(err).Msg("listener operacional finalizado")
			}
		}()
	}

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del API de comandos")
	}
	if ops != nil {
		if err := ops.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del listener operacional")
		}
	}

	log.Info().Msg("aplicación detenida")
}
