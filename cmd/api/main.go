package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/farmacia-stock/internal/application/auth"
	"github.com/tu-usuario/farmacia-stock/internal/application/disbursement"
	"github.com/tu-usuario/farmacia-stock/internal/application/inventory"
	"github.com/tu-usuario/farmacia-stock/internal/application/ledger"
	"github.com/tu-usuario/farmacia-stock/internal/application/ports"
	"github.com/tu-usuario/farmacia-stock/internal/application/report"
	"github.com/tu-usuario/farmacia-stock/internal/application/usecase"
	infraai "github.com/tu-usuario/farmacia-stock/internal/infrastructure/ai"
	"github.com/tu-usuario/farmacia-stock/internal/infrastructure/excel"
	"github.com/tu-usuario/farmacia-stock/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/farmacia-stock/internal/infrastructure/pdf"
	"github.com/tu-usuario/farmacia-stock/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/farmacia-stock/internal/interfaces/http"
	"github.com/tu-usuario/farmacia-stock/internal/seed"
	"github.com/tu-usuario/farmacia-stock/pkg/config"
	"github.com/tu-usuario/farmacia-stock/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	snapshotStore, err := postgres.NewDrugSnapshotStore(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén de medicamentos")
	}

	// Estado operativo en memoria, cargado desde el almacén externo.
	// Si la colección no existe (primer arranque), se siembra una única vez.
	store := memory.NewStore()
	drugs, found, err := snapshotStore.ReadAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("leer colección de medicamentos")
	}
	if !found {
		now := time.Now()
		drugs = seed.Drugs(now)
		store.SeedTransactions(seed.InitialTransactions(drugs, now))
		if err := snapshotStore.WriteAll(ctx, drugs); err != nil {
			log.Fatal().Err(err).Msg("sembrar colección de medicamentos")
		}
		log.Info().Int("drugs", len(drugs)).Msg("colección sembrada con datos por defecto")
	}
	store.SeedDrugs(drugs)

	users, err := seed.Users()
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar usuarios por defecto")
	}
	store.SeedUsers(users)

	drugRepo := memory.NewDrugRepository(store)
	txRepo := memory.NewTransactionRepository(store)
	disbRepo := memory.NewDisbursementRepository(store)
	userRepo := memory.NewUserRepository(store)
	txRunner := memory.NewTxRunner(store)

	inventoryUC := inventory.NewUseCase(txRunner, drugRepo, snapshotStore)
	disbursementUC := disbursement.NewUseCase(txRunner, drugRepo, disbRepo, snapshotStore)
	ledgerUC := ledger.NewUseCase(txRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := usecase.NewDashboardUseCase(drugRepo, txRepo, disbRepo)
	reportUC := report.NewUseCase(disbRepo, excel.NewExporter(), infrapdf.NewMarotoReportGenerator())

	var llm ports.LLMService
	switch cfg.AI.Provider {
	case "anthropic":
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	default:
		llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}
	aiUC := usecase.NewAIUseCase(llm, drugRepo, txRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		InventoryUC:    inventoryUC,
		DisbursementUC: disbursementUC,
		LedgerUC:       ledgerUC,
		UserUC:         userUC,
		AIUC:           aiUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		Importer:       excel.NewImporter(),
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
