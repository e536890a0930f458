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
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/Financeiro-api/internal/application/analytics"
	"github.com/jhoicas/Financeiro-api/internal/application/auth"
	"github.com/jhoicas/Financeiro-api/internal/application/category"
	"github.com/jhoicas/Financeiro-api/internal/application/importer"
	"github.com/jhoicas/Financeiro-api/internal/application/transaction"
	"github.com/jhoicas/Financeiro-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Financeiro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Financeiro-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Financeiro-api/internal/interfaces/http"
	"github.com/jhoicas/Financeiro-api/pkg/config"
	"github.com/jhoicas/Financeiro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("configuração inválida: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Location().String()).
		Msg("iniciando aplicação")

	if cfg.JWT.Secret == "" {
		// Só chega aqui em development (Validate barra os demais ambientes).
		log.Warn().Msg("JWT_SECRET vazio, usando secret de desenvolvimento")
		cfg.JWT.Secret = "dev-secret-change-me"
	}

	// Valores monetários saem como número JSON, não como string.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migrações")
		}
		log.Info().Msg("migrações aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 25, MinConns: 2})
	if err != nil {
		log.Fatal().Err(err).Str("dsn", postgres.RedactDSN(cfg.DB.ConnectionString())).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	loc := cfg.App.Location()

	transactionUC := transaction.NewUseCase(transactionRepo, categoryRepo, txRunner, transaction.Config{
		DefaultCategoryID: cfg.Import.DefaultCategoryID,
		Location:          loc,
	})
	categoryUC := category.NewUseCase(categoryRepo)
	importUC := importer.NewUseCase(transactionUC)
	dashboardUC := appanalytics.NewDashboardUseCase(
		transactionRepo, infrapdf.NewMarotoReportGenerator(), loc, nil, cfg.App.Name,
	)
	authUC := auth.NewAuthUseCase(userRepo, notify.NewLogNotifier(log, cfg.App.ResetURL), auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		ExpMinutes:      cfg.JWT.Expiration,
		Issuer:          cfg.JWT.Issuer,
		ResetExpMinutes: cfg.JWT.ResetExpiration,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.Import.MaxBytes + 1024*1024, // margem para o envelope multipart
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Financeiro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		DashboardUC:    dashboardUC,
		TransactionUC:  transactionUC,
		CategoryUC:     categoryUC,
		ImportUC:       importUC,
		JWTSecret:      cfg.JWT.Secret,
		ImportMaxBytes: cfg.Import.MaxBytes,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
