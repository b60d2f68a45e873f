package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/PuntoVenta-api/docs"
	"github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-api/internal/application/billing"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ledger"
	"github.com/jhoicas/PuntoVenta-api/internal/application/pos"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	infrapdf "github.com/jhoicas/PuntoVenta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/PuntoVenta-api/internal/interfaces/http"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

// @title                       Punto de Venta API
// @version                     1.0
// @description                 Inventario, ventas, compras, cuentas corrientes y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET es obligatorio")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log.WithComponent("storage").Zerolog(), true)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer backend.Close()

	repos := backend.Repos
	authUC := auth.NewAuthUseCase(backend.Users, backend.Roles, backend.Companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// En memoria no hay datos previos: se crea la empresa y el administrador de arranque
	if backend.Memory && cfg.Seed.AdminPassword != "" {
		res, err := authUC.Bootstrap(ctx, cfg.Seed.CompanyName, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
		switch {
		case err == nil:
			log.Info().Str("company_id", res.CompanyID).Str("email", cfg.Seed.AdminEmail).Msg("empresa inicial creada")
		case errors.Is(err, domain.ErrEmailAlreadyExists):
		default:
			log.Fatal().Err(err).Msg("crear empresa inicial")
		}
	}

	// PDF: factura de venta y estados de cuenta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	saleUC := billing.NewSaleUseCase(backend.Tx, repos.Sales, repos.Customers, backend.Companies, pdfGenerator)
	deps := httpRouter.RouterDeps{
		Logger:       log.WithComponent("http").Zerolog(),
		AllowOrigins: cfg.HTTP.AllowOrigins,
		JWTSecret:    cfg.JWT.Secret,

		AuthUC:      authUC,
		RoleUC:      usecase.NewRoleUseCase(backend.Roles, backend.Users),
		Permissions: usecase.NewPermissionService(backend.Roles),
		CompanyUC:   usecase.NewCompanyUseCase(backend.Companies),
		ItemUC:      usecase.NewItemUseCase(repos.Items, backend.Tx),
		AdjustStock: inventory.NewAdjustStockUseCase(backend.Tx, repos.Items, repos.Movements),
		CustomerUC:  usecase.NewCustomerUseCase(repos.Customers, repos.Sales, repos.Payments),
		SupplierUC:  usecase.NewSupplierUseCase(repos.Suppliers, repos.Purchases, repos.Payments),
		ExpenseUC:   usecase.NewExpenseUseCase(backend.Tx, repos.Expenses),
		SaleUC:      saleUC,
		PurchaseUC:  billing.NewPurchaseUseCase(backend.Tx, repos.Purchases, repos.Suppliers),
		PaymentUC:   billing.NewPaymentUseCase(backend.Tx, repos.Payments, repos.Customers, repos.Suppliers),
		StatementUC: ledger.NewStatementUseCase(
			repos.Customers, repos.Suppliers, repos.Sales, repos.Purchases, repos.Payments,
			backend.Companies, pdfGenerator,
		),
		DashboardUC: analytics.NewDashboardUseCase(backend.Reports, repos.Items, repos.Customers, repos.Suppliers),
		ReportUC:    analytics.NewReportUseCase(backend.Reports, repos.Items, repos.Customers, repos.Suppliers),
		HeldOrderUC: pos.NewHeldOrderUseCase(backend.HeldOrders, backend.Locker, saleUC, cfg.Redis.HeldOrderTTL),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.DocsEnabled {
		app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
			doc, err := swag.ReadDoc()
			if err != nil {
				return err
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(doc)
		})
		if _, err := os.Stat("./docs/swagger.json"); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: "./docs/swagger.json",
				Path:     "docs",
				Title:    "Punto de Venta API",
			}))
		} else {
			log.Warn().Msg("docs/swagger.json no encontrado; solo se publica /docs/doc.json")
		}
	}

	httpRouter.Router(app, deps)

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
