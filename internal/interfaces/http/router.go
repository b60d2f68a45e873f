package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-api/internal/application/billing"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ledger"
	"github.com/jhoicas/PuntoVenta-api/internal/application/pos"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Logger       zerolog.Logger
	AllowOrigins string
	JWTSecret    string

	AuthUC      *auth.AuthUseCase
	RoleUC      *usecase.RoleUseCase
	Permissions *usecase.PermissionService
	CompanyUC   *usecase.CompanyUseCase
	ItemUC      *usecase.ItemUseCase
	AdjustStock *inventory.AdjustStockUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	SaleUC      *billing.SaleUseCase
	PurchaseUC  *billing.PurchaseUseCase
	PaymentUC   *billing.PaymentUseCase
	StatementUC *ledger.StatementUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *analytics.ReportUseCase
	HeldOrderUC *pos.HeldOrderUseCase
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Logger))
	if deps.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: deps.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	api := app.Group("/api")
	can := func(permission string) fiber.Handler {
		return RequirePermission(permission, deps.Permissions)
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	users := protected.Group("/users")
	users.Get("/", can(entity.PermRolesWrite), authHandler.ListUsers)
	users.Post("/", can(entity.PermRolesWrite), authHandler.Register)

	roles := protected.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Get("/permissions", can(entity.PermRolesWrite), roleHandler.Permissions)
	roles.Get("/", can(entity.PermRolesWrite), roleHandler.List)
	roles.Post("/", can(entity.PermRolesWrite), roleHandler.Create)
	roles.Put("/:id", can(entity.PermRolesWrite), roleHandler.Update)
	roles.Delete("/:id", can(entity.PermRolesWrite), roleHandler.Delete)

	// Settings: lectura para cualquier usuario (encabezado de facturas en caja)
	settings := protected.Group("/settings")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	settings.Get("/", companyHandler.Get)
	settings.Put("/", can(entity.PermSettingsWrite), companyHandler.Update)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.AdjustStock)
	items.Get("/", can(entity.PermItemsRead), itemHandler.List)
	items.Post("/", can(entity.PermItemsWrite), itemHandler.Create)
	items.Get("/:id", can(entity.PermItemsRead), itemHandler.GetByID)
	items.Put("/:id", can(entity.PermItemsWrite), itemHandler.Update)
	items.Delete("/:id", can(entity.PermItemsWrite), itemHandler.Delete)
	items.Post("/:id/adjustments", can(entity.PermItemsWrite), itemHandler.AdjustStock)
	items.Get("/:id/movements", can(entity.PermItemsRead), itemHandler.Movements)

	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	statementHandler := NewStatementHandler(deps.StatementUC)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", can(entity.PermCustomersRead), customerHandler.List)
	customers.Post("/", can(entity.PermCustomersWrite), customerHandler.Create)
	customers.Get("/:id", can(entity.PermCustomersRead), customerHandler.GetByID)
	customers.Put("/:id", can(entity.PermCustomersWrite), customerHandler.Update)
	customers.Delete("/:id", can(entity.PermCustomersWrite), customerHandler.Delete)
	customers.Get("/:id/payments", can(entity.PermCustomersRead), paymentHandler.ListByCustomer)
	customers.Get("/:id/statement", can(entity.PermCustomersRead), statementHandler.Customer)
	customers.Get("/:id/statement/pdf", can(entity.PermCustomersRead), statementHandler.CustomerPDF)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", can(entity.PermSuppliersRead), supplierHandler.List)
	suppliers.Post("/", can(entity.PermSuppliersWrite), supplierHandler.Create)
	suppliers.Get("/:id", can(entity.PermSuppliersRead), supplierHandler.GetByID)
	suppliers.Put("/:id", can(entity.PermSuppliersWrite), supplierHandler.Update)
	suppliers.Delete("/:id", can(entity.PermSuppliersWrite), supplierHandler.Delete)
	suppliers.Get("/:id/payments", can(entity.PermSuppliersRead), paymentHandler.ListBySupplier)
	suppliers.Get("/:id/statement", can(entity.PermSuppliersRead), statementHandler.Supplier)
	suppliers.Get("/:id/statement/pdf", can(entity.PermSuppliersRead), statementHandler.SupplierPDF)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", can(entity.PermSalesRead), saleHandler.List)
	sales.Post("/", can(entity.PermSalesWrite), saleHandler.Create)
	sales.Get("/:id", can(entity.PermSalesRead), saleHandler.GetByID)
	sales.Get("/:id/pdf", can(entity.PermSalesRead), saleHandler.Receipt)
	sales.Post("/:id/payments", can(entity.PermSalesWrite), saleHandler.AddPayment)
	sales.Post("/:id/cancel", can(entity.PermSalesWrite), saleHandler.Cancel)
	sales.Post("/:id/return", can(entity.PermSalesWrite), saleHandler.Return)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", can(entity.PermPurchasesRead), purchaseHandler.List)
	purchases.Post("/", can(entity.PermPurchasesWrite), purchaseHandler.Create)
	purchases.Get("/:id", can(entity.PermPurchasesRead), purchaseHandler.GetByID)
	purchases.Post("/:id/payments", can(entity.PermPurchasesWrite), purchaseHandler.AddPayment)
	purchases.Post("/:id/cancel", can(entity.PermPurchasesWrite), purchaseHandler.Cancel)
	purchases.Post("/:id/return", can(entity.PermPurchasesWrite), purchaseHandler.Return)

	payments := protected.Group("/payments")
	payments.Post("/customers", can(entity.PermPaymentsWrite), paymentHandler.RecordCustomer)
	payments.Post("/suppliers", can(entity.PermPaymentsWrite), paymentHandler.RecordSupplier)
	payments.Delete("/:id", can(entity.PermPaymentsWrite), paymentHandler.Delete)

	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Get("/", can(entity.PermExpensesRead), expenseHandler.List)
	expenses.Post("/", can(entity.PermExpensesWrite), expenseHandler.Create)
	expenses.Delete("/:id", can(entity.PermExpensesWrite), expenseHandler.Delete)

	reports := protected.Group("/reports", can(entity.PermReportsRead))
	reportHandler := NewReportHandler(deps.DashboardUC, deps.ReportUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/profit-loss", reportHandler.ProfitLoss)
	reports.Get("/top-items", reportHandler.TopItems)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/receivables", reportHandler.Receivables)
	reports.Get("/payables", reportHandler.Payables)

	held := protected.Group("/pos/held", can(entity.PermPOS))
	heldHandler := NewHeldOrderHandler(deps.HeldOrderUC)
	held.Get("/", heldHandler.List)
	held.Post("/", heldHandler.Hold)
	held.Get("/:id", heldHandler.Get)
	held.Delete("/:id", heldHandler.Discard)
	held.Post("/:id/checkout", heldHandler.Checkout)
}
