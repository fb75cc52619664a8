package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Areandra/Kelvin/api/controllers"
	"github.com/Areandra/Kelvin/api/middleware"
	authsvc "github.com/Areandra/Kelvin/internal/auth"
	categorysvc "github.com/Areandra/Kelvin/internal/categories"
	dashboardsvc "github.com/Areandra/Kelvin/internal/dashboard"
	productsvc "github.com/Areandra/Kelvin/internal/products"
	suppliersvc "github.com/Areandra/Kelvin/internal/suppliers"
	transactionsvc "github.com/Areandra/Kelvin/internal/transactions"
	"github.com/Areandra/Kelvin/pkg/auth/session"
	"github.com/Areandra/Kelvin/pkg/config"
	"github.com/Areandra/Kelvin/pkg/logger"
	"github.com/Areandra/Kelvin/pkg/metrics"
)

// Services bundles the domain services mounted by the router.
type Services struct {
	Auth         authsvc.Service
	Categories   categorysvc.Service
	Products     productsvc.Service
	Suppliers    suppliersvc.Service
	Transactions transactionsvc.Service
	Dashboard    dashboardsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	verifier session.AccessSessionChecker,
	svcs Services,
	pages *controllers.PageRenderer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Metrics(httpMetrics),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if pages != nil {
		r.Get("/", pages.Home)
		r.Get("/login", pages.Login)
		r.Get("/dashboard", pages.Dashboard)
		r.Get("/categories", pages.Categories)
		r.Get("/products", pages.Products)
		r.Get("/transactions", pages.Transactions)
		r.Get("/suppliers", pages.Suppliers)
	}

	r.Post("/api/auth/login", controllers.AuthLogin(svcs.Auth, logg))
	r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, verifier, logg))

		r.Get("/profile", controllers.AuthProfile(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Get("/dashboard/summary", controllers.DashboardSummary(svcs.Dashboard, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(svcs.Categories, logg))
			r.Post("/", controllers.CategoryCreate(svcs.Categories, logg))
			r.Get("/search", controllers.CategorySearch(svcs.Categories, logg))
			r.Get("/{id}", controllers.CategoryGet(svcs.Categories, logg))
			r.Put("/{id}", controllers.CategoryUpdate(svcs.Categories, logg))
			r.Delete("/{id}", controllers.CategoryDelete(svcs.Categories, logg))
			r.Get("/{id}/stats", controllers.CategoryStats(svcs.Categories, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Products, logg))
			r.Post("/", controllers.ProductCreate(svcs.Products, logg))
			r.Get("/search", controllers.ProductSearch(svcs.Products, logg))
			r.Get("/category/{id}", controllers.ProductsByCategory(svcs.Products, logg))
			r.Get("/{id}", controllers.ProductGet(svcs.Products, logg))
			r.Put("/{id}", controllers.ProductUpdate(svcs.Products, logg))
			r.Delete("/{id}", controllers.ProductDelete(svcs.Products, logg))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.TransactionList(svcs.Transactions, logg))
			r.Post("/", controllers.TransactionCreate(svcs.Transactions, logg))
			r.Get("/search", controllers.TransactionSearch(svcs.Transactions, logg))
			r.Get("/stats", controllers.TransactionStats(svcs.Transactions, logg))
			r.Get("/product/{id}", controllers.TransactionsByProduct(svcs.Transactions, logg))
			r.Get("/{id}", controllers.TransactionGet(svcs.Transactions, logg))
			r.Put("/{id}", controllers.TransactionUpdate(svcs.Transactions, logg))
			r.Delete("/{id}", controllers.TransactionDelete(svcs.Transactions, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.SupplierList(svcs.Suppliers, logg))
			r.Post("/", controllers.SupplierCreate(svcs.Suppliers, logg))
			r.Get("/search", controllers.SupplierSearch(svcs.Suppliers, logg))
			r.Get("/{id}", controllers.SupplierGet(svcs.Suppliers, logg))
			r.Put("/{id}", controllers.SupplierUpdate(svcs.Suppliers, logg))
			r.Delete("/{id}", controllers.SupplierDelete(svcs.Suppliers, logg))
		})
	})

	return r
}
