package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/reports"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportsUC *reports.UseCase
	AuthUC    *auth.AuthUseCase
	Renderer  *pdf.MarotoReportRenderer
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Reportes (protegido, requiere Bearer Token)
	reportsGroup := api.Group("/reports", AuthMiddleware(deps.JWTSecret))
	reportsHandler := NewReportsHandler(deps.ReportsUC, deps.Renderer)
	reportsGroup.Get("/monthly-gross-sales", reportsHandler.GetMonthlyGrossSales)
	reportsGroup.Get("/monthly-gross-sales/pdf", reportsHandler.GetMonthlyGrossSalesPDF)
	reportsGroup.Get("/top-markets", reportsHandler.GetTopMarkets)
	reportsGroup.Get("/top-products", reportsHandler.GetTopProducts)
	reportsGroup.Get("/regional-share", reportsHandler.GetRegionalShare)
}
