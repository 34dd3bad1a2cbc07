package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/reports"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
)

// topN por defecto cuando el query param se omite (si viene, debe ser > 0).
const defaultTopMarkets = 5

// ReportsHandler maneja los endpoints de reportes de ventas.
type ReportsHandler struct {
	uc       *reports.UseCase
	renderer *pdf.MarotoReportRenderer
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.UseCase, renderer *pdf.MarotoReportRenderer) *ReportsHandler {
	return &ReportsHandler{uc: uc, renderer: renderer}
}

// GetMonthlyGrossSales godoc
// @Summary      Ventas brutas mensuales de un cliente
// @Description  Líneas de venta del cliente en el año fiscal, con precio bruto
//               y total por línea (cantidad × precio, 2 decimales).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        customer_code  query  string  true  "Código del cliente (ej. 90002002)"
// @Param        fiscal_year    query  int     true  "Año fiscal (> 0)"
// @Success      200  {object}  dto.MonthlyGrossSalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly-gross-sales [get]
func (h *ReportsHandler) GetMonthlyGrossSales(c *fiber.Ctx) error {
	var req dto.MonthlyGrossSalesRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c, "parámetros de consulta inválidos")
	}
	report, err := h.uc.MonthlyGrossSales(c.Context(), req)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(report)
}

// GetMonthlyGrossSalesPDF godoc
// @Summary      Ventas brutas mensuales de un cliente en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        customer_code  query  string  true  "Código del cliente"
// @Param        fiscal_year    query  int     true  "Año fiscal (> 0)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly-gross-sales/pdf [get]
func (h *ReportsHandler) GetMonthlyGrossSalesPDF(c *fiber.Ctx) error {
	var req dto.MonthlyGrossSalesRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c, "parámetros de consulta inválidos")
	}
	report, err := h.uc.MonthlyGrossSales(c.Context(), req)
	if err != nil {
		return reportError(c, err)
	}
	raw, err := h.renderer.RenderMonthlyGrossSales(report)
	if err != nil {
		return reportError(c, err)
	}
	filename := fmt.Sprintf("ventas_brutas_%s_fy%d.pdf", report.CustomerCode, report.FiscalYear)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(raw)
}

// GetTopMarkets godoc
// @Summary      Mercados con mayor venta neta
// @Description  Top N mercados del año fiscal por venta neta en millones,
//               descendente; empates resueltos por nombre de mercado ascendente.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        fiscal_year  query  int  true   "Año fiscal (> 0)"
// @Param        top_n        query  int  false  "Cantidad de mercados (default 5, max 50)"
// @Success      200  {object}  dto.TopMarketsReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/top-markets [get]
func (h *ReportsHandler) GetTopMarkets(c *fiber.Ctx) error {
	var req dto.TopMarketsRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c, "parámetros de consulta inválidos")
	}
	// top_n omitido → default; top_n presente pero no positivo → lo rechaza el use case
	if c.Query("top_n") == "" {
		req.TopN = defaultTopMarkets
	}
	report, err := h.uc.TopMarkets(c.Context(), req)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(report)
}

// GetTopProducts godoc
// @Summary      Top 3 productos por división
// @Description  Dense rank por cantidad vendida dentro de cada división:
//               empates comparten rank y el siguiente valor distinto recibe rank+1.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        fiscal_year  query  int  true  "Año fiscal (> 0)"
// @Success      200  {object}  dto.TopProductsReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/top-products [get]
func (h *ReportsHandler) GetTopProducts(c *fiber.Ctx) error {
	fiscalYear, err := fiscalYearParam(c)
	if err != nil {
		return badParams(c, err.Error())
	}
	report, err := h.uc.TopProductsByDivision(c.Context(), fiscalYear)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(report)
}

// GetRegionalShare godoc
// @Summary      Participación de clientes en la venta neta de su región
// @Description  Venta neta por cliente con % de participación calculado sobre
//               el total de su región (agregado particionado, no global).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        fiscal_year  query  int  true  "Año fiscal (> 0)"
// @Success      200  {object}  dto.RegionalShareReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/regional-share [get]
func (h *ReportsHandler) GetRegionalShare(c *fiber.Ctx) error {
	fiscalYear, err := fiscalYearParam(c)
	if err != nil {
		return badParams(c, err.Error())
	}
	report, err := h.uc.RegionalNetSalesShare(c.Context(), fiscalYear)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(report)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func fiscalYearParam(c *fiber.Ctx) (int, error) {
	raw := c.Query("fiscal_year")
	if raw == "" {
		return 0, errors.New("fiscal_year es obligatorio")
	}
	fy, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("fiscal_year debe ser numérico, recibido %q", raw)
	}
	return fy, nil
}

func badParams(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_PARAMS", Message: msg,
	})
}

// reportError traduce errores del use case a HTTP: parámetros inválidos son
// error del cliente, el resto 500.
func reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidParameter) {
		return badParams(c, err.Error())
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
