package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// MonthlyGrossSalesRequest parámetros para GET /api/reports/monthly-gross-sales.
type MonthlyGrossSalesRequest struct {
	CustomerCode string `query:"customer_code"` // obligatorio
	FiscalYear   int    `query:"fiscal_year"`   // obligatorio, > 0
}

// TopMarketsRequest parámetros para GET /api/reports/top-markets.
type TopMarketsRequest struct {
	FiscalYear int `query:"fiscal_year"` // obligatorio, > 0
	TopN       int `query:"top_n"`       // > 0; default 5, max 50
}

// FiscalYearRequest parámetro común de los reportes que solo filtran por año fiscal.
type FiscalYearRequest struct {
	FiscalYear int `query:"fiscal_year"` // obligatorio, > 0
}

// ── Ventas brutas mensuales ───────────────────────────────────────────────────

// MonthlyGrossSalesRowDTO una línea del reporte de ventas brutas de un cliente.
type MonthlyGrossSalesRowDTO struct {
	Date         string          `json:"date"`         // YYYY-MM-DD
	FiscalMonth  int             `json:"fiscal_month"` // 1-12 dentro del año fiscal (sep=1 con inicio en septiembre)
	Product      string          `json:"product"`
	Variant      string          `json:"variant"`
	SoldQuantity decimal.Decimal `json:"sold_quantity"`
	GrossPrice   decimal.Decimal `json:"gross_price"`      // precio unitario, 2 decimales
	GrossTotal   decimal.Decimal `json:"gross_price_total"` // qty × precio, 2 decimales
}

// MonthlyGrossSalesReportDTO respuesta completa del reporte mensual.
type MonthlyGrossSalesReportDTO struct {
	CustomerCode string                    `json:"customer_code"`
	Customer     string                    `json:"customer"`
	FiscalYear   int                       `json:"fiscal_year"`
	Rows         []MonthlyGrossSalesRowDTO `json:"rows"`
	TotalGross   decimal.Decimal           `json:"total_gross"` // suma de gross_price_total
}

// ── Top mercados ──────────────────────────────────────────────────────────────

// TopMarketDTO mercado con su venta neta en millones.
type TopMarketDTO struct {
	Market           string          `json:"market"`
	NetSalesMillions decimal.Decimal `json:"net_sales_mln"` // 2 decimales
}

// TopMarketsReportDTO respuesta de GET /api/reports/top-markets.
type TopMarketsReportDTO struct {
	FiscalYear int            `json:"fiscal_year"`
	TopN       int            `json:"top_n"`
	Markets    []TopMarketDTO `json:"markets"` // desc por venta neta; empate → mercado asc
}

// ── Top productos por división ────────────────────────────────────────────────

// DivisionProductDTO producto rankeado dentro de su división.
// Rank es dense rank por cantidad total: los empates comparten rank y el
// siguiente valor distinto recibe rank+1.
type DivisionProductDTO struct {
	Division      string          `json:"division"`
	Rank          int             `json:"rank"` // 1..3
	Product       string          `json:"product"`
	TotalQuantity decimal.Decimal `json:"total_sold_quantity"`
}

// TopProductsReportDTO respuesta de GET /api/reports/top-products.
type TopProductsReportDTO struct {
	FiscalYear int                  `json:"fiscal_year"`
	Rows       []DivisionProductDTO `json:"rows"` // división asc, rank asc, producto asc
}

// ── Participación regional ────────────────────────────────────────────────────

// RegionalShareRowDTO cliente con su venta neta y % de participación regional.
// PctShare = venta_neta × 100 / total_de_su_región (agregado particionado, no global).
type RegionalShareRowDTO struct {
	Region           string          `json:"region"`
	Customer         string          `json:"customer"`
	NetSalesMillions decimal.Decimal `json:"net_sales_mln"`
	PctShare         decimal.Decimal `json:"pct_share"`
}

// RegionalShareReportDTO respuesta de GET /api/reports/regional-share.
type RegionalShareReportDTO struct {
	FiscalYear int                   `json:"fiscal_year"`
	Rows       []RegionalShareRowDTO `json:"rows"` // región asc, venta neta desc, cliente asc
}
