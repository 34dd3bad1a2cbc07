package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord una línea de la tabla de hechos de ventas mensuales.
// Se carga una vez por snapshot y es inmutable.
type SalesRecord struct {
	Date         time.Time
	CustomerCode string
	ProductCode  string
	SoldQuantity decimal.Decimal
}

// NetSalesRecord línea de venta enriquecida con precio bruto y venta neta.
// Derivada, nunca persistida; se recalcula en cada consulta.
// NetSales se mantiene sin redondear: el redondeo a 2 decimales ocurre
// únicamente al construir la respuesta.
type NetSalesRecord struct {
	Date         time.Time
	CustomerCode string
	ProductCode  string
	FiscalYear   int
	SoldQuantity decimal.Decimal
	GrossPrice   decimal.Decimal
	GrossSales   decimal.Decimal // SoldQuantity * GrossPrice
	NetSales     decimal.Decimal // GrossSales * (1-preDcto) * (1-postDcto)
}
