// Package sales calcula las ventas netas a partir del snapshot de datos
// (servicio de dominio puro, sin efectos secundarios).
//
// Cadena de descuentos:
//
//	ventaBruta = cantidad × precioBruto
//	ventaNeta  = ventaBruta × (1 − dctoPreFactura) × (1 − dctoPostFactura)
//
// Los montos se mantienen sin redondear; el redondeo a 2 decimales es
// responsabilidad de la capa de presentación (redondear antes compone error
// a lo largo de la cadena).
package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/fiscal"
)

var one = decimal.NewFromInt(1)

// SkipReason causa por la que una línea de venta quedó fuera del cálculo.
type SkipReason string

const (
	SkipMissingGrossPrice    SkipReason = "sin_precio_bruto"
	SkipMissingPreDeduction  SkipReason = "sin_dcto_pre_factura"
	SkipMissingPostDeduction SkipReason = "sin_dcto_post_factura"
)

// Skipped línea de venta excluida y su causa. El llamador decide cómo
// reportarla (la política es excluir y advertir, nunca calcular mal en
// silencio ni tumbar el reporte completo por una línea huérfana).
type Skipped struct {
	Record entity.SalesRecord
	Reason SkipReason
}

// lookupKey clave compuesta (código, año fiscal) para los índices hash.
// El año fiscal es derivado de la fecha, no una FK almacenada.
type lookupKey struct {
	Code       string
	FiscalYear int
}

// Calculator resuelve los joins venta × precio × descuentos en memoria.
// Construye índices hash una sola vez para evitar joins O(n²).
type Calculator struct {
	startMonth time.Month
	prices     map[lookupKey]decimal.Decimal
	preDctos   map[lookupKey]decimal.Decimal
	postDctos  map[lookupKey]decimal.Decimal
}

// NewCalculator indexa precios y descuentos por (código, año fiscal).
func NewCalculator(
	grossPrices []entity.GrossPrice,
	preDeductions []entity.PreInvoiceDeduction,
	postDeductions []entity.PostInvoiceDeduction,
	startMonth time.Month,
) *Calculator {
	c := &Calculator{
		startMonth: startMonth,
		prices:     make(map[lookupKey]decimal.Decimal, len(grossPrices)),
		preDctos:   make(map[lookupKey]decimal.Decimal, len(preDeductions)),
		postDctos:  make(map[lookupKey]decimal.Decimal, len(postDeductions)),
	}
	for _, p := range grossPrices {
		c.prices[lookupKey{p.ProductCode, p.FiscalYear}] = p.Price
	}
	for _, d := range preDeductions {
		c.preDctos[lookupKey{d.CustomerCode, d.FiscalYear}] = d.DiscountPct
	}
	for _, d := range postDeductions {
		c.postDctos[lookupKey{d.CustomerCode, d.FiscalYear}] = d.DiscountPct
	}
	return c
}

// PriceFor devuelve el precio bruto del producto para el año fiscal dado.
// Lo usa el reporte de ventas brutas, que no necesita descuentos.
func (c *Calculator) PriceFor(productCode string, fiscalYear int) (decimal.Decimal, bool) {
	p, ok := c.prices[lookupKey{productCode, fiscalYear}]
	return p, ok
}

// Compute deriva el año fiscal de cada línea de venta, resuelve los lookups y
// aplica la cadena de descuentos. Las líneas sin precio o sin descuento para
// su año fiscal se excluyen y se devuelven en skipped.
//
// Determinista: mismo snapshot, mismo resultado, en el orden del input.
func (c *Calculator) Compute(records []entity.SalesRecord) (result []entity.NetSalesRecord, skipped []Skipped) {
	result = make([]entity.NetSalesRecord, 0, len(records))

	for _, r := range records {
		fy := fiscal.Year(r.Date, c.startMonth)

		price, ok := c.prices[lookupKey{r.ProductCode, fy}]
		if !ok {
			skipped = append(skipped, Skipped{Record: r, Reason: SkipMissingGrossPrice})
			continue
		}
		pre, ok := c.preDctos[lookupKey{r.CustomerCode, fy}]
		if !ok {
			skipped = append(skipped, Skipped{Record: r, Reason: SkipMissingPreDeduction})
			continue
		}
		post, ok := c.postDctos[lookupKey{r.CustomerCode, fy}]
		if !ok {
			skipped = append(skipped, Skipped{Record: r, Reason: SkipMissingPostDeduction})
			continue
		}

		gross := r.SoldQuantity.Mul(price)
		net := gross.Mul(one.Sub(pre)).Mul(one.Sub(post))

		result = append(result, entity.NetSalesRecord{
			Date:         r.Date,
			CustomerCode: r.CustomerCode,
			ProductCode:  r.ProductCode,
			FiscalYear:   fy,
			SoldQuantity: r.SoldQuantity,
			GrossPrice:   price,
			GrossSales:   gross,
			NetSales:     net,
		})
	}
	return result, skipped
}
