package entity

import "github.com/shopspring/decimal"

// PreInvoiceDeduction descuento comercial aplicado antes de emitir la factura.
// DiscountPct expresado como fracción (0.10 = 10%). Único por (CustomerCode, FiscalYear).
type PreInvoiceDeduction struct {
	CustomerCode string
	FiscalYear   int
	DiscountPct  decimal.Decimal
}

// PostInvoiceDeduction rebate/descuento promocional aplicado después de facturar.
// DiscountPct expresado como fracción. Único por (CustomerCode, FiscalYear).
type PostInvoiceDeduction struct {
	CustomerCode string
	FiscalYear   int
	DiscountPct  decimal.Decimal
}
