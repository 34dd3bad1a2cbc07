package entity

import "github.com/shopspring/decimal"

// GrossPrice precio bruto de un producto para un año fiscal.
// Único por (ProductCode, FiscalYear).
type GrossPrice struct {
	ProductCode string
	FiscalYear  int
	Price       decimal.Decimal
}
