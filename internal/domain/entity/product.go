package entity

// Product dimensión de producto del catálogo de hardware.
// Code es la clave única (ej. "A0118150101").
type Product struct {
	Code     string
	Division string // P&A | PC | N&S
	Category string
	Name     string
	Variant  string
}
