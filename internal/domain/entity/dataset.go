package entity

// Dataset snapshot inmutable de las seis colecciones fuente.
// Se carga completo una vez (bulk read) y se comparte en solo lectura entre
// requests concurrentes; como no hay escritores, no requiere locks.
type Dataset struct {
	Sales          []SalesRecord
	GrossPrices    []GrossPrice
	PreDeductions  []PreInvoiceDeduction
	PostDeductions []PostInvoiceDeduction
	Products       []Product
	Customers      []Customer
}

// ProductsByCode construye el índice de productos por código.
func (d *Dataset) ProductsByCode() map[string]Product {
	idx := make(map[string]Product, len(d.Products))
	for _, p := range d.Products {
		idx[p.Code] = p
	}
	return idx
}

// CustomersByCode construye el índice de clientes por código.
func (d *Dataset) CustomersByCode() map[string]Customer {
	idx := make(map[string]Customer, len(d.Customers))
	for _, c := range d.Customers {
		idx[c.Code] = c
	}
	return idx
}
