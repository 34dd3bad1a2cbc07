package entity

// Customer dimensión de cliente. Code es la clave única (ej. "90002002").
type Customer struct {
	Code    string
	Name    string
	Market  string // país/mercado (India, Germany, ...)
	Region  string // APAC | EU | NA | LATAM
	Channel string // Retailer | Direct | Distributor
}
