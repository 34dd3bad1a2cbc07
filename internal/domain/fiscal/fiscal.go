// Package fiscal resuelve el calendario fiscal de la empresa (servicio de dominio puro).
//
// El año fiscal arranca en un mes configurable: con inicio en septiembre, una
// venta de sep/2020 pertenece al año fiscal 2021. Toda conversión fecha → año
// fiscal de la aplicación pasa por este paquete; nunca se duplica la regla en
// los generadores de reportes.
package fiscal

import "time"

// Year devuelve el año fiscal de la fecha dada para un año fiscal que inicia
// en startMonth (1-12): año calendario + 1 para meses en o después del mes de
// inicio, año calendario en caso contrario.
//
// Caso especial: con startMonth = 1 el año fiscal coincide con el calendario
// (termina en diciembre del mismo año), así que se devuelve el año calendario.
func Year(date time.Time, startMonth time.Month) int {
	if startMonth <= time.January {
		return date.Year()
	}
	if date.Month() >= startMonth {
		return date.Year() + 1
	}
	return date.Year()
}

// Month devuelve la posición del mes dentro del año fiscal (1-12).
// Con startMonth = septiembre: sep → 1, oct → 2, ..., ago → 12.
func Month(date time.Time, startMonth time.Month) int {
	return (int(date.Month())-int(startMonth)+12)%12 + 1
}
