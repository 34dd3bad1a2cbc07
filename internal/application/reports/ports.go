package reports

import "context"

// Cache almacenamiento opcional de reportes ya calculados. Los reportes son
// deterministas sobre el snapshot inmutable, así que cachearlos es seguro.
//
// Las implementaciones deben ser best-effort: un fallo de caché nunca puede
// tumbar un reporte (devolver false y seguir).
type Cache interface {
	// Get deserializa el reporte cacheado en dest. Devuelve false si no hay
	// entrada o el caché no está disponible.
	Get(ctx context.Context, key string, dest any) bool
	// Set serializa y guarda el reporte con el TTL configurado.
	Set(ctx context.Context, key string, value any)
}
