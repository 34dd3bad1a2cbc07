package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// DatasetRepository carga las seis colecciones fuente en bloque (bulk read).
// Las implementaciones son read-only: la API nunca escribe sobre las tablas
// de hechos ni las dimensiones.
type DatasetRepository interface {
	// LoadDataset lee las seis colecciones completas y las devuelve como un
	// snapshot inmutable. Se invoca una vez al arrancar; los reportes se
	// sirven desde el snapshot compartido.
	LoadDataset(ctx context.Context) (*entity.Dataset, error)
}
