package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// UserRepository acceso de solo lectura a los usuarios de la API.
// El alta de usuarios se gestiona por fuera (sin write path en este servicio).
type UserRepository interface {
	// GetByEmail devuelve el usuario o (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
