package entity

import "time"

// User usuario de la API de reportes (solo lectura; el alta se hace por fuera).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt
	Role         string // "admin" | "analista"
	CreatedAt    time.Time
}
