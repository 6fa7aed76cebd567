package users

import "context"

type Repository interface {
	// ResolveOrCreate devuelve el usuario para el email, creándolo si no
	// existe. Debe ser atómico a nivel store (upsert sobre email único),
	// nunca un select-then-insert: dos primeros logins simultáneos con el
	// mismo email no pueden producir filas duplicadas.
	ResolveOrCreate(ctx context.Context, email, name string) (User, error)
}
