package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pet-registry/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// ResolveOrCreate hace el upsert en una sola sentencia para cerrar la carrera
// de dos primeros logins simultáneos con el mismo email. El DO UPDATE es un
// no-op (email = excluded.email) que solo existe para poder usar RETURNING en
// ambos casos; nombre no se vuelve a escribir después de la creación.
func (r *UsersRepo) ResolveOrCreate(ctx context.Context, email, name string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO usuarios (email, nombre)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET email = excluded.email
		RETURNING id_usuario, email, nombre
	`, email, name)

	var u users.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name); err != nil {
		return users.User{}, fmt.Errorf("resolve or create user: %w", err)
	}
	return u, nil
}
