package memory

import (
	"context"
	"sync"

	"pet-registry/internal/domain/users"
)

type userRepo struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]users.User
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byEmail: make(map[string]users.User),
	}
}

// ResolveOrCreate es atómico bajo el mutex: equivale al upsert de Postgres.
func (r *userRepo) ResolveOrCreate(ctx context.Context, email, name string) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byEmail[email]; ok {
		// el nombre no se actualiza en logins repetidos
		return u, nil
	}

	r.nextID++
	u := users.User{
		ID:    r.nextID,
		Email: email,
		Name:  name,
	}
	r.byEmail[email] = u
	return u, nil
}
