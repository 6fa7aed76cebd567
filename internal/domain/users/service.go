package users

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveOrCreate resuelve la identidad externa a un usuario interno.
// El nombre solo se escribe en la creación; en llamadas posteriores con el
// mismo email se ignora (los usuarios no tienen camino de edición).
func (s *Service) ResolveOrCreate(ctx context.Context, email, name string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.ResolveOrCreate(ctx, email, strings.TrimSpace(name))
}
