package pets

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("pet not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string
	Age     int
	Weight  float64
	Notes   string
}

// UpdateInput lleva los mismos campos que el alta: el update es un reemplazo
// completo, no hay update parcial.
type UpdateInput struct {
	Name    string
	Species string
	Breed   string
	Age     int
	Weight  float64
	Notes   string
}

// Create inserta una mascota para el dueño dado. No valida que el dueño
// exista en usuarios; de eso se encarga la FK del store cuando está presente.
func (s *Service) Create(ctx context.Context, ownerID int64, in CreateInput) (Pet, error) {
	if ownerID <= 0 {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	p := Pet{
		OwnerID: ownerID,
		Name:    strings.TrimSpace(in.Name),
		Species: strings.TrimSpace(in.Species),
		Breed:   strings.TrimSpace(in.Breed),
		Age:     in.Age,
		Weight:  in.Weight,
		Notes:   strings.TrimSpace(in.Notes),
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	if id <= 0 {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List lista mascotas. owner == nil lista todas; con owner filtra por dueño.
func (s *Service) List(ctx context.Context, owner *int64) ([]Pet, error) {
	return s.repo.List(ctx, owner)
}

// Update reemplaza todos los campos mutables de la mascota.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Pet, error) {
	if id <= 0 {
		return Pet{}, ErrNotFound
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	p := Pet{
		ID:      id,
		OwnerID: current.OwnerID,
		Name:    strings.TrimSpace(in.Name),
		Species: strings.TrimSpace(in.Species),
		Breed:   strings.TrimSpace(in.Breed),
		Age:     in.Age,
		Weight:  in.Weight,
		Notes:   strings.TrimSpace(in.Notes),
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
