package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-registry/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO mascotas (id_usuario, nombre, tipo, raza, edad, peso, notas)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id_mascota
	`,
		p.OwnerID,
		p.Name,
		p.Species,
		p.Breed,
		p.Age,
		p.Weight,
		p.Notes,
	)

	if err := row.Scan(&p.ID); err != nil {
		return pets.Pet{}, fmt.Errorf("insert pet: %w", err)
	}
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id_mascota, id_usuario, nombre, tipo, raza, edad, peso, notas
		FROM mascotas
		WHERE id_mascota = $1
	`, id)

	var p pets.Pet
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Age,
		&p.Weight,
		&p.Notes,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("get pet: %w", err)
	}

	return p, nil
}

func (r *PetsRepo) List(ctx context.Context, owner *int64) ([]pets.Pet, error) {
	query := `
		SELECT id_mascota, id_usuario, nombre, tipo, raza, edad, peso, notas
		FROM mascotas
		ORDER BY id_mascota ASC
	`
	args := []any{}
	if owner != nil {
		query = `
			SELECT id_mascota, id_usuario, nombre, tipo, raza, edad, peso, notas
			FROM mascotas
			WHERE id_usuario = $1
			ORDER BY id_mascota ASC
		`
		args = append(args, *owner)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(
			&p.ID,
			&p.OwnerID,
			&p.Name,
			&p.Species,
			&p.Breed,
			&p.Age,
			&p.Weight,
			&p.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE mascotas
		SET
			nombre = $2,
			tipo = $3,
			raza = $4,
			edad = $5,
			peso = $6,
			notas = $7
		WHERE id_mascota = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		p.Age,
		p.Weight,
		p.Notes,
	)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM mascotas WHERE id_mascota = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}
