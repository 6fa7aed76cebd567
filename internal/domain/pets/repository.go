package pets

import "context"

type Repository interface {
	// Create inserta la fila y devuelve el Pet con el ID asignado por el store.
	Create(ctx context.Context, p Pet) (Pet, error)

	GetByID(ctx context.Context, id int64) (Pet, error)

	// List devuelve todas las mascotas en orden de ID, o solo las de owner
	// cuando owner != nil.
	List(ctx context.Context, owner *int64) ([]Pet, error)

	// Update reemplaza todos los campos mutables (el dueño no se toca).
	// ErrNotFound si ninguna fila coincidió.
	Update(ctx context.Context, p Pet) error

	// Delete borra la fila (hard delete). ErrNotFound si no existía.
	Delete(ctx context.Context, id int64) error
}
