package pets

// Pet representa una mascota registrada, ligada a su dueño por OwnerID.
// Columnas: mascotas(id_mascota, id_usuario, nombre, tipo, raza, edad, peso, notas).
type Pet struct {
	ID      int64
	OwnerID int64

	Name    string
	Species string // tipo: texto libre del formulario (perro, gato, ...)
	Breed   string
	Age     int
	Weight  float64
	Notes   string
}
