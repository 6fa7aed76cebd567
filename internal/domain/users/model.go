package users

// User mapea una fila de usuarios: el vínculo entre la identidad externa
// (email, único) y la clave interna de dueño (ID).
// Columnas: usuarios(id_usuario, email, nombre).
type User struct {
	ID    int64
	Email string
	Name  string
}
