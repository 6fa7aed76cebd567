package auth

// Identity es la identidad autenticada que entrega el proveedor externo
// al completar el login. De todo el userinfo solo leemos email y nombre.
type Identity struct {
	Email string
	Name  string
}
