package auth

import "context"

// Provider abstrae el flujo authorization-code del proveedor de identidad.
// Los handlers dependen de esta interfaz para poder testearse con un fake.
type Provider interface {
	// AuthCodeURL arma la URL de autorización a la que se redirige al usuario.
	AuthCodeURL(state string) string

	// Exchange canjea el code del callback y devuelve la identidad del userinfo.
	// La validación de firma del token queda del lado del proveedor.
	Exchange(ctx context.Context, code string) (Identity, error)

	// LogoutURL arma la URL de cierre de sesión del proveedor.
	LogoutURL(returnTo string) string
}
