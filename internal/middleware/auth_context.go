package middleware

import (
	"context"
	"net/http"

	"pet-registry/internal/platform/session"
	"pet-registry/internal/ports/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// AuthContext: si hay cookie de sesión válida, deja la identidad en el
// contexto del request. Si no hay sesión (o es inválida) el request sigue
// igual; cada handler decide si exige login.
func AuthContext(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions != nil {
				if id, err := sessions.Identity(r); err == nil {
					ctx := context.WithValue(r.Context(), identityKey, id)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
