package users

import (
	"encoding/json"
	"net/http"
	"strings"

	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/session"
	"pet-registry/internal/ports/auth"
	"pet-registry/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const stateCookie = "oauth_state"

func RegisterRoutes(r chi.Router, svc *Service, provider auth.Provider, sessions *session.Manager, views *web.Renderer, homeURL string, log *zap.Logger) {
	r.Get("/", homeHandler(views))
	r.Get("/login", loginHandler(provider))
	r.Get("/logout", logoutHandler(provider, sessions, homeURL))

	// Auth0 puede devolver el resultado por GET (query) o POST (form_post).
	cb := callbackHandler(svc, provider, sessions, log)
	r.Get("/callback", cb)
	r.Post("/callback", cb)
}

func homeHandler(views *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{"LoggedIn": false}

		if id, ok := middleware.GetIdentity(r.Context()); ok {
			pretty, _ := json.MarshalIndent(map[string]string{
				"email": id.Email,
				"name":  id.Name,
			}, "", "  ")

			data["LoggedIn"] = true
			data["Identity"] = id
			data["Pretty"] = string(pretty)
		}

		views.Render(w, http.StatusOK, "home.html", data)
	}
}

func loginHandler(provider auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			http.Error(w, "identity provider not configured", http.StatusServiceUnavailable)
			return
		}

		// state anti-CSRF: se guarda en una cookie de corta vida y se
		// compara en /callback.
		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusFound)
	}
}

func logoutHandler(provider auth.Provider, sessions *session.Manager, homeURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Clear(w)

		if provider == nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		http.Redirect(w, r, provider.LogoutURL(homeURL), http.StatusFound)
	}
}

// callbackHandler completa el handshake: valida el state, canjea el code y,
// si vino email, resuelve/crea el usuario antes de emitir la sesión.
func callbackHandler(svc *Service, provider auth.Provider, sessions *session.Manager, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			http.Error(w, "identity provider not configured", http.StatusServiceUnavailable)
			return
		}

		state := strings.TrimSpace(r.FormValue("state"))
		c, err := r.Cookie(stateCookie)
		if err != nil || state == "" || c.Value != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}

		// el state es de un solo uso
		http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

		code := strings.TrimSpace(r.FormValue("code"))
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		id, err := provider.Exchange(r.Context(), code)
		if err != nil {
			log.Error("code exchange failed", zap.Error(err))
			http.Error(w, "login failed", http.StatusBadGateway)
			return
		}

		if id.Email != "" {
			if _, err := svc.ResolveOrCreate(r.Context(), id.Email, id.Name); err != nil {
				log.Error("resolve user failed", zap.Error(err), zap.String("email", id.Email))
				http.Error(w, "login failed", http.StatusInternalServerError)
				return
			}
		}

		if err := sessions.Issue(w, id); err != nil {
			log.Error("issue session failed", zap.Error(err))
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}
