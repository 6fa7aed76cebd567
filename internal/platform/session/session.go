package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pet-registry/internal/ports/auth"
)

const CookieName = "session"

const DefaultTTL = 24 * time.Hour

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

// Manager emite y verifica la cookie de sesión. La cookie es un JWT HS256
// firmado con el secreto de la app y solo transporta email y nombre; no hay
// estado de sesión del lado del servidor.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Issue escribe la cookie de sesión para la identidad dada.
func (m *Manager) Issue(w http.ResponseWriter, id auth.Identity) error {
	now := m.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: id.Email,
		Name:  id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Identity lee y verifica la cookie del request.
func (m *Manager) Identity(r *http.Request) (auth.Identity, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return auth.Identity{}, ErrNoSession
	}

	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(c.Value, &claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tok.Valid {
		return auth.Identity{}, ErrInvalidSession
	}

	if strings.TrimSpace(claims.Email) == "" {
		return auth.Identity{}, ErrInvalidSession
	}

	return auth.Identity{Email: claims.Email, Name: claims.Name}, nil
}

// Clear borra la cookie de sesión.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
