package router_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"pet-registry/internal/platform/session"
	"pet-registry/internal/ports/auth"
	"pet-registry/internal/router"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeProvider evita el tenant real: Exchange devuelve una identidad fija.
type fakeProvider struct {
	identity auth.Identity
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://idp.test/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) Exchange(ctx context.Context, code string) (auth.Identity, error) {
	return f.identity, nil
}

func (f *fakeProvider) LogoutURL(returnTo string) string {
	return "https://idp.test/v2/logout?returnTo=" + url.QueryEscape(returnTo)
}

type testApp struct {
	ts       *httptest.Server
	sessions *session.Manager
	client   *http.Client
}

func newTestApp(t *testing.T, identity auth.Identity) *testApp {
	t.Helper()

	sessions := session.NewManager("test-secret", time.Hour)
	h := router.NewRouter(router.Options{
		Provider: &fakeProvider{identity: identity},
		Sessions: sessions,
		HomeURL:  "http://app.test/",
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &testApp{
		ts:       ts,
		sessions: sessions,
		client: &http.Client{
			// los redirects se verifican a mano
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (a *testApp) sessionCookie(t *testing.T, identity auth.Identity) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, a.sessions.Issue(rec, identity))

	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("no session cookie issued")
	return nil
}

func (a *testApp) get(t *testing.T, path string, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, a.ts.URL+path, nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := a.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, a.ts.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := a.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func petForm(nombre, tipo, raza, edad, peso, notas string) url.Values {
	return url.Values{
		"nombre": {nombre},
		"tipo":   {tipo},
		"raza":   {raza},
		"edad":   {edad},
		"peso":   {peso},
		"notas":  {notas},
	}
}

// -------------------------
// Tests
// -------------------------

func TestHome_WithoutSession(t *testing.T) {
	app := newTestApp(t, auth.Identity{})

	resp, body := app.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "/login")
}

func TestLoginCallbackFlow(t *testing.T) {
	app := newTestApp(t, auth.Identity{Email: "ana@example.com", Name: "Ana"})

	// /login redirige al proveedor y planta la cookie de state
	resp, _ := app.get(t, "/login")
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc := resp.Header.Get("Location")
	require.Contains(t, loc, "https://idp.test/authorize")

	var state *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "oauth_state" {
			state = c
		}
	}
	require.NotNil(t, state, "state cookie must be set")
	require.Contains(t, loc, "state="+state.Value)

	// /callback con el state correcto emite la sesión y redirige a /
	resp, _ = app.get(t, "/callback?state="+state.Value+"&code=fake-code", state)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	var sess *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			sess = c
		}
	}
	require.NotNil(t, sess, "session cookie must be set")

	// el home ya muestra la identidad
	resp, body := app.get(t, "/", sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "ana@example.com")
}

func TestCallback_StateMismatch(t *testing.T) {
	app := newTestApp(t, auth.Identity{Email: "ana@example.com"})

	resp, _ := app.get(t, "/login")
	var state *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "oauth_state" {
			state = c
		}
	}
	require.NotNil(t, state)

	resp, _ = app.get(t, "/callback?state=otra-cosa&code=fake-code", state)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogout_ClearsSessionAndRedirects(t *testing.T) {
	app := newTestApp(t, auth.Identity{Email: "ana@example.com"})
	sess := app.sessionCookie(t, auth.Identity{Email: "ana@example.com"})

	resp, _ := app.get(t, "/logout", sess)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "https://idp.test/v2/logout")

	cleared := false
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared, "session cookie must be expired on logout")
}

func TestCreatePet_RequiresSession(t *testing.T) {
	app := newTestApp(t, auth.Identity{})

	resp, _ := app.postForm(t, "/pets/new", petForm("Rex", "perro", "Lab", "3", "25.0", "friendly"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	// sin sesión no se creó nada: el listado con sesión sigue vacío
	sess := app.sessionCookie(t, auth.Identity{Email: "ana@example.com"})
	resp, body := app.get(t, "/pets", sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotContains(t, body, "Rex")
}

func TestPetsList_EmptyWithoutSession(t *testing.T) {
	app := newTestApp(t, auth.Identity{})
	sess := app.sessionCookie(t, auth.Identity{Email: "ana@example.com"})

	// creamos una mascota con sesión
	resp, _ := app.postForm(t, "/pets/new", petForm("Rex", "perro", "Lab", "3", "25.0", "ok"), sess)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// sin sesión, el listado sale vacío aunque existan filas
	resp, body := app.get(t, "/pets")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotContains(t, body, "Rex")

	// con sesión sí aparece
	_, body = app.get(t, "/pets", sess)
	require.Contains(t, body, "Rex")
}

func TestPetCRUD_WithSession(t *testing.T) {
	app := newTestApp(t, auth.Identity{})
	sess := app.sessionCookie(t, auth.Identity{Email: "ana@example.com", Name: "Ana"})

	// alta
	resp, _ := app.postForm(t, "/pets/new", petForm("Rex", "perro", "Lab", "3", "25.0", "friendly"), sess)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/pets", resp.Header.Get("Location"))

	// el repo en memoria asigna IDs desde 1
	resp, body := app.get(t, "/pets/1", sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Rex")
	require.Contains(t, body, "Lab")

	// edición: reemplazo completo de campos
	resp, _ = app.postForm(t, "/pets/1/edit", petForm("Rexx", "perro", "Labrador", "4", "27.5", ""), sess)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	_, body = app.get(t, "/pets/1", sess)
	require.Contains(t, body, "Rexx")
	require.Contains(t, body, "Labrador")
	require.NotContains(t, body, "friendly")

	// confirmación de borrado
	resp, body = app.get(t, "/pets/1/delete", sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Rexx")

	// borrado efectivo
	resp, _ = app.postForm(t, "/pets/1/delete", url.Values{}, sess)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp, _ = app.get(t, "/pets/1", sess)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// borrar de nuevo: 404, sin error
	resp, _ = app.postForm(t, "/pets/1/delete", url.Values{}, sess)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreatePet_OwnerLinkage(t *testing.T) {
	app := newTestApp(t, auth.Identity{})
	sess := app.sessionCookie(t, auth.Identity{Email: "ana@example.com", Name: "Ana"})

	// el primer alta materializa el usuario (id 1) y su mascota a la vez
	resp, _ := app.postForm(t, "/pets/new", petForm("Rex", "perro", "Lab", "3", "25.0", ""), sess)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	_, body := app.get(t, "/pets/1", sess)
	require.Contains(t, body, "Dueño: 1")

	// segundo alta con el mismo email: mismo dueño, no un usuario nuevo
	resp, _ = app.postForm(t, "/pets/new", petForm("Mishi", "gato", "", "2", "4.5", ""), sess)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	_, body = app.get(t, "/pets/2", sess)
	require.Contains(t, body, "Dueño: 1")
}

func TestRouter_BadDSNFallsBackToMemory(t *testing.T) {
	t.Setenv("DB_DSN", "://esto-no-es-un-dsn")

	core, logs := observer.New(zap.WarnLevel)
	h := router.NewRouter(router.Options{
		Sessions: session.NewManager("test-secret", time.Hour),
		Log:      zap.New(core),
	})

	ts := httptest.NewServer(h)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// la degradación a memoria queda registrada, no es silenciosa
	require.Equal(t, 1, logs.FilterMessage("no se pudo abrir la base, usando repos en memoria").Len())
}

func TestPetDetail_NotFound(t *testing.T) {
	app := newTestApp(t, auth.Identity{})

	resp, _ := app.get(t, "/pets/999")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// id no numérico también es 404
	resp, _ = app.get(t, "/pets/abc")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEditForm_NotFound(t *testing.T) {
	app := newTestApp(t, auth.Identity{})

	resp, _ := app.get(t, "/pets/999/edit")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.postForm(t, "/pets/999/edit", petForm("X", "gato", "", "1", "2", ""))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreatePet_BadForm(t *testing.T) {
	app := newTestApp(t, auth.Identity{})
	sess := app.sessionCookie(t, auth.Identity{Email: "ana@example.com"})

	// edad no numérica
	resp, _ := app.postForm(t, "/pets/new", petForm("Rex", "perro", "Lab", "tres", "25.0", ""), sess)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body := app.get(t, "/pets", sess)
	require.NotContains(t, body, "Rex")
}
