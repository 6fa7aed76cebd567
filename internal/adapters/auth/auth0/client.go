package auth0

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"pet-registry/internal/platform/httpclient"
	"pet-registry/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("auth0 client not configured")
	ErrExchange      = errors.New("auth0 code exchange failed")
	ErrUserinfo      = errors.New("auth0 userinfo failed")
)

// Config del tenant Auth0. Los valores vienen de env en quien lo instancia.
type Config struct {
	Domain       string // p.ej. my-tenant.us.auth0.com
	ClientID     string
	ClientSecret string
	CallbackURL  string // URL absoluta del /callback de esta app

	// Timeout HTTP para exchange y userinfo. Default 10s.
	Timeout time.Duration
}

// Client implementa auth.Provider contra un tenant Auth0 usando el flujo
// authorization-code de x/oauth2 y el endpoint /userinfo.
type Client struct {
	domain   string
	clientID string
	oauth    *oauth2.Config
	hc       *http.Client
}

func NewClient(cfg Config) *Client {
	domain := strings.TrimSuffix(strings.TrimSpace(cfg.Domain), "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		domain:   domain,
		clientID: strings.TrimSpace(cfg.ClientID),
		oauth: &oauth2.Config{
			ClientID:     strings.TrimSpace(cfg.ClientID),
			ClientSecret: strings.TrimSpace(cfg.ClientSecret),
			RedirectURL:  strings.TrimSpace(cfg.CallbackURL),
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://" + domain + "/authorize",
				TokenURL: "https://" + domain + "/oauth/token",
			},
		},
		hc: &http.Client{Timeout: timeout},
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.domain != "" && c.clientID != ""
}

func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange canjea el code y consulta /userinfo para extraer email y nombre.
// La verificación de firma del id_token queda del lado de Auth0; acá solo
// usamos el access token contra userinfo.
func (c *Client) Exchange(ctx context.Context, code string) (auth.Identity, error) {
	if !c.IsConfigured() {
		return auth.Identity{}, ErrNotConfigured
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.hc)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrExchange, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+c.domain+"/userinfo", nil)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrUserinfo, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := c.hc.Do(req)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrUserinfo, err)
	}

	var out struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := httpclient.DecodeJSON(resp, &out); err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrUserinfo, err)
	}

	return auth.Identity{
		Email: strings.ToLower(strings.TrimSpace(out.Email)),
		Name:  strings.TrimSpace(out.Name),
	}, nil
}

// LogoutURL arma la URL de cierre de sesión del tenant.
func (c *Client) LogoutURL(returnTo string) string {
	q := url.Values{}
	q.Set("returnTo", returnTo)
	q.Set("client_id", c.clientID)
	return "https://" + c.domain + "/v2/logout?" + q.Encode()
}
