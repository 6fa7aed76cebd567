package auth0

import (
	"net/url"
	"strings"
	"testing"
)

func newTestClient() *Client {
	return NewClient(Config{
		Domain:       "my-tenant.us.auth0.com",
		ClientID:     "client-123",
		ClientSecret: "shhh",
		CallbackURL:  "http://localhost:3000/callback",
	})
}

func TestAuthCodeURL(t *testing.T) {
	c := newTestClient()

	raw := c.AuthCodeURL("state-abc")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}

	if u.Host != "my-tenant.us.auth0.com" || u.Path != "/authorize" {
		t.Fatalf("unexpected endpoint: %s", raw)
	}

	q := u.Query()
	if q.Get("client_id") != "client-123" {
		t.Fatalf("missing client_id: %s", raw)
	}
	if q.Get("state") != "state-abc" {
		t.Fatalf("missing state: %s", raw)
	}
	if q.Get("redirect_uri") != "http://localhost:3000/callback" {
		t.Fatalf("missing redirect_uri: %s", raw)
	}
	if !strings.Contains(q.Get("scope"), "email") {
		t.Fatalf("scope must request email: %s", raw)
	}
}

func TestLogoutURL(t *testing.T) {
	c := newTestClient()

	raw := c.LogoutURL("http://localhost:3000/")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse logout url: %v", err)
	}

	if u.Host != "my-tenant.us.auth0.com" || u.Path != "/v2/logout" {
		t.Fatalf("unexpected endpoint: %s", raw)
	}

	q := u.Query()
	if q.Get("returnTo") != "http://localhost:3000/" {
		t.Fatalf("missing returnTo: %s", raw)
	}
	if q.Get("client_id") != "client-123" {
		t.Fatalf("missing client_id: %s", raw)
	}
}

func TestIsConfigured(t *testing.T) {
	if NewClient(Config{}).IsConfigured() {
		t.Fatalf("empty config must not be configured")
	}
	if !newTestClient().IsConfigured() {
		t.Fatalf("full config must be configured")
	}
}
