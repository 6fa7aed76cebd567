package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRender_KnownView(t *testing.T) {
	rd := NewRenderer(nil)

	rec := httptest.NewRecorder()
	rd.Render(rec, http.StatusOK, "home.html", map[string]any{"LoggedIn": false})

	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("expected rendered page, got status %d with %d bytes", rec.Code, rec.Body.Len())
	}
}

func TestRender_UnknownViewLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rd := NewRenderer(zap.New(core))

	rec := httptest.NewRecorder()
	rd.Render(rec, http.StatusOK, "no_existe.html", nil)

	if logs.FilterMessage("render failed").Len() != 1 {
		t.Fatalf("expected the render failure to be logged, got %d entries", logs.Len())
	}
}
