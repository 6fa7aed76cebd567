package web

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer sirve las vistas embebidas por nombre de archivo.
type Renderer struct {
	tmpl *template.Template
	log  *zap.Logger
}

func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	// Las vistas van embebidas en el binario; un error de parseo es un bug
	// de build, por eso Must.
	return &Renderer{
		tmpl: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
		log:  log,
	}
}

func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	// el status ya salió por el socket; solo queda dejar constancia
	if err := rd.tmpl.ExecuteTemplate(w, name, data); err != nil {
		rd.log.Error("render failed", zap.String("view", name), zap.Error(err))
	}
}
