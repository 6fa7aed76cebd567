package pets

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-registry/internal/domain/users"
	"pet-registry/internal/middleware"
	"pet-registry/internal/ports/auth"
	"pet-registry/internal/web"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service, views *web.Renderer, log *zap.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, views))

		// alta: única ruta que exige sesión
		pr.Get("/new", newPetFormHandler(views))
		pr.Post("/new", createPetHandler(svc, usersSvc, log))

		pr.Get("/{petID}", getPetHandler(svc, views))

		pr.Get("/{petID}/edit", editPetFormHandler(svc, views))
		pr.Post("/{petID}/edit", updatePetHandler(svc, log))

		pr.Get("/{petID}/delete", deletePetConfirmHandler(svc, views))
		pr.Post("/{petID}/delete", deletePetHandler(svc, log))
	})
}

func listPetsHandler(svc *Service, views *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok || strings.TrimSpace(id.Email) == "" {
			// sin sesión: listado vacío
			views.Render(w, http.StatusOK, "pets.html", map[string]any{
				"LoggedIn": false,
				"Pets":     []Pet{},
			})
			return
		}

		// Listado global por ahora. El repo ya soporta filtrar por dueño
		// (List(ctx, &ownerID)) pero no está decidido si /pets debe mostrar
		// solo las mascotas del usuario logueado o todas.
		items, err := svc.List(r.Context(), nil)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		views.Render(w, http.StatusOK, "pets.html", map[string]any{
			"LoggedIn": true,
			"Pets":     items,
		})
	}
}

func getPetHandler(svc *Service, views *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(r)
		if !ok {
			http.Error(w, "Mascota no encontrada", http.StatusNotFound)
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "Mascota no encontrada", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		views.Render(w, http.StatusOK, "pet_detail.html", map[string]any{"Pet": p})
	}
}

func newPetFormHandler(views *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(w, r); !ok {
			return
		}
		views.Render(w, http.StatusOK, "pets_new.html", nil)
	}
}

func createPetHandler(svc *Service, usersSvc *users.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		// el alta es el único camino que materializa el usuario interno
		owner, err := usersSvc.ResolveOrCreate(r.Context(), id.Email, id.Name)
		if err != nil {
			log.Error("resolve user failed", zap.Error(err), zap.String("email", id.Email))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		in, err := formInput(r)
		if err != nil {
			http.Error(w, "datos de formulario inválidos", http.StatusBadRequest)
			return
		}

		if _, err := svc.Create(r.Context(), owner.ID, CreateInput(in)); err != nil {
			// un alta fallida no corta el flujo: se loguea y se vuelve
			// al listado igual
			log.Error("create pet failed", zap.Error(err), zap.String("owner_email", id.Email))
		}

		http.Redirect(w, r, "/pets", http.StatusFound)
	}
}

func editPetFormHandler(svc *Service, views *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadPet(w, r, svc)
		if !ok {
			return
		}
		views.Render(w, http.StatusOK, "pets_edit.html", map[string]any{"Pet": p})
	}
}

func updatePetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadPet(w, r, svc)
		if !ok {
			return
		}

		in, err := formInput(r)
		if err != nil {
			http.Error(w, "datos de formulario inválidos", http.StatusBadRequest)
			return
		}

		if _, err := svc.Update(r.Context(), p.ID, UpdateInput(in)); err != nil {
			// ErrNotFound acá es una carrera con un delete: se ignora,
			// igual que cualquier otro fallo del store
			log.Error("update pet failed", zap.Error(err), zap.Int64("pet_id", p.ID))
		}

		http.Redirect(w, r, "/pets", http.StatusFound)
	}
}

func deletePetConfirmHandler(svc *Service, views *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadPet(w, r, svc)
		if !ok {
			return
		}
		views.Render(w, http.StatusOK, "pets_delete.html", map[string]any{"Pet": p})
	}
}

func deletePetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadPet(w, r, svc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), p.ID); err != nil && !errors.Is(err, ErrNotFound) {
			log.Error("delete pet failed", zap.Error(err), zap.Int64("pet_id", p.ID))
		}

		http.Redirect(w, r, "/pets", http.StatusFound)
	}
}

// requireIdentity corta con redirect a /login cuando no hay sesión.
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok || strings.TrimSpace(id.Email) == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return auth.Identity{}, false
	}
	return id, true
}

// loadPet resuelve {petID} y corta con 404 si no es numérico o no existe.
func loadPet(w http.ResponseWriter, r *http.Request, svc *Service) (Pet, bool) {
	id, ok := petIDParam(r)
	if !ok {
		http.Error(w, "Mascota no encontrada", http.StatusNotFound)
		return Pet{}, false
	}

	p, err := svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Mascota no encontrada", http.StatusNotFound)
			return Pet{}, false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return Pet{}, false
	}
	return p, true
}

func petIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// petForm refleja los names del formulario, que siguen a las columnas.
type petForm struct {
	Name    string
	Species string
	Breed   string
	Age     int
	Weight  float64
	Notes   string
}

func formInput(r *http.Request) (petForm, error) {
	if err := r.ParseForm(); err != nil {
		return petForm{}, err
	}

	edad, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("edad")))
	if err != nil {
		return petForm{}, err
	}
	peso, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("peso")), 64)
	if err != nil {
		return petForm{}, err
	}

	return petForm{
		Name:    r.PostFormValue("nombre"),
		Species: r.PostFormValue("tipo"),
		Breed:   r.PostFormValue("raza"),
		Age:     edad,
		Weight:  peso,
		Notes:   r.PostFormValue("notas"),
	}, nil
}
