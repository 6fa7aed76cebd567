package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-registry/internal/adapters/storage/memory"
	pg "pet-registry/internal/adapters/storage/postgres"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/users"
	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/session"
	"pet-registry/internal/ports/auth"
	"pet-registry/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Options struct {
	Provider auth.Provider    // puede ser nil (tenant sin configurar: /login devuelve 503)
	Sessions *session.Manager // si es nil, se crea uno con secreto efímero (modo dev)
	Log      *zap.Logger
	HomeURL  string // returnTo absoluto para el logout del proveedor

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	sessions := opts.Sessions
	if sessions == nil {
		// modo dev: secreto efímero, las sesiones mueren con el proceso
		sessions = session.NewManager(uuid.NewString(), 0)
	}

	r.Use(middleware.AuthContext(sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		userRepo users.Repository
		petRepo  pets.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Warn("no se pudo abrir la base, usando repos en memoria", zap.Error(err))
			} else {
				db = opened
			}
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		petRepo = pg.NewPetsRepo(db)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
	}

	usersSvc := users.NewService(userRepo)
	petsSvc := pets.NewService(petRepo)

	views := web.NewRenderer(log)

	homeURL := opts.HomeURL
	if homeURL == "" {
		homeURL = "/"
	}

	users.RegisterRoutes(r, usersSvc, opts.Provider, sessions, views, homeURL, log)
	pets.RegisterRoutes(r, petsSvc, usersSvc, views, log)

	return r
}
