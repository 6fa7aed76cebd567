package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"pet-registry/internal/adapters/auth/auth0"
	pg "pet-registry/internal/adapters/storage/postgres"
	"pet-registry/internal/config"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/platform/session"
	"pet-registry/internal/ports/auth"
	"pet-registry/internal/router"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg, err := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			logg.Fatal("db open failed", zap.Error(err))
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := pg.Migrate(ctx, db); err != nil {
			cancel()
			logg.Fatal("db migrate failed", zap.Error(err))
		}
		cancel()
	} else {
		logg.Warn("DB_DSN no configurado; usando almacenamiento en memoria")
	}

	var provider auth.Provider
	a0 := auth0.NewClient(auth0.Config{
		Domain:       cfg.Auth0Domain,
		ClientID:     cfg.Auth0ClientID,
		ClientSecret: cfg.Auth0ClientSecret,
		CallbackURL:  cfg.CallbackURL(),
	})
	if a0.IsConfigured() {
		provider = a0
	} else {
		logg.Warn("auth0 no configurado; /login devolverá 503")
	}

	secret := cfg.AppSecretKey
	if secret == "" {
		// sin APP_SECRET_KEY las sesiones no sobreviven un reinicio
		secret = uuid.NewString()
		logg.Warn("APP_SECRET_KEY no configurado; usando secreto efímero")
	}
	sessions := session.NewManager(secret, cfg.SessionTTL)

	h := router.NewRouter(router.Options{
		Provider: provider,
		Sessions: sessions,
		Log:      logg,
		HomeURL:  cfg.HomeURL(),
		DB:       db,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logg.Info("starting server", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal("server error", zap.Error(err))
	}
}
