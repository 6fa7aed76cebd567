package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para una app chica (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate crea las tablas si no existen. El UNIQUE sobre email es lo que hace
// seguro el upsert de usuarios frente a primeros logins concurrentes; sin esa
// restricción el resolve-or-create podría duplicar filas.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id_usuario BIGSERIAL PRIMARY KEY,
			email      TEXT NOT NULL UNIQUE,
			nombre     TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS mascotas (
			id_mascota BIGSERIAL PRIMARY KEY,
			id_usuario BIGINT NOT NULL REFERENCES usuarios(id_usuario),
			nombre     TEXT NOT NULL,
			tipo       TEXT NOT NULL,
			raza       TEXT NOT NULL DEFAULT '',
			edad       INT NOT NULL DEFAULT 0,
			peso       DOUBLE PRECISION NOT NULL DEFAULT 0,
			notas      TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
