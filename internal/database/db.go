package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Pool bounds the connection pool for the slots database. Schedule reads
// arrive in bursts when a day's page loads, so idle connections are kept at
// the same cap as open ones rather than torn down between bursts.
type Pool struct {
	MaxConns int           // cap on open and idle connections
	MaxLife  time.Duration // recycle connections older than this
}

// Open dials MySQL, applies the pool bounds and verifies the connection with
// a short ping. Zero pool values fall back to 25 connections / 30 minutes.
func Open(user, pass, host, port, name string, pool Pool) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(user, pass, host, port, name))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	if pool.MaxConns <= 0 {
		pool.MaxConns = 25
	}
	if pool.MaxLife <= 0 {
		pool.MaxLife = 30 * time.Minute
	}
	db.SetMaxOpenConns(pool.MaxConns)
	db.SetMaxIdleConns(pool.MaxConns)
	db.SetConnMaxLifetime(pool.MaxLife)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// dsn builds the driver connection string. Reservations key on DATE columns,
// so parseTime and loc=UTC are pinned to keep calendar days stable no matter
// where the server runs.
func dsn(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = user + ":" + pass
	}
	return fmt.Sprintf("%s@tcp(%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, net.JoinHostPort(host, port), name)
}
