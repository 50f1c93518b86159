package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/kingbet/backend/config"
	"github.com/kingbet/backend/models"
)

// Setup opens a database connection using the provided config.
// A sqlite:// DSN selects the embedded SQLite driver (local development);
// anything else is treated as PostgreSQL.
func Setup(cfg *config.Config) *bun.DB {
	dsn := cfg.DSN()

	var db *bun.DB
	if path, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		sqldb, err := sql.Open(sqliteshim.ShimName, path)
		if err != nil {
			log.Fatal("failed to open sqlite database:", err)
		}
		// SQLite handles one writer at a time.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	} else {
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db = bun.NewDB(sqldb, pgdialect.New())
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.Prediction)(nil),
		(*models.Message)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	return nil
}
