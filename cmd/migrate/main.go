// cmd/migrate/main.go
// Migrates predictions and messages from the legacy MySQL kingbet database
// into the local PostgreSQL database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/kingbet?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/kingbet/backend/config"
	bundb "github.com/kingbet/backend/db"
	"github.com/kingbet/backend/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/kingbet?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"predictions", func() (int, error) { return migratePredictions(ctx, myDB, pgDB) }},
		{"messages", func() (int, error) { return migrateMessages(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-12s  %d rows migrated", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("migration complete")
}

// --- helpers ---

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// --- per-table migrations ---

func migratePredictions(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT id, match_name, match_time, bet_type, odds, confidence,
		        category, status, score, date, is_locked, created_at
		 FROM predictions`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Prediction
	total := 0
	for rows.Next() {
		var (
			r         models.Prediction
			score     sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.MatchName, &r.MatchTime, &r.BetType, &r.Odds,
			&r.Confidence, &r.Category, &r.Status, &score, &r.Date, &r.IsLocked,
			&createdAt); err != nil {
			return total, err
		}
		r.Score = nullStr(score)
		if createdAt.Valid {
			r.CreatedAt = createdAt.Time
		} else {
			r.CreatedAt = time.Now().UTC()
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func migrateMessages(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT id, content, link, created_at FROM messages")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Message
	total := 0
	for rows.Next() {
		var (
			r         models.Message
			link      sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.Content, &link, &createdAt); err != nil {
			return total, err
		}
		r.Link = nullStr(link)
		if createdAt.Valid {
			r.CreatedAt = createdAt.Time
		} else {
			r.CreatedAt = time.Now().UTC()
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"predictions_id_seq", "predictions", "id"},
		{"messages_id_seq", "messages", "id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}
