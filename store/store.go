// Package store is the storage access layer: a thin mapping from domain
// operations onto database calls. It holds no state beyond the connection;
// every read hits the database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/kingbet/backend/models"
)

// ErrNotFound is returned when an operation targets a row that does not exist.
var ErrNotFound = errors.New("store: not found")

// Store executes domain operations against the database.
type Store struct {
	db *bun.DB
}

// New creates a Store over the given database connection.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// PredictionFilter narrows Predictions by exact string match.
// Empty fields are not applied.
type PredictionFilter struct {
	Date     string
	Category string
}

// Predictions returns predictions ordered by date descending,
// insertion order within a date.
func (s *Store) Predictions(ctx context.Context, f PredictionFilter) ([]models.Prediction, error) {
	preds := make([]models.Prediction, 0)
	q := s.db.NewSelect().Model(&preds).
		OrderExpr("p.date DESC").
		OrderExpr("p.id ASC")

	if f.Date != "" {
		q = q.Where("p.date = ?", f.Date)
	}
	if f.Category != "" {
		q = q.Where("p.category = ?", f.Category)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return preds, nil
}

// Prediction returns a single prediction by id, or ErrNotFound.
func (s *Store) Prediction(ctx context.Context, id int) (*models.Prediction, error) {
	pred := new(models.Prediction)
	err := s.db.NewSelect().Model(pred).
		Where("p.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pred, nil
}

// CreatePrediction inserts pred, applying defaults for omitted category and
// status and stamping the creation time. The generated id is set on pred.
func (s *Store) CreatePrediction(ctx context.Context, pred *models.Prediction) error {
	if pred.Category == "" {
		pred.Category = models.CategoryFree
	}
	if pred.Status == "" {
		pred.Status = models.StatusPending
	}
	pred.CreatedAt = time.Now().UTC()

	_, err := s.db.NewInsert().Model(pred).Exec(ctx)
	return err
}

// PredictionUpdate carries the fields of a partial update.
// Nil fields are left untouched.
type PredictionUpdate struct {
	MatchName  *string
	MatchTime  *string
	BetType    *string
	Odds       *string
	Confidence *string
	Category   *string
	Status     *string
	Score      *string
	Date       *string
	IsLocked   *bool
}

// UpdatePrediction applies the non-nil fields of up to the prediction with
// the given id and returns the updated row. Returns ErrNotFound if no such
// prediction exists. The id and creation time are immutable.
func (s *Store) UpdatePrediction(ctx context.Context, id int, up PredictionUpdate) (*models.Prediction, error) {
	q := s.db.NewUpdate().
		Model((*models.Prediction)(nil)).
		Where("id = ?", id)

	touched := false
	set := func(expr string, v interface{}) {
		q = q.Set(expr, v)
		touched = true
	}

	if up.MatchName != nil {
		set("match_name = ?", *up.MatchName)
	}
	if up.MatchTime != nil {
		set("match_time = ?", *up.MatchTime)
	}
	if up.BetType != nil {
		set("bet_type = ?", *up.BetType)
	}
	if up.Odds != nil {
		set("odds = ?", *up.Odds)
	}
	if up.Confidence != nil {
		set("confidence = ?", *up.Confidence)
	}
	if up.Category != nil {
		set("category = ?", *up.Category)
	}
	if up.Status != nil {
		set("status = ?", *up.Status)
	}
	if up.Score != nil {
		set("score = ?", *up.Score)
	}
	if up.Date != nil {
		set("date = ?", *up.Date)
	}
	if up.IsLocked != nil {
		set("is_locked = ?", *up.IsLocked)
	}

	if !touched {
		// Empty patch: nothing to write, still 404s on a missing id.
		return s.Prediction(ctx, id)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	return s.Prediction(ctx, id)
}

// DeletePrediction removes a prediction by id. Deleting an id that does not
// exist is not an error.
func (s *Store) DeletePrediction(ctx context.Context, id int) error {
	_, err := s.db.NewDelete().
		Model((*models.Prediction)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// Messages returns all messages in descending creation order.
func (s *Store) Messages(ctx context.Context) ([]models.Message, error) {
	msgs := make([]models.Message, 0)
	err := s.db.NewSelect().Model(&msgs).
		OrderExpr("m.created_at DESC").
		OrderExpr("m.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// CreateMessage inserts msg, stamping the creation time.
// The generated id is set on msg.
func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	msg.CreatedAt = time.Now().UTC()
	_, err := s.db.NewInsert().Model(msg).Exec(ctx)
	return err
}

// DeleteMessage removes a message by id. Deleting an id that does not exist
// is not an error.
func (s *Store) DeleteMessage(ctx context.Context, id int) error {
	_, err := s.db.NewDelete().
		Model((*models.Message)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
