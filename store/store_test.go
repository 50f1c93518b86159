package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/kingbet/backend/db"
	"github.com/kingbet/backend/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and private to the test.
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, db.CreateTables(context.Background(), bdb))
	return New(bdb)
}

func seedPrediction(t *testing.T, s *Store, matchName, date, category string) *models.Prediction {
	t.Helper()

	pred := &models.Prediction{
		MatchName:  matchName,
		MatchTime:  "20:00",
		BetType:    "Over 2.5 Goals",
		Odds:       "1.50",
		Confidence: "High",
		Category:   category,
		Date:       date,
	}
	require.NoError(t, s.CreatePrediction(context.Background(), pred))
	return pred
}

func TestCreatePredictionDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pred := &models.Prediction{
		MatchName:  "Real Madrid vs Barcelona",
		MatchTime:  "20:00",
		BetType:    "Both Teams to Score",
		Odds:       "1.65",
		Confidence: "High",
		Date:       "2024-05-01",
	}
	require.NoError(t, s.CreatePrediction(ctx, pred))

	assert.Greater(t, pred.ID, 0)
	assert.Equal(t, models.CategoryFree, pred.Category)
	assert.Equal(t, models.StatusPending, pred.Status)
	assert.Nil(t, pred.Score)
	assert.False(t, pred.CreatedAt.IsZero())

	second := seedPrediction(t, s, "Man City vs Liverpool", "2024-05-01", models.CategoryVIP)
	assert.NotEqual(t, pred.ID, second.ID)
}

func TestCreatePredictionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	score := "2-1"
	pred := &models.Prediction{
		MatchName:  "PSG vs Marseille",
		MatchTime:  "21:00",
		BetType:    "Exact Score 3-1",
		Odds:       "11.00",
		Confidence: "Risky",
		Category:   models.CategoryVIP,
		Status:     models.StatusWon,
		Score:      &score,
		Date:       "2024-05-02",
		IsLocked:   true,
	}
	require.NoError(t, s.CreatePrediction(ctx, pred))

	got, err := s.Prediction(ctx, pred.ID)
	require.NoError(t, err)

	assert.Equal(t, pred.MatchName, got.MatchName)
	assert.Equal(t, pred.MatchTime, got.MatchTime)
	assert.Equal(t, pred.BetType, got.BetType)
	assert.Equal(t, pred.Odds, got.Odds)
	assert.Equal(t, pred.Confidence, got.Confidence)
	assert.Equal(t, models.CategoryVIP, got.Category)
	assert.Equal(t, models.StatusWon, got.Status)
	require.NotNil(t, got.Score)
	assert.Equal(t, "2-1", *got.Score)
	assert.Equal(t, "2024-05-02", got.Date)
	assert.True(t, got.IsLocked)
}

func TestPredictionNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Prediction(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPredictionsOrderAndFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1 := seedPrediction(t, s, "match one", "2024-05-01", models.CategoryFree)
	p2 := seedPrediction(t, s, "match two", "2024-05-02", models.CategoryVIP)
	p3 := seedPrediction(t, s, "match three", "2024-05-02", models.CategoryFree)
	p4 := seedPrediction(t, s, "match four", "2024-05-03", models.CategoryVIP)

	tests := []struct {
		name    string
		filter  PredictionFilter
		wantIDs []int
	}{
		{
			name:    "no filter, date desc then insertion order",
			filter:  PredictionFilter{},
			wantIDs: []int{p4.ID, p2.ID, p3.ID, p1.ID},
		},
		{
			name:    "by date",
			filter:  PredictionFilter{Date: "2024-05-02"},
			wantIDs: []int{p2.ID, p3.ID},
		},
		{
			name:    "by category",
			filter:  PredictionFilter{Category: models.CategoryVIP},
			wantIDs: []int{p4.ID, p2.ID},
		},
		{
			name:    "date and category combine",
			filter:  PredictionFilter{Date: "2024-05-02", Category: models.CategoryFree},
			wantIDs: []int{p3.ID},
		},
		{
			name:    "no match",
			filter:  PredictionFilter{Date: "2024-01-01"},
			wantIDs: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds, err := s.Predictions(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]int, 0, len(preds))
			for _, p := range preds {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestUpdatePredictionPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pred := seedPrediction(t, s, "match one", "2024-05-01", models.CategoryFree)

	won := models.StatusWon
	score := "2-1"
	updated, err := s.UpdatePrediction(ctx, pred.ID, PredictionUpdate{
		Status: &won,
		Score:  &score,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWon, updated.Status)
	require.NotNil(t, updated.Score)
	assert.Equal(t, "2-1", *updated.Score)
	// Unspecified fields survive.
	assert.Equal(t, "match one", updated.MatchName)
	assert.Equal(t, pred.CreatedAt.Unix(), updated.CreatedAt.Unix())

	// A later patch without a score leaves the stored score untouched.
	pending := models.StatusPending
	updated, err = s.UpdatePrediction(ctx, pred.ID, PredictionUpdate{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	require.NotNil(t, updated.Score)
	assert.Equal(t, "2-1", *updated.Score)
}

func TestUpdatePredictionNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	won := models.StatusWon
	_, err := s.UpdatePrediction(ctx, 99, PredictionUpdate{Status: &won})
	assert.ErrorIs(t, err, ErrNotFound)

	// Empty patches 404 on missing ids too.
	_, err = s.UpdatePrediction(ctx, 99, PredictionUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePredictionIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pred := seedPrediction(t, s, "match one", "2024-05-01", models.CategoryFree)

	require.NoError(t, s.DeletePrediction(ctx, pred.ID))

	_, err := s.Prediction(ctx, pred.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, s.DeletePrediction(ctx, pred.ID))
}

func TestMessages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	link := "https://t.me/kingbet_channel"
	first := &models.Message{Content: "first", Link: &link}
	require.NoError(t, s.CreateMessage(ctx, first))
	second := &models.Message{Content: "second"}
	require.NoError(t, s.CreateMessage(ctx, second))

	msgs, err := s.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	// Newest first.
	assert.Equal(t, second.ID, msgs[0].ID)
	assert.Equal(t, "second", msgs[0].Content)
	assert.Nil(t, msgs[0].Link)
	require.NotNil(t, msgs[1].Link)
	assert.Equal(t, link, *msgs[1].Link)

	require.NoError(t, s.DeleteMessage(ctx, first.ID))
	msgs, err = s.Messages(ctx)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	// Idempotent delete.
	assert.NoError(t, s.DeleteMessage(ctx, first.ID))
}
