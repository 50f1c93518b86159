// cmd/seed/main.go
// Seeds demo predictions and a welcome message into an empty database.
//
// Usage:
//
//	go run ./cmd/seed
//	go run ./cmd/seed -force   # seed even when predictions already exist
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/kingbet/backend/config"
	bundb "github.com/kingbet/backend/db"
	"github.com/kingbet/backend/models"
	"github.com/kingbet/backend/store"
)

func main() {
	force := flag.Bool("force", false, "seed even if predictions already exist")
	flag.Parse()

	ctx := context.Background()

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables:", err)
	}

	st := store.New(db)

	existing, err := st.Predictions(ctx, store.PredictionFilter{})
	if err != nil {
		log.Fatal("list predictions:", err)
	}
	if len(existing) > 0 && !*force {
		log.Printf("predictions table already has %d rows, nothing to do", len(existing))
		return
	}

	today := time.Now().Format("2006-01-02")

	predictions := []models.Prediction{
		{
			MatchName:  "Real Madrid vs Barcelona",
			MatchTime:  "20:00",
			BetType:    "Both Teams to Score",
			Odds:       "1.65",
			Confidence: "High",
			Category:   models.CategoryFree,
			Status:     models.StatusPending,
			Date:       today,
		},
		{
			MatchName:  "Man City vs Liverpool",
			MatchTime:  "17:30",
			BetType:    "Over 2.5 Goals",
			Odds:       "1.50",
			Confidence: "Medium",
			Category:   models.CategoryFree,
			Status:     models.StatusWon,
			Date:       today,
		},
		{
			MatchName:  "Bayern Munich vs Dortmund",
			MatchTime:  "18:30",
			BetType:    "Home Win & Over 2.5",
			Odds:       "2.10",
			Confidence: "Very High",
			Category:   models.CategoryVIP,
			Status:     models.StatusPending,
			Date:       today,
			IsLocked:   true,
		},
		{
			MatchName:  "PSG vs Marseille",
			MatchTime:  "21:00",
			BetType:    "Exact Score 3-1",
			Odds:       "11.00",
			Confidence: "Risky",
			Category:   models.CategoryVIP,
			Status:     models.StatusPending,
			Date:       today,
			IsLocked:   true,
		},
	}

	for i := range predictions {
		if err := st.CreatePrediction(ctx, &predictions[i]); err != nil {
			log.Fatal("seed prediction:", err)
		}
	}

	link := "https://t.me/kingbet_channel"
	msg := &models.Message{
		Content: "🔥 Bienvenue sur Kingbet ! Profitez de nos pronostics gratuits et passez VIP pour maximiser vos gains.",
		Link:    &link,
	}
	if err := st.CreateMessage(ctx, msg); err != nil {
		log.Fatal("seed message:", err)
	}

	fmt.Printf("seeded %d predictions and 1 message for %s\n", len(predictions), today)
}
