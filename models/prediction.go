package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Prediction categories (access tiers).
const (
	CategoryFree = "free"
	CategoryVIP  = "vip"
)

// Prediction outcome states.
const (
	StatusPending = "pending"
	StatusWon     = "won"
	StatusLost    = "lost"
)

// Prediction is a published betting tip.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:p"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	MatchName  string    `bun:"match_name,notnull" json:"matchName"`
	MatchTime  string    `bun:"match_time,notnull" json:"matchTime"`
	BetType    string    `bun:"bet_type,notnull" json:"betType"`
	Odds       string    `bun:"odds,notnull" json:"odds"`
	Confidence string    `bun:"confidence,notnull" json:"confidence"`
	Category   string    `bun:"category,notnull,default:'free'" json:"category"`
	Status     string    `bun:"status,notnull,default:'pending'" json:"status"`
	Score      *string   `bun:"score" json:"score"`
	Date       string    `bun:"date,notnull" json:"date"`
	IsLocked   bool      `bun:"is_locked,notnull,default:false" json:"isLocked"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// ValidCategory reports whether c is a known access tier.
func ValidCategory(c string) bool {
	return c == CategoryFree || c == CategoryVIP
}

// ValidStatus reports whether s is a known outcome state.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusWon || s == StatusLost
}
