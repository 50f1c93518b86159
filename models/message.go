package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Message is a public announcement, optionally linking out.
type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Content   string    `bun:"content,notnull" json:"content"`
	Link      *string   `bun:"link" json:"link"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}
