package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Category : Transaction Category Model
type Category struct {
	bun.BaseModel `bun:"table:transaction_categories,alias:tc"`

	ID           int64     `json:"id" bun:",pk,autoincrement"`
	Name         string    `json:"name" bun:",notnull"`
	Type         string    `json:"type" bun:",notnull"`
	ParentID     int64     `json:"parent_id,omitempty" bun:",nullzero"`
	Icon         string    `json:"icon,omitempty" bun:",nullzero"`
	Description  string    `json:"description,omitempty" bun:",nullzero"`
	IsActive     bool      `json:"is_active" bun:",notnull"`
	InStatistics bool      `json:"in_statistics" bun:",notnull"`
	CreatedAt    time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `json:"updated_at" bun:",nullzero,notnull,default:current_timestamp"`
}
