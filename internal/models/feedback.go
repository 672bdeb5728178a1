package models

import (
	"time"

	"gorm.io/datatypes"
)

type Feedback struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"column:user_id;type:text;index" json:"userId,omitempty"`
	Name      string         `gorm:"column:name;type:text" json:"name"`
	Email     string         `gorm:"column:email;type:text" json:"email"`
	Rating    int            `gorm:"column:rating;type:integer" json:"rating"`
	Message   string         `gorm:"column:message;type:text" json:"message"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamptz;index" json:"createdAt"`
}

func (Feedback) TableName() string { return "feedback" }

// Page is a paginated listing returned by the admin endpoints.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page[T]{Items: items, Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// ListQuery is the admin pagination/search input.
type ListQuery struct {
	Search string
	Page   int
	Limit  int
}

func (q ListQuery) Normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return q
}

func (q ListQuery) Offset() int {
	n := q.Normalized()
	return (n.Page - 1) * n.Limit
}
