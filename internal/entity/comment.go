package entity

import "time"

type Comment struct {
	ID        int64      `json:"id" db:"id"`
	EventID   int64      `json:"event_id" db:"event_id"`
	AuthorID  int64      `json:"author_id" db:"author_id"`
	ParentID  *int64     `json:"parent_id,omitempty" db:"parent_id"`
	Content   string     `json:"content" db:"content"`
	IsEdited  bool       `json:"is_edited" db:"is_edited"`
	EditedAt  *time.Time `json:"edited_at,omitempty" db:"edited_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
