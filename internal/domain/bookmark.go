package domain

import (
	"context"
	"time"
)

// Bookmark is a user-created marker on a location. It is never mutated
// after creation; it can only be removed.
type Bookmark struct {
	ID         string           `json:"id"`
	DocumentID string           `json:"document_id"`
	UserID     string           `json:"user_id,omitempty"`
	Location   DocumentLocation `json:"location"`
	Label      string           `json:"label"`
	CreatedAt  time.Time        `json:"created_at"`
}

// BookmarkStore persists bookmarks.
type BookmarkStore interface {
	Add(ctx context.Context, p Principal, documentID string, b *Bookmark) (*Bookmark, error)
	Remove(ctx context.Context, p Principal, bookmarkID string) error
	List(ctx context.Context, p Principal, documentID string) ([]*Bookmark, error)
}
