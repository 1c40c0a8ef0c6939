package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"document-viewer/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

const bookmarksTable = "bookmarks"

// SupabaseBookmarkRepository implements domain.BookmarkStore on the
// bookmarks table.
type SupabaseBookmarkRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseBookmarkRepository creates a new Supabase bookmark repository
func NewSupabaseBookmarkRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseBookmarkRepository {
	return &SupabaseBookmarkRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

func (r *SupabaseBookmarkRepository) Add(ctx context.Context, p domain.Principal, documentID string, b *domain.Bookmark) (*domain.Bookmark, error) {
	if b == nil {
		return nil, fmt.Errorf("bookmark is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := r.supabaseClient.GetClientWithToken(p.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"id":          b.ID,
		"user_id":     p.UserID,
		"document_id": documentID,
		"label":       sanitizeText(b.Label),
		"created_at":  b.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	locationColumns(row, b.Location)

	// Request "representation" so PostgREST returns the inserted row.
	data, _, err := client.From(bookmarksTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create bookmark: empty response")
	}

	created := mapToBookmark(rows[0])
	r.logger.Info("Bookmark created", "user_id", p.UserID, "document_id", documentID, "bookmark_id", created.ID)
	return created, nil
}

func (r *SupabaseBookmarkRepository) Remove(ctx context.Context, p domain.Principal, bookmarkID string) error {
	if bookmarkID == "" {
		return fmt.Errorf("bookmark_id is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	client, err := r.supabaseClient.GetClientWithToken(p.Token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err = client.From(bookmarksTable).
		Delete("", "").
		Eq("id", bookmarkID).
		Eq("user_id", p.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

func (r *SupabaseBookmarkRepository) List(ctx context.Context, p domain.Principal, documentID string) ([]*domain.Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := r.supabaseClient.GetClientWithToken(p.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(bookmarksTable).
		Select("*", "", false).
		Eq("user_id", p.UserID).
		Eq("document_id", documentID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	out := make([]*domain.Bookmark, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapToBookmark(row))
	}
	return out, nil
}

var reControl = regexp.MustCompile(`[\x00]`)

// sanitizeText removes characters that PostgreSQL rejects in text fields (notably NUL bytes).
func sanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = reControl.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\\u0000", "")
	return s
}
