package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"document-viewer/internal/domain"
)

const readingPositionsTable = "reading_positions"

// SupabaseProgressRepository implements domain.ProgressStore on the
// reading_positions table. Rows are keyed by (user_id, document_id).
type SupabaseProgressRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
	now            func() time.Time
}

// NewSupabaseProgressRepository creates a new Supabase progress repository
func NewSupabaseProgressRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseProgressRepository {
	return &SupabaseProgressRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
		now:            time.Now,
	}
}

// Save upserts the reading position for a document
func (r *SupabaseProgressRepository) Save(ctx context.Context, p domain.Principal, documentID string, loc domain.DocumentLocation) error {
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

	row := map[string]interface{}{
		"user_id":     p.UserID,
		"document_id": documentID,
		"updated_at":  r.now().UTC().Format(time.RFC3339Nano),
	}
	locationColumns(row, loc)

	_, _, err = client.From(readingPositionsTable).
		Upsert(row, "user_id,document_id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save reading position: %w", err)
	}

	r.logger.Debug("Reading position saved",
		"user_id", p.UserID,
		"document_id", documentID,
		"page_number", loc.PageIndex)
	return nil
}

// Load returns the stored reading position, or nil when none exists
func (r *SupabaseProgressRepository) Load(ctx context.Context, p domain.Principal, documentID string) (*domain.DocumentLocation, error) {
	record, err := r.GetRecord(ctx, p, documentID)
	if err != nil || record == nil {
		return nil, err
	}
	loc := record.Location()
	return &loc, nil
}

// GetRecord returns the full progress record including the favorite flag
func (r *SupabaseProgressRepository) GetRecord(ctx context.Context, p domain.Principal, documentID string) (*domain.ProgressRecord, error) {
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

	data, _, err := client.From(readingPositionsTable).
		Select("*", "", false).
		Eq("user_id", p.UserID).
		Eq("document_id", documentID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get reading position: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return mapToProgressRecord(rows[0]), nil
}

// SaveFavorite upserts only the favorite flag, leaving the position as is
func (r *SupabaseProgressRepository) SaveFavorite(ctx context.Context, p domain.Principal, documentID string, favorite bool) error {
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

	row := map[string]interface{}{
		"user_id":     p.UserID,
		"document_id": documentID,
		"is_favorite": favorite,
		"updated_at":  r.now().UTC().Format(time.RFC3339Nano),
	}
	_, _, err = client.From(readingPositionsTable).
		Upsert(row, "user_id,document_id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}

	r.logger.Info("Favorite updated", "user_id", p.UserID, "document_id", documentID, "favorite", favorite)
	return nil
}
