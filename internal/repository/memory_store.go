package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"document-viewer/internal/domain"
)

// MemoryStore keeps progress and bookmarks in process memory. It backs
// local development when Supabase is not configured.
type MemoryStore struct {
	mu        sync.RWMutex
	progress  map[string]*domain.ProgressRecord
	bookmarks map[string]*domain.Bookmark
	now       func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		progress:  make(map[string]*domain.ProgressRecord),
		bookmarks: make(map[string]*domain.Bookmark),
		now:       time.Now,
	}
}

func (m *MemoryStore) record(p domain.Principal, documentID string) *domain.ProgressRecord {
	key := progressKey(p.UserID, documentID)
	rec, ok := m.progress[key]
	if !ok {
		rec = &domain.ProgressRecord{UserID: p.UserID, DocumentID: documentID}
		m.progress[key] = rec
	}
	return rec
}

func (m *MemoryStore) Save(ctx context.Context, p domain.Principal, documentID string, loc domain.DocumentLocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.record(p, documentID)
	rec.PageIndex = loc.PageIndex
	rec.PositionToken = loc.PositionToken
	rec.TotalUnits = loc.TotalUnits
	rec.UpdatedAt = m.now()
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, p domain.Principal, documentID string) (*domain.DocumentLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.progress[progressKey(p.UserID, documentID)]
	if !ok || (rec.PageIndex == 0 && rec.PositionToken == "") {
		return nil, nil
	}
	loc := rec.Location()
	return &loc, nil
}

func (m *MemoryStore) SaveFavorite(ctx context.Context, p domain.Principal, documentID string, favorite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.record(p, documentID)
	rec.Favorite = favorite
	rec.UpdatedAt = m.now()
	return nil
}

func (m *MemoryStore) Add(ctx context.Context, p domain.Principal, documentID string, b *domain.Bookmark) (*domain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *b
	stored.UserID = p.UserID
	stored.DocumentID = documentID
	m.bookmarks[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MemoryStore) Remove(ctx context.Context, p domain.Principal, bookmarkID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookmarks[bookmarkID]
	if !ok {
		return domain.ErrBookmarkNotFound
	}
	if b.UserID != p.UserID {
		return domain.ErrAccessDenied
	}
	delete(m.bookmarks, bookmarkID)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, p domain.Principal, documentID string) ([]*domain.Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Bookmark, 0)
	for _, b := range m.bookmarks {
		if b.UserID == p.UserID && b.DocumentID == documentID {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
