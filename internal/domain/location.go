package domain

import (
	"context"
	"time"
)

// DocumentRef identifies the document a viewer opens.
type DocumentRef struct {
	ID        string `json:"id"`
	SourceURI string `json:"source_uri"`
}

// DocumentLocation identifies where the reader is inside a document.
//
// Fixed-page formats use PageIndex (1-based). Reflowable formats use an
// opaque PositionToken instead. TotalUnits is 0 while the document length
// is still unknown.
type DocumentLocation struct {
	PageIndex     int    `json:"page_index,omitempty"`
	PositionToken string `json:"position_token,omitempty"`
	TotalUnits    int    `json:"total_units"`
}

// Valid reports whether the location satisfies the page bound invariant.
func (l DocumentLocation) Valid() bool {
	if l.TotalUnits < 0 || l.PageIndex < 0 {
		return false
	}
	if l.PositionToken != "" {
		return true
	}
	if l.TotalUnits > 0 {
		return l.PageIndex >= 1 && l.PageIndex <= l.TotalUnits
	}
	return true
}

// Progress returns the fraction of the document read, or 0 when unknown.
func (l DocumentLocation) Progress() float32 {
	if l.TotalUnits <= 0 || l.PageIndex <= 0 {
		return 0
	}
	return float32(l.PageIndex) / float32(l.TotalUnits)
}

// Spread is the pair of pages shown side by side in dual arrangement.
// Right is 0 when the spread holds a single page.
type Spread struct {
	Left  int `json:"left"`
	Right int `json:"right,omitempty"`
}

// Principal is the authenticated reader a session acts for.
type Principal struct {
	UserID string
	Token  string
}

// ProgressRecord is the persisted reading position of a user in a document.
type ProgressRecord struct {
	UserID        string    `json:"user_id"`
	DocumentID    string    `json:"document_id"`
	PageIndex     int       `json:"page_index,omitempty"`
	PositionToken string    `json:"position_token,omitempty"`
	TotalUnits    int       `json:"total_units,omitempty"`
	Favorite      bool      `json:"favorite"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Location converts the record back to a DocumentLocation.
func (r *ProgressRecord) Location() DocumentLocation {
	return DocumentLocation{
		PageIndex:     r.PageIndex,
		PositionToken: r.PositionToken,
		TotalUnits:    r.TotalUnits,
	}
}

// ProgressStore persists reading positions. Implementations are external
// to the viewer core; failures are reported but never block navigation.
type ProgressStore interface {
	Save(ctx context.Context, p Principal, documentID string, loc DocumentLocation) error
	Load(ctx context.Context, p Principal, documentID string) (*DocumentLocation, error)
	SaveFavorite(ctx context.Context, p Principal, documentID string, favorite bool) error
}
