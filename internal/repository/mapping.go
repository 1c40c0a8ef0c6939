package repository

import (
	"time"

	"document-viewer/internal/domain"
)

// Helper functions for type conversion
func getString(data map[string]interface{}, key string) string {
	if val, ok := data[key]; ok && val != nil {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

func getInt(data map[string]interface{}, key string) int {
	if val, ok := data[key]; ok && val != nil {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func getBool(data map[string]interface{}, key string) bool {
	if val, ok := data[key]; ok && val != nil {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getTime(data map[string]interface{}, key string) time.Time {
	raw := getString(data, key)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	// PostgREST omits the zone designator for timestamp without time zone.
	if t, err := time.Parse("2006-01-02T15:04:05.999999", raw); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func mapToLocation(data map[string]interface{}) domain.DocumentLocation {
	return domain.DocumentLocation{
		PageIndex:     getInt(data, "page_number"),
		PositionToken: getString(data, "position_token"),
		TotalUnits:    getInt(data, "total_units"),
	}
}

func mapToProgressRecord(data map[string]interface{}) *domain.ProgressRecord {
	loc := mapToLocation(data)
	return &domain.ProgressRecord{
		UserID:        getString(data, "user_id"),
		DocumentID:    getString(data, "document_id"),
		PageIndex:     loc.PageIndex,
		PositionToken: loc.PositionToken,
		TotalUnits:    loc.TotalUnits,
		Favorite:      getBool(data, "is_favorite"),
		UpdatedAt:     getTime(data, "updated_at"),
	}
}

func mapToBookmark(data map[string]interface{}) *domain.Bookmark {
	return &domain.Bookmark{
		ID:         getString(data, "id"),
		DocumentID: getString(data, "document_id"),
		UserID:     getString(data, "user_id"),
		Location:   mapToLocation(data),
		Label:      getString(data, "label"),
		CreatedAt:  getTime(data, "created_at"),
	}
}

// locationColumns writes whichever of page number or position token the
// location carries; the other column is cleared.
func locationColumns(row map[string]interface{}, loc domain.DocumentLocation) {
	if loc.PositionToken != "" {
		row["position_token"] = loc.PositionToken
		row["page_number"] = nil
	} else {
		row["page_number"] = loc.PageIndex
		row["position_token"] = nil
	}
	row["total_units"] = loc.TotalUnits
}
