package handler

import (
	"encoding/json"
	"net/http"

	"document-viewer/internal/domain"
	apperrors "document-viewer/pkg/errors"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetTokenFromContext extracts the authentication token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// GetPrincipalFromContext combines user and token into the principal a
// session acts for.
func GetPrincipalFromContext(r *http.Request) (domain.Principal, bool) {
	user, ok := GetUserFromContext(r)
	if !ok || user == nil || user.ID == "" {
		return domain.Principal{}, false
	}
	token, _ := GetTokenFromContext(r)
	return domain.Principal{UserID: user.ID, Token: token}, true
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

type errorResponse struct {
	Error    string                   `json:"error"`
	Type     apperrors.ErrorType      `json:"type"`
	Details  string                   `json:"details,omitempty"`
	Location *domain.DocumentLocation `json:"location,omitempty"`
}

// writeAppError maps err to its status and writes it. loc, when given, is
// the unchanged location returned with navigation errors.
func writeAppError(w http.ResponseWriter, logger domain.Logger, err error, loc *domain.DocumentLocation) {
	appErr := apperrors.FromDomain(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", err)
	}
	writeJSON(w, appErr.StatusCode, errorResponse{
		Error:    appErr.Message,
		Type:     appErr.Type,
		Details:  appErr.Details,
		Location: loc,
	})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("Invalid request body", err.Error())
	}
	return nil
}
