package handler

import (
	"errors"
	"net/http"
	"strconv"

	"document-viewer/internal/domain"
	"document-viewer/internal/service"
	"document-viewer/internal/viewer"
	apperrors "document-viewer/pkg/errors"

	"github.com/gorilla/mux"
)

// SessionManager is the session registry the handler drives.
type SessionManager interface {
	Open(p domain.Principal, req service.OpenRequest) (string, *viewer.Session, error)
	Get(p domain.Principal, id string) (*viewer.Session, error)
	Close(p domain.Principal, id string) error
}

// SessionHandler exposes viewer sessions to the hosting UI
type SessionHandler struct {
	sessions SessionManager
	logger   domain.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions SessionManager, logger domain.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

type sessionResponse struct {
	ID string `json:"id"`
	viewer.Snapshot
}

type navigateRequest struct {
	ToPage     *int                 `json:"to_page,omitempty"`
	ToLocation string               `json:"to_location,omitempty"`
	Gesture    *domain.GestureEvent `json:"gesture,omitempty"`
}

type viewRequest struct {
	FitMode     *domain.FitMode         `json:"fit_mode,omitempty"`
	Rotation    *int                    `json:"rotation,omitempty"`
	ZoomDelta   *float64                `json:"zoom_delta,omitempty"`
	Scale       *float64                `json:"scale,omitempty"`
	Arrangement *domain.PageArrangement `json:"arrangement,omitempty"`
}

type documentMetricsRequest struct {
	TotalUnits *int     `json:"total_units,omitempty"`
	PageWidth  *float64 `json:"page_width,omitempty"`
	PageHeight *float64 `json:"page_height,omitempty"`
}

type loadReportRequest struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

type loadReportResponse struct {
	Accepted bool `json:"accepted"`
	sessionResponse
}

const (
	outcomeSuccess         = "success"
	outcomeFailure         = "failure"
	outcomeFallbackFailure = "fallback_failure"
)

// session resolves the {id} route var for the authenticated principal.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (string, *viewer.Session, bool) {
	p, ok := GetPrincipalFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return "", nil, false
	}
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return "", nil, false
	}
	sess, err := h.sessions.Get(p, id)
	if err != nil {
		writeAppError(w, h.logger, err, nil)
		return "", nil, false
	}
	return id, sess, true
}

func (h *SessionHandler) writeSnapshot(w http.ResponseWriter, status int, id string, sess *viewer.Session) {
	writeJSON(w, status, sessionResponse{ID: id, Snapshot: sess.Snapshot()})
}

// OpenSession handles POST /sessions
func (h *SessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	p, ok := GetPrincipalFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req service.OpenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	id, sess, err := h.sessions.Open(p, req)
	if err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	h.writeSnapshot(w, http.StatusCreated, id, sess)
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeSnapshot(w, http.StatusOK, id, sess)
}

// CloseSession handles DELETE /sessions/{id}
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	p, ok := GetPrincipalFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}
	if err := h.sessions.Close(p, mux.Vars(r)["id"]); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Navigate handles POST /sessions/{id}/navigate
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	var target viewer.NavTarget
	switch {
	case req.Gesture != nil:
		target = viewer.WithGesture(*req.Gesture)
	case req.ToLocation != "":
		target = viewer.ToLocation(req.ToLocation)
	case req.ToPage != nil:
		target = viewer.ToPage(*req.ToPage)
	default:
		writeError(w, http.StatusBadRequest, "One of to_page, to_location or gesture is required")
		return
	}

	loc, err := sess.Navigate(target)
	if err != nil {
		writeAppError(w, h.logger, err, &loc)
		return
	}
	h.writeSnapshot(w, http.StatusOK, id, sess)
}

// HandleInput handles POST /sessions/{id}/input
func (h *SessionHandler) HandleInput(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var in viewer.InputEvent
	if err := decodeJSON(r, &in); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	res, err := sess.HandleInput(in)
	if err != nil {
		writeAppError(w, h.logger, err, &res.Location)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateView handles PUT /sessions/{id}/view
func (h *SessionHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req viewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	if err := validateViewRequest(req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	var err error
	if req.Arrangement != nil && err == nil {
		err = sess.SetArrangement(*req.Arrangement)
	}
	if req.Rotation != nil && err == nil {
		err = sess.SetRotation(*req.Rotation)
	}
	if req.FitMode != nil && err == nil {
		err = sess.SetFitMode(*req.FitMode)
	}
	if req.Scale != nil && err == nil {
		err = sess.SetScale(*req.Scale)
	}
	if req.ZoomDelta != nil && err == nil {
		err = sess.SetZoom(*req.ZoomDelta)
	}
	if err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	h.writeSnapshot(w, http.StatusOK, id, sess)
}

// validateViewRequest rejects a view update before any field is applied.
func validateViewRequest(req viewRequest) error {
	if req.Arrangement != nil && !req.Arrangement.Valid() {
		return &domain.ValidationError{Field: "arrangement", Message: "must be single or dual"}
	}
	if req.Rotation != nil {
		if _, err := viewer.NormalizeRotation(*req.Rotation); err != nil {
			return err
		}
	}
	if req.FitMode != nil && !req.FitMode.Valid() {
		return domain.ErrInvalidFitMode
	}
	return nil
}

// UpdateViewport handles PUT /sessions/{id}/viewport
func (h *SessionHandler) UpdateViewport(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var vp domain.Viewport
	if err := decodeJSON(r, &vp); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	if err := sess.Resize(vp); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	h.writeSnapshot(w, http.StatusOK, id, sess)
}

// UpdateDocument handles PUT /sessions/{id}/document
func (h *SessionHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req documentMetricsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	if (req.PageWidth == nil) != (req.PageHeight == nil) {
		writeError(w, http.StatusBadRequest, "page_width and page_height must be sent together")
		return
	}

	if req.PageWidth != nil {
		if err := sess.SetPageSize(domain.PageSize{Width: *req.PageWidth, Height: *req.PageHeight}); err != nil {
			writeAppError(w, h.logger, err, nil)
			return
		}
	}
	if req.TotalUnits != nil {
		if err := sess.SetTotalUnits(*req.TotalUnits); err != nil {
			writeAppError(w, h.logger, err, nil)
			return
		}
	}
	h.writeSnapshot(w, http.StatusOK, id, sess)
}

// SetAnimating handles PUT /sessions/{id}/animating
func (h *SessionHandler) SetAnimating(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Animating bool `json:"animating"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	sess.SetAnimating(req.Animating)
	h.writeSnapshot(w, http.StatusOK, id, sess)
}

// ReportLoad handles POST /sessions/{id}/load. Reports that do not match
// an outstanding render are acknowledged with accepted=false.
func (h *SessionHandler) ReportLoad(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req loadReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	var accepted bool
	switch req.Outcome {
	case outcomeSuccess:
		accepted = sess.ReportLoadSuccess()
	case outcomeFailure:
		accepted = sess.ReportLoadFailure(errors.New(reasonOrDefault(req.Reason, "render failed")))
	case outcomeFallbackFailure:
		accepted = sess.ReportFallbackFailure(errors.New(reasonOrDefault(req.Reason, "fallback viewer failed")))
	default:
		writeAppError(w, h.logger, apperrors.NewValidationError("Unknown load outcome", req.Outcome), nil)
		return
	}

	writeJSON(w, http.StatusOK, loadReportResponse{
		Accepted:        accepted,
		sessionResponse: sessionResponse{ID: id, Snapshot: sess.Snapshot()},
	})
}

func reasonOrDefault(reason, fallback string) string {
	if reason == "" {
		return fallback
	}
	return reason
}

// RetryPrimary handles POST /sessions/{id}/retry-primary
func (h *SessionHandler) RetryPrimary(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if !sess.RetryPrimary() {
		writeAppError(w, h.logger, apperrors.NewConflictError("Primary viewer is not in fallback or failed state", nil), nil)
		return
	}
	h.writeSnapshot(w, http.StatusOK, id, sess)
}

// ReportPageFailure handles POST /sessions/{id}/pages/{page}/failure
func (h *SessionHandler) ReportPageFailure(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := h.session(w, r)
	if !ok {
		return
	}
	page, err := strconv.Atoi(mux.Vars(r)["page"])
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "Invalid page number")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"retry": sess.ReportPageFailure(page)})
}

// AddBookmark handles POST /sessions/{id}/bookmarks
func (h *SessionHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Label string `json:"label"`
	}
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeAppError(w, h.logger, err, nil)
			return
		}
	}

	b, err := sess.AddBookmark(req.Label)
	if err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// RemoveBookmark handles DELETE /sessions/{id}/bookmarks/{bookmarkId}
func (h *SessionHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if !sess.RemoveBookmark(mux.Vars(r)["bookmarkId"]) {
		writeAppError(w, h.logger, domain.ErrBookmarkNotFound, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetFavorite handles PUT /sessions/{id}/favorite
func (h *SessionHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Favorite bool `json:"favorite"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	if err := sess.SetFavorite(req.Favorite); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	h.writeSnapshot(w, http.StatusOK, id, sess)
}
