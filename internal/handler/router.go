package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// defaultAllowedOrigins are the local viewer dev servers.
var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
	"http://localhost:3000",
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(sessionHandler *SessionHandler, authMiddleware func(http.Handler) http.Handler, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "document-viewer"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)

	// Session lifecycle
	protected.HandleFunc("/sessions", sessionHandler.OpenSession).Methods("POST")
	protected.HandleFunc("/sessions/{id}", sessionHandler.GetSession).Methods("GET")
	protected.HandleFunc("/sessions/{id}", sessionHandler.CloseSession).Methods("DELETE")

	// Navigation and input
	protected.HandleFunc("/sessions/{id}/navigate", sessionHandler.Navigate).Methods("POST")
	protected.HandleFunc("/sessions/{id}/input", sessionHandler.HandleInput).Methods("POST")

	// View and metrics
	protected.HandleFunc("/sessions/{id}/view", sessionHandler.UpdateView).Methods("PUT")
	protected.HandleFunc("/sessions/{id}/viewport", sessionHandler.UpdateViewport).Methods("PUT")
	protected.HandleFunc("/sessions/{id}/document", sessionHandler.UpdateDocument).Methods("PUT")
	protected.HandleFunc("/sessions/{id}/animating", sessionHandler.SetAnimating).Methods("PUT")

	// Load signals from the host renderer
	protected.HandleFunc("/sessions/{id}/load", sessionHandler.ReportLoad).Methods("POST")
	protected.HandleFunc("/sessions/{id}/retry-primary", sessionHandler.RetryPrimary).Methods("POST")
	protected.HandleFunc("/sessions/{id}/pages/{page:[0-9]+}/failure", sessionHandler.ReportPageFailure).Methods("POST")

	// Bookmarks and favorite
	protected.HandleFunc("/sessions/{id}/bookmarks", sessionHandler.AddBookmark).Methods("POST")
	protected.HandleFunc("/sessions/{id}/bookmarks/{bookmarkId}", sessionHandler.RemoveBookmark).Methods("DELETE")
	protected.HandleFunc("/sessions/{id}/favorite", sessionHandler.SetFavorite).Methods("PUT")

	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultAllowedOrigins
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{
			"Link",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
