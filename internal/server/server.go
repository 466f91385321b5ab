package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/asadnaved9/safebrowse/internal/auth"
	"github.com/asadnaved9/safebrowse/internal/notify"
	"github.com/asadnaved9/safebrowse/internal/utils"
	"github.com/asadnaved9/safebrowse/pkg/risk"
	"github.com/asadnaved9/safebrowse/pkg/storage"
)

type Server struct {
	DB      *storage.DB
	Auth    *auth.Manager
	Eval    *risk.Evaluator
	Webhook *notify.Webhook
}

func New(db *storage.DB, authManager *auth.Manager, eval *risk.Evaluator, webhook *notify.Webhook) *Server {
	if eval == nil {
		eval = risk.New(nil)
	}
	return &Server{
		DB:      db,
		Auth:    authManager,
		Eval:    eval,
		Webhook: webhook,
	}
}

// Handler builds the full route table. Split out of Start so tests can
// drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	// Auth
	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/me", s.withUser(s.handleMe))
	mux.HandleFunc("PUT /api/auth/pin", s.withUser(s.handleUpdatePIN))

	// Profiles
	mux.HandleFunc("POST /api/profiles", s.withUser(s.handleCreateProfile))
	mux.HandleFunc("GET /api/profiles", s.withUser(s.handleListProfiles))
	mux.HandleFunc("GET /api/profiles/{id}", s.withUser(s.handleGetProfile))
	mux.HandleFunc("PUT /api/profiles/{id}", s.withUser(s.handleUpdateProfile))
	mux.HandleFunc("DELETE /api/profiles/{id}", s.withUser(s.handleDeleteProfile))

	// Content analysis
	mux.HandleFunc("POST /api/content/analyze", s.withUser(s.handleAnalyze))

	// Logs
	mux.HandleFunc("GET /api/logs", s.withUser(s.handleListLogs))
	mux.HandleFunc("GET /api/logs/search", s.withUser(s.handleSearchLogs))

	return mux
}

func (s *Server) Start(addr string) error {
	utils.Log.Info("Starting server on ", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// withUser wraps a handler with bearer-token authentication and hands
// it the resolved account.
func (s *Server) withUser(next func(w http.ResponseWriter, r *http.Request, user storage.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "expected 'Bearer <token>'")
			return
		}

		userID, err := s.Auth.Validate(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		user, err := s.DB.GetUserByID(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}
		next(w, r, user)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeStoreError maps storage errors onto HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrEmailExists):
		writeError(w, http.StatusBadRequest, "email already registered")
	default:
		utils.Log.Error("storage error: ", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
