package server

import (
	"net/http"
	"strconv"

	"github.com/asadnaved9/safebrowse/pkg/storage"
)

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request, user storage.User) {
	q := r.URL.Query()

	opts := storage.ListLogsOptions{
		ParentID:  user.ID,
		ProfileID: q.Get("profile_id"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.Limit = limit
	}

	// ListLogs joins through the parent's profiles, so a foreign
	// profile_id simply yields no rows; still report it as missing.
	if opts.ProfileID != "" {
		if _, err := s.DB.GetProfile(r.Context(), opts.ProfileID, user.ID); err != nil {
			writeStoreError(w, err)
			return
		}
	}

	logs, err := s.DB.ListLogs(r.Context(), opts)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleSearchLogs(w http.ResponseWriter, r *http.Request, user storage.User) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	logs, err := s.DB.ListLogs(r.Context(), storage.ListLogsOptions{
		ParentID: user.ID,
		Keyword:  keyword,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
