package server

import (
	"net/http"

	"github.com/asadnaved9/safebrowse/pkg/risk"
	"github.com/asadnaved9/safebrowse/pkg/storage"
)

type profileRequest struct {
	Name             string   `json:"name"`
	Age              int      `json:"age"`
	MaturityLevel    string   `json:"maturity_level"`
	BlockedSites     []string `json:"blocked_sites"`
	WhitelistedSites []string `json:"whitelisted_sites"`
}

func (p *profileRequest) validate() string {
	if p.Name == "" {
		return "name is required"
	}
	if p.Age < 0 {
		return "age must not be negative"
	}
	switch p.MaturityLevel {
	case "", risk.MaturityStrict, risk.MaturityModerate, risk.MaturityLenient:
		return ""
	}
	return "maturity_level must be strict, moderate or lenient"
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request, user storage.User) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// The stored label defaults from age but is informational only:
	// scoring always derives its threshold from the raw age.
	maturity := req.MaturityLevel
	if maturity == "" {
		maturity = risk.MaturityForAge(req.Age)
	}

	profile, err := s.DB.CreateProfile(r.Context(), storage.Profile{
		ParentID:         user.ID,
		Name:             req.Name,
		Age:              req.Age,
		MaturityLevel:    maturity,
		BlockedSites:     req.BlockedSites,
		WhitelistedSites: req.WhitelistedSites,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request, user storage.User) {
	profiles, err := s.DB.ListProfiles(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, user storage.User) {
	profile, err := s.DB.GetProfile(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, user storage.User) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	maturity := req.MaturityLevel
	if maturity == "" {
		maturity = risk.MaturityForAge(req.Age)
	}

	profile, err := s.DB.UpdateProfile(r.Context(), storage.Profile{
		ID:               r.PathValue("id"),
		ParentID:         user.ID,
		Name:             req.Name,
		Age:              req.Age,
		MaturityLevel:    maturity,
		BlockedSites:     req.BlockedSites,
		WhitelistedSites: req.WhitelistedSites,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request, user storage.User) {
	if err := s.DB.DeleteProfile(r.Context(), r.PathValue("id"), user.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile deleted successfully"})
}
