package server

import (
	"net/http"

	"github.com/asadnaved9/safebrowse/internal/auth"
	"github.com/asadnaved9/safebrowse/pkg/storage"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        storage.User `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email, password and name are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := s.DB.CreateUser(r.Context(), req.Email, hash, req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.respondWithToken(w, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.DB.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Identical response for unknown email and wrong password.
		writeError(w, http.StatusUnauthorized, "incorrect email or password")
		return
	}

	s.respondWithToken(w, user)
}

func (s *Server) respondWithToken(w http.ResponseWriter, user storage.User) {
	token, err := s.Auth.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, user storage.User) {
	writeJSON(w, http.StatusOK, user)
}

type pinRequest struct {
	PIN string `json:"pin"`
}

func (s *Server) handleUpdatePIN(w http.ResponseWriter, r *http.Request, user storage.User) {
	var req pinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.DB.SetPIN(r.Context(), user.ID, req.PIN); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "PIN updated successfully"})
}
