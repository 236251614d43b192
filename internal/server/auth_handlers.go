package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/abhisek/profexa/internal/auth"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Guest    bool   `json:"guest,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, id, err := s.auth.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmptyUsername):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.internalError(w, "register", err)
	default:
		s.writeJSON(w, http.StatusCreated, authResponse{Token: token, Username: id.Username})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, id, err := s.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.writeError(w, http.StatusUnauthorized, err.Error())
	case err != nil:
		s.internalError(w, "login", err)
	default:
		s.writeJSON(w, http.StatusOK, authResponse{Token: token, Username: id.Username})
	}
}

func (s *Server) handleGuest(w http.ResponseWriter, _ *http.Request) {
	token, id := s.auth.Guest()
	s.writeJSON(w, http.StatusOK, authResponse{Token: token, Username: id.Username, Guest: true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		s.auth.Logout(token)
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}
