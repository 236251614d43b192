// Package server exposes the tutoring app over HTTP: auth, subtopic
// discovery, the teach-me chat loop, quizzes, and learning history.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/abhisek/profexa/internal/auth"
	"github.com/abhisek/profexa/internal/curriculum"
	"github.com/abhisek/profexa/internal/quiz"
	"github.com/abhisek/profexa/internal/session"
	"github.com/abhisek/profexa/internal/tutor"
)

// Server holds the wired services behind the HTTP API.
type Server struct {
	log        *zap.Logger
	auth       *auth.Service
	curriculum *curriculum.Service
	tutor      *tutor.Service
	quiz       *quiz.Service
	sessions   *session.Manager
	quizzes    *quizRegistry
}

// New wires a server from its services.
func New(log *zap.Logger, authSvc *auth.Service, curr *curriculum.Service, tut *tutor.Service, qz *quiz.Service, sessions *session.Manager) *Server {
	return &Server{
		log:        log,
		auth:       authSvc,
		curriculum: curr,
		tutor:      tut,
		quiz:       qz,
		sessions:   sessions,
		quizzes:    newQuizRegistry(),
	}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(s.loggingMiddleware)
	r.Use(corsMiddleware)
	r.Use(jsonMiddleware)

	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodOptions)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/guest", s.handleGuest).Methods(http.MethodPost)

	// Everything below needs a bearer token.
	api := r.NewRoute().Subrouter()
	api.Use(s.authMiddleware)

	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)

	api.HandleFunc("/topics/subtopics", s.handleSubtopics).Methods(http.MethodPost)
	api.HandleFunc("/topics/validate", s.handleValidateSubtopic).Methods(http.MethodPost)

	api.HandleFunc("/learn/start", s.handleLearnStart).Methods(http.MethodPost)
	api.HandleFunc("/learn/message", s.handleLearnMessage).Methods(http.MethodPost)

	api.HandleFunc("/quiz/start", s.handleQuizStart).Methods(http.MethodPost)
	api.HandleFunc("/quiz/submit", s.handleQuizSubmit).Methods(http.MethodPost)

	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}
