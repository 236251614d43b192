package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/profexa/internal/levels"
)

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	s.writeError(w, http.StatusInternalServerError, "internal error")
}

// parseLevel validates the learning level field shared by several
// request shapes. Writes the error response itself on failure.
func (s *Server) parseLevel(w http.ResponseWriter, raw string) (levels.Level, bool) {
	level, err := levels.Parse(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return level, true
}

type subtopicsRequest struct {
	Topic string `json:"topic"`
	Level string `json:"level"`
}

func (s *Server) handleSubtopics(w http.ResponseWriter, r *http.Request) {
	var req subtopicsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		s.writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	level, ok := s.parseLevel(w, req.Level)
	if !ok {
		return
	}

	subtopics := s.curriculum.Subtopics(r.Context(), req.Topic, level)
	s.writeJSON(w, http.StatusOK, map[string]any{"subtopics": subtopics})
}

type validateRequest struct {
	Topic    string `json:"topic"`
	Subtopic string `json:"subtopic"`
}

func (s *Server) handleValidateSubtopic(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Topic) == "" || strings.TrimSpace(req.Subtopic) == "" {
		s.writeError(w, http.StatusBadRequest, "topic and subtopic are required")
		return
	}

	related := s.curriculum.Validate(r.Context(), req.Subtopic, req.Topic)
	s.writeJSON(w, http.StatusOK, map[string]bool{"related": related})
}
