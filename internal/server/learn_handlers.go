package server

import (
	"net/http"
	"strings"

	"github.com/abhisek/profexa/internal/session"
	"github.com/abhisek/profexa/internal/tutor"
)

type learnStartRequest struct {
	Topic    string `json:"topic"`
	Subtopic string `json:"subtopic"`
	Level    string `json:"level"`
}

type learnStartResponse struct {
	Message    string          `json:"message"`
	Progress   int             `json:"progress"`
	Transcript []tutor.Message `json:"transcript"`
	Resumed    bool            `json:"resumed"`
}

// handleLearnStart opens or resumes a teach-me session. A returning
// student gets their transcript and progress back; a new one gets the
// opening lesson.
func (s *Server) handleLearnStart(w http.ResponseWriter, r *http.Request) {
	var req learnStartRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Topic) == "" || strings.TrimSpace(req.Subtopic) == "" {
		s.writeError(w, http.StatusBadRequest, "topic and subtopic are required")
		return
	}
	level, ok := s.parseLevel(w, req.Level)
	if !ok {
		return
	}

	ctx := r.Context()
	id := identityFrom(ctx)

	existing, err := s.sessions.Load(ctx, id, req.Topic, req.Subtopic, level)
	if err != nil {
		s.internalError(w, "load session", err)
		return
	}
	if existing != nil && len(existing.Transcript) > 0 {
		last := existing.Transcript[len(existing.Transcript)-1]
		s.writeJSON(w, http.StatusOK, learnStartResponse{
			Message:    last.Content,
			Progress:   existing.Progress,
			Transcript: existing.Transcript,
			Resumed:    true,
		})
		return
	}

	intro := s.tutor.Intro(ctx, req.Topic, req.Subtopic, level)

	// A quiz-only row may already exist for this key; reuse it so the
	// learn start keeps its quiz result.
	sess := existing
	if sess == nil {
		sess = &session.Session{Topic: req.Topic, Subtopic: req.Subtopic, Level: level}
	}
	sess.Mode = session.ModeLearn
	sess.Transcript = []tutor.Message{{Role: tutor.RoleTeacher, Content: intro}}

	if err := s.sessions.Save(ctx, id, sess); err != nil {
		s.internalError(w, "save session", err)
		return
	}

	s.writeJSON(w, http.StatusOK, learnStartResponse{
		Message:    intro,
		Transcript: sess.Transcript,
	})
}

type learnMessageRequest struct {
	Topic    string `json:"topic"`
	Subtopic string `json:"subtopic"`
	Level    string `json:"level"`
	Message  string `json:"message"`
}

type learnMessageResponse struct {
	Reply    string `json:"reply"`
	Score    int    `json:"score"`
	Strategy string `json:"strategy"`
	Progress int    `json:"progress"`
	Complete bool   `json:"complete"`
}

// handleLearnMessage runs one turn of the chat loop and folds the
// response score into progress.
func (s *Server) handleLearnMessage(w http.ResponseWriter, r *http.Request) {
	var req learnMessageRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if strings.TrimSpace(req.Topic) == "" || strings.TrimSpace(req.Subtopic) == "" {
		s.writeError(w, http.StatusBadRequest, "topic and subtopic are required")
		return
	}
	level, ok := s.parseLevel(w, req.Level)
	if !ok {
		return
	}

	ctx := r.Context()
	id := identityFrom(ctx)

	sess, err := s.sessions.Load(ctx, id, req.Topic, req.Subtopic, level)
	if err != nil {
		s.internalError(w, "load session", err)
		return
	}
	if sess == nil {
		sess = &session.Session{
			Topic: req.Topic, Subtopic: req.Subtopic, Level: level,
			Mode: session.ModeLearn,
		}
	}

	res := s.tutor.Turn(ctx, tutor.TurnInput{
		Topic:      req.Topic,
		Subtopic:   req.Subtopic,
		Level:      level,
		Transcript: sess.Transcript,
		Input:      req.Message,
		Progress:   sess.Progress,
	})

	sess.Transcript = append(sess.Transcript,
		tutor.Message{Role: tutor.RoleStudent, Content: req.Message},
		tutor.Message{Role: tutor.RoleTeacher, Content: res.Reply},
	)
	sess.Progress = session.ApplyAssessment(sess.Progress, res.Score)

	if err := s.sessions.Save(ctx, id, sess); err != nil {
		s.internalError(w, "save session", err)
		return
	}

	s.writeJSON(w, http.StatusOK, learnMessageResponse{
		Reply:    res.Reply,
		Score:    res.Score,
		Strategy: string(res.Strategy),
		Progress: sess.Progress,
		Complete: sess.Progress >= 100,
	})
}

type historyEntry struct {
	Topic     string `json:"topic"`
	Subtopic  string `json:"subtopic"`
	Level     string `json:"level"`
	Mode      string `json:"mode"`
	Progress  int    `json:"progress"`
	QuizScore int    `json:"quiz_score"`
	QuizTotal int    `json:"quiz_total"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessions, err := s.sessions.List(ctx, identityFrom(ctx))
	if err != nil {
		s.internalError(w, "list sessions", err)
		return
	}

	entries := make([]historyEntry, 0, len(sessions))
	for _, sess := range sessions {
		entries = append(entries, historyEntry{
			Topic:     sess.Topic,
			Subtopic:  sess.Subtopic,
			Level:     string(sess.Level),
			Mode:      string(sess.Mode),
			Progress:  sess.Progress,
			QuizScore: sess.QuizScore,
			QuizTotal: sess.QuizTotal,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": entries})
}
