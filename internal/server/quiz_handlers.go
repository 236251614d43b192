package server

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/profexa/internal/levels"
	"github.com/abhisek/profexa/internal/quiz"
	"github.com/abhisek/profexa/internal/session"
)

// quizTTL is how long an unstarted quiz stays answerable.
const quizTTL = time.Hour

type pendingQuiz struct {
	topic     string
	subtopic  string
	level     levels.Level
	questions []quiz.Question
	expires   time.Time
}

// quizRegistry holds generated quizzes between start and submit so the
// answer key never leaves the server.
type quizRegistry struct {
	mu      sync.Mutex
	pending map[string]pendingQuiz
	now     func() time.Time
}

func newQuizRegistry() *quizRegistry {
	return &quizRegistry{pending: make(map[string]pendingQuiz), now: time.Now}
}

func (r *quizRegistry) add(q pendingQuiz) string {
	id := uuid.NewString()
	q.expires = r.now().Add(quizTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.pending {
		if r.now().After(p.expires) {
			delete(r.pending, key)
		}
	}
	r.pending[id] = q
	return id
}

// take removes and returns a pending quiz. Each quiz is gradable once.
func (r *quizRegistry) take(id string) (pendingQuiz, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.pending[id]
	if !ok || r.now().After(q.expires) {
		delete(r.pending, id)
		return pendingQuiz{}, false
	}
	delete(r.pending, id)
	return q, true
}

type quizStartRequest struct {
	Topic    string `json:"topic"`
	Subtopic string `json:"subtopic"`
	Level    string `json:"level"`
}

// quizQuestionView is a question with the answer key stripped.
type quizQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type quizStartResponse struct {
	QuizID    string             `json:"quiz_id"`
	Questions []quizQuestionView `json:"questions"`
}

func (s *Server) handleQuizStart(w http.ResponseWriter, r *http.Request) {
	var req quizStartRequest
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

	questions := s.quiz.Generate(r.Context(), req.Subtopic, req.Topic, level)
	id := s.quizzes.add(pendingQuiz{
		topic:     req.Topic,
		subtopic:  req.Subtopic,
		level:     level,
		questions: questions,
	})

	views := make([]quizQuestionView, len(questions))
	for i, q := range questions {
		views[i] = quizQuestionView{Question: q.Question, Options: q.Options}
	}
	s.writeJSON(w, http.StatusOK, quizStartResponse{QuizID: id, Questions: views})
}

type quizSubmitRequest struct {
	QuizID  string `json:"quiz_id"`
	Answers []int  `json:"answers"`
}

func (s *Server) handleQuizSubmit(w http.ResponseWriter, r *http.Request) {
	var req quizSubmitRequest
	if !s.decode(w, r, &req) {
		return
	}

	pending, ok := s.quizzes.take(req.QuizID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown or expired quiz")
		return
	}

	result := quiz.Grade(pending.questions, req.Answers)

	ctx := r.Context()
	id := identityFrom(ctx)

	// Merge into any existing learn session for the same subtopic so a
	// quiz round never wipes chat progress.
	sess, err := s.sessions.Load(ctx, id, pending.topic, pending.subtopic, pending.level)
	if err != nil {
		s.internalError(w, "load session", err)
		return
	}
	if sess == nil {
		sess = &session.Session{
			Topic:    pending.topic,
			Subtopic: pending.subtopic,
			Level:    pending.level,
			Mode:     session.ModeQuiz,
		}
	}
	sess.QuizScore = result.Score
	sess.QuizTotal = result.Total

	if err := s.sessions.Save(ctx, id, sess); err != nil {
		s.internalError(w, "save quiz result", err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}
