// Package session tracks a student's learning sessions: transcript
// accumulation, the progress rule, and persistence. Guest sessions are
// never written to the store.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/profexa/internal/auth"
	"github.com/abhisek/profexa/internal/levels"
	"github.com/abhisek/profexa/internal/store"
	"github.com/abhisek/profexa/internal/tutor"
)

// Mode distinguishes the two session kinds.
type Mode string

const (
	ModeLearn Mode = "learn"
	ModeQuiz  Mode = "quiz"
)

// Session is the domain view of one learning_history row.
type Session struct {
	UserID     int64
	Topic      string
	Subtopic   string
	Level      levels.Level
	Mode       Mode
	Progress   int
	Transcript []tutor.Message
	QuizScore  int
	QuizTotal  int
}

// ApplyAssessment folds a 0-10 response score into progress. Scores
// below 5 leave progress alone, everything else adds the score capped
// at 100.
func ApplyAssessment(progress, score int) int {
	if score < 5 {
		return progress
	}
	return progress + min(score, 100-progress)
}

// Manager persists sessions for signed-in users.
type Manager struct {
	repo store.SessionRepo
}

// NewManager creates a session manager over the repo.
func NewManager(repo store.SessionRepo) *Manager {
	return &Manager{repo: repo}
}

// Save upserts the session. Guest identities are skipped silently.
func (m *Manager) Save(ctx context.Context, id *auth.Identity, sess *Session) error {
	if id.Guest {
		return nil
	}

	transcript, err := json.Marshal(sess.Transcript)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}

	return m.repo.Upsert(ctx, &store.LearningSession{
		UserID:        id.ID,
		Topic:         sess.Topic,
		Subtopic:      sess.Subtopic,
		LearningLevel: string(sess.Level),
		Mode:          string(sess.Mode),
		Progress:      sess.Progress,
		ChatHistory:   string(transcript),
		QuizScore:     sess.QuizScore,
		QuizTotal:     sess.QuizTotal,
	})
}

// Load returns the stored session for the key, or nil for guests and
// first visits. A transcript that fails to decode is dropped rather
// than failing the load.
func (m *Manager) Load(ctx context.Context, id *auth.Identity, topic, subtopic string, level levels.Level) (*Session, error) {
	if id.Guest {
		return nil, nil
	}

	row, err := m.repo.Load(ctx, store.SessionKey{
		UserID:        id.ID,
		Topic:         topic,
		Subtopic:      subtopic,
		LearningLevel: string(level),
	})
	if err != nil || row == nil {
		return nil, err
	}
	return fromRow(row), nil
}

// List returns the user's sessions, most recently touched first.
// Guests have no history.
func (m *Manager) List(ctx context.Context, id *auth.Identity) ([]*Session, error) {
	if id.Guest {
		return nil, nil
	}

	rows, err := m.repo.ListByUser(ctx, id.ID)
	if err != nil {
		return nil, err
	}

	sessions := make([]*Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, fromRow(row))
	}
	return sessions, nil
}

func fromRow(row *store.LearningSession) *Session {
	sess := &Session{
		UserID:    row.UserID,
		Topic:     row.Topic,
		Subtopic:  row.Subtopic,
		Level:     levels.Level(row.LearningLevel),
		Mode:      Mode(row.Mode),
		Progress:  row.Progress,
		QuizScore: row.QuizScore,
		QuizTotal: row.QuizTotal,
	}
	if row.ChatHistory != "" {
		// Corrupt transcripts lose the chat, not the session.
		_ = json.Unmarshal([]byte(row.ChatHistory), &sess.Transcript)
	}
	return sess
}
