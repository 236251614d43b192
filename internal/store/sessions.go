package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LearningSession is one row of learning_history: a (user, topic,
// subtopic, level) combination with its accumulated state.
type LearningSession struct {
	ID            int64
	UserID        int64
	Topic         string
	Subtopic      string
	LearningLevel string
	Mode          string // "learn" or "quiz"
	Progress      int    // 0-100, learn mode only
	ChatHistory   string // JSON-encoded transcript, learn mode only
	QuizScore     int
	QuizTotal     int
	StartedAt     time.Time
	LastAccessed  time.Time
}

// SessionKey is the logical key of a learning session.
type SessionKey struct {
	UserID        int64
	Topic         string
	Subtopic      string
	LearningLevel string
}

// SessionRepo manages learning_history rows.
type SessionRepo interface {
	// Upsert updates the session matching sess's logical key, or
	// inserts a new row if none exists. last_accessed is always bumped.
	Upsert(ctx context.Context, sess *LearningSession) error

	// Load returns the session with the given logical key, or nil if
	// none exists.
	Load(ctx context.Context, key SessionKey) (*LearningSession, error)

	// ListByUser returns all sessions for a user ordered by
	// last_accessed, most recent first.
	ListByUser(ctx context.Context, userID int64) ([]*LearningSession, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Upsert(ctx context.Context, sess *LearningSession) error {
	existing, err := r.Load(ctx, SessionKey{
		UserID:        sess.UserID,
		Topic:         sess.Topic,
		Subtopic:      sess.Subtopic,
		LearningLevel: sess.LearningLevel,
	})
	if err != nil {
		return err
	}

	if existing != nil {
		_, err = r.db.ExecContext(ctx,
			`UPDATE learning_history
			 SET progress = ?, chat_history = ?, quiz_score = ?, quiz_total = ?,
			     last_accessed = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			sess.Progress, sess.ChatHistory, sess.QuizScore, sess.QuizTotal, existing.ID)
		if err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		sess.ID = existing.ID
		return nil
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO learning_history
		 (user_id, topic, subtopic, learning_level, mode, progress, chat_history, quiz_score, quiz_total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.UserID, sess.Topic, sess.Subtopic, sess.LearningLevel, sess.Mode,
		sess.Progress, sess.ChatHistory, sess.QuizScore, sess.QuizTotal)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	sess.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

func (r *sessionRepo) Load(ctx context.Context, key SessionKey) (*LearningSession, error) {
	row := r.db.QueryRowContext(ctx,
		sessionColumns+`WHERE user_id = ? AND topic = ? AND subtopic = ? AND learning_level = ?`,
		key.UserID, key.Topic, key.Subtopic, key.LearningLevel)

	sess, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID int64) ([]*LearningSession, error) {
	rows, err := r.db.QueryContext(ctx,
		sessionColumns+`WHERE user_id = ? ORDER BY last_accessed DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*LearningSession
	for rows.Next() {
		sess, err := scanSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (r *sessionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM learning_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

const sessionColumns = `SELECT id, user_id, topic, subtopic, learning_level, mode,
	progress, COALESCE(chat_history, ''), quiz_score, quiz_total, started_at, last_accessed
	FROM learning_history `

func scanSession(scan func(...any) error) (*LearningSession, error) {
	var s LearningSession
	err := scan(&s.ID, &s.UserID, &s.Topic, &s.Subtopic, &s.LearningLevel, &s.Mode,
		&s.Progress, &s.ChatHistory, &s.QuizScore, &s.QuizTotal, &s.StartedAt, &s.LastAccessed)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
