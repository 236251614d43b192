package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s2.Close()
}

func TestUserCreateAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	u, err := repo.Create(ctx, "alice", "hash-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero user ID")
	}
	if u.Username != "alice" {
		t.Errorf("username = %q, want %q", u.Username, "alice")
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != u.ID || got.PasswordHash != "hash-1" {
		t.Errorf("got %+v, want id=%d hash=hash-1", got, u.ID)
	}
}

func TestUserGetMissing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.UserRepo().GetByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil user, got %+v", got)
	}
}

func TestUserDuplicateUsername(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "bob", "h1"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.Create(ctx, "bob", "h2")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestSessionUpsertInsertsThenUpdates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u, err := s.UserRepo().Create(ctx, "carol", "h")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	repo := s.SessionRepo()

	sess := &LearningSession{
		UserID:        u.ID,
		Topic:         "Photography",
		Subtopic:      "Basic Concepts",
		LearningLevel: "middle",
		Mode:          "learn",
		Progress:      10,
		ChatHistory:   `[{"role":"ai","content":"welcome"}]`,
	}
	if err := repo.Upsert(ctx, sess); err != nil {
		t.Fatalf("insert upsert: %v", err)
	}
	firstID := sess.ID
	if firstID == 0 {
		t.Fatal("expected session ID to be set")
	}

	// Same logical key: must update in place, not insert.
	sess.Progress = 45
	sess.ChatHistory = `[{"role":"ai","content":"welcome"},{"role":"user","content":"hi"}]`
	if err := repo.Upsert(ctx, sess); err != nil {
		t.Fatalf("update upsert: %v", err)
	}
	if sess.ID != firstID {
		t.Errorf("expected same row id %d, got %d", firstID, sess.ID)
	}

	got, err := repo.Load(ctx, SessionKey{u.ID, "Photography", "Basic Concepts", "middle"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected session")
	}
	if got.Progress != 45 {
		t.Errorf("progress = %d, want 45", got.Progress)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 session row, got %d", n)
	}
}

func TestSessionKeyDistinguishesLevel(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u, err := s.UserRepo().Create(ctx, "dan", "h")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	repo := s.SessionRepo()

	for _, level := range []string{"elementary", "adult"} {
		err := repo.Upsert(ctx, &LearningSession{
			UserID: u.ID, Topic: "Math", Subtopic: "Fractions",
			LearningLevel: level, Mode: "learn",
		})
		if err != nil {
			t.Fatalf("upsert %s: %v", level, err)
		}
	}

	n, _ := repo.Count(ctx)
	if n != 2 {
		t.Errorf("expected 2 rows for distinct levels, got %d", n)
	}
}

func TestSessionLoadMissing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.SessionRepo().Load(context.Background(), SessionKey{1, "x", "y", "middle"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}

func TestSessionListByUserOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u, err := s.UserRepo().Create(ctx, "erin", "h")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	repo := s.SessionRepo()

	first := &LearningSession{UserID: u.ID, Topic: "History", Subtopic: "Key Events", LearningLevel: "high", Mode: "learn"}
	second := &LearningSession{UserID: u.ID, Topic: "History", Subtopic: "Important People", LearningLevel: "high", Mode: "quiz", QuizScore: 5, QuizTotal: 7}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert first: %v", err)
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("upsert second: %v", err)
	}

	// Touch the first session again so it becomes most recent.
	// CURRENT_TIMESTAMP has second resolution, so force distinct values.
	if _, err := s.DB().Exec(
		`UPDATE learning_history SET last_accessed = datetime('now', '+1 hour') WHERE id = ?`,
		first.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}

	list, err := repo.ListByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	if list[0].Subtopic != "Key Events" {
		t.Errorf("expected most recently accessed first, got %q", list[0].Subtopic)
	}
}

func TestLLMEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini-2.0-flash",
		Model:        "gemini-2.0-flash",
		Purpose:      "subtopics",
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    900,
		Success:      true,
		RequestBody:  "[user]\ngenerate subtopics",
		ResponseBody: `["a","b"]`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini-2.0-flash", Model: "gemini-2.0-flash",
		Purpose: "quiz", Success: false, ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Purpose != "quiz" {
		t.Errorf("expected newest event first, got purpose %q", events[0].Purpose)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "subtopics"})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].InputTokens != 120 {
		t.Errorf("expected the subtopics event, got %+v", filtered)
	}

	got, err := repo.GetLLMEvent(ctx, filtered[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ResponseBody != `["a","b"]` {
		t.Errorf("unexpected event: %+v", got)
	}
}

func TestLLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for range 3 {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "p", Model: "gemini-2.0-flash", Purpose: "chat",
			InputTokens: 100, OutputTokens: 50, LatencyMs: 1000, Success: true,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 1 {
		t.Fatalf("expected 1 purpose group, got %d", len(byPurpose))
	}
	u := byPurpose[0]
	if u.Purpose != "chat" || u.Calls != 3 || u.InputTokens != 300 || u.OutputTokens != 150 {
		t.Errorf("unexpected aggregation: %+v", u)
	}
	if u.AvgLatencyMs != 1000 {
		t.Errorf("avg latency = %d, want 1000", u.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Model != "gemini-2.0-flash" {
		t.Errorf("unexpected model aggregation: %+v", byModel)
	}
}

func TestReset(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	user, err := st.UserRepo().Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SessionRepo().Upsert(ctx, &LearningSession{
		UserID: user.ID, Topic: "Math", Subtopic: "Fractions",
		LearningLevel: "middle", Mode: "learn",
	}); err != nil {
		t.Fatal(err)
	}

	if err := st.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	users, _ := st.UserRepo().Count(ctx)
	sessions, _ := st.SessionRepo().Count(ctx)
	if users != 0 || sessions != 0 {
		t.Fatalf("reset left %d users, %d sessions", users, sessions)
	}

	// The schema survives a reset.
	if _, err := st.UserRepo().Create(ctx, "bob", "hash"); err != nil {
		t.Fatalf("create after reset: %v", err)
	}
}
