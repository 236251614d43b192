// Package quiz generates and grades seven-question multiple choice
// quizzes for a subtopic.
package quiz

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/profexa/internal/levels"
	"github.com/abhisek/profexa/internal/llm"
)

// Question is a single multiple choice question. CorrectAnswer indexes
// into Options. The JSON tags match the generation schema and the
// stored transcript format.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// ReviewItem pairs a question with how the student answered it.
type ReviewItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Selected      int      `json:"selected"`
	CorrectAnswer int      `json:"correct_answer"`
	Correct       bool     `json:"correct"`
	Explanation   string   `json:"explanation"`
}

// Result is a graded quiz.
type Result struct {
	Score      int          `json:"score"`
	Total      int          `json:"total"`
	Percentage int          `json:"percentage"`
	Review     []ReviewItem `json:"review"`
}

// Config bounds quiz generation calls.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the quiz defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.8,
	}
}

// Service generates and grades quizzes.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a quiz service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type quizOutput struct {
	Questions []Question `json:"questions"`
}

// Generate produces the quiz questions for a subtopic. Generation
// failures fall back to a one-question placeholder quiz rather than an
// error, so the student still gets a round.
func (s *Service) Generate(ctx context.Context, subtopic, topic string, level levels.Level) []Question {
	ctx = llm.WithPurpose(ctx, "quiz-generate")

	req := llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizUserMessage(subtopic, topic, level)},
		},
		Schema:      QuizSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fallbackQuiz(subtopic)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return fallbackQuiz(subtopic)
	}
	if !valid(out.Questions) {
		return fallbackQuiz(subtopic)
	}

	return out.Questions[:QuestionCount]
}

func valid(questions []Question) bool {
	if len(questions) < QuestionCount {
		return false
	}
	for _, q := range questions[:QuestionCount] {
		if q.Question == "" || len(q.Options) != OptionCount {
			return false
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
			return false
		}
	}
	return true
}

func fallbackQuiz(subtopic string) []Question {
	return []Question{
		{
			Question:      fmt.Sprintf("What is the main concept of %s?", subtopic),
			Options:       []string{"Option A", "Option B", "Option C", "Option D"},
			CorrectAnswer: 0,
			Explanation:   "This is the correct answer because...",
		},
	}
}

// Grade scores the student's answers against the questions. Answers
// outside the option range, including the -1 "unanswered" marker, count
// as wrong. Missing trailing answers count as wrong too.
func Grade(questions []Question, answers []int) Result {
	res := Result{Total: len(questions)}

	for i, q := range questions {
		selected := -1
		if i < len(answers) {
			selected = answers[i]
		}
		correct := selected == q.CorrectAnswer && selected >= 0 && selected < len(q.Options)
		if correct {
			res.Score++
		}
		res.Review = append(res.Review, ReviewItem{
			Question:      q.Question,
			Options:       q.Options,
			Selected:      selected,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       correct,
			Explanation:   q.Explanation,
		})
	}

	if res.Total > 0 {
		res.Percentage = res.Score * 100 / res.Total
	}
	return res
}
