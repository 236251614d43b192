// Package curriculum generates subtopic suggestions for a topic and
// checks whether student-supplied subtopics belong to it.
package curriculum

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/profexa/internal/levels"
	"github.com/abhisek/profexa/internal/llm"
)

// Service generates and validates subtopics.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a curriculum service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type subtopicOutput struct {
	Subtopics []string `json:"subtopics"`
}

// Subtopics returns exactly SubtopicCount broad subtopics for the topic
// at the given level. When generation fails, the per-level fallback list
// is returned shuffled so repeat visitors still see variety. The error
// path never surfaces to the student.
func (s *Service) Subtopics(ctx context.Context, topic string, level levels.Level) []string {
	ctx = llm.WithPurpose(ctx, "subtopics")

	hint := lo.Sample(varietyHints)

	req := llm.Request{
		System: subtopicSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSubtopicUserMessage(topic, level, hint)},
		},
		Schema:      SubtopicSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return s.fallback(level)
	}

	var out subtopicOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return s.fallback(level)
	}
	if len(out.Subtopics) < SubtopicCount {
		return s.fallback(level)
	}

	return out.Subtopics[:SubtopicCount]
}

func (s *Service) fallback(level levels.Level) []string {
	base, ok := fallbackSubtopics[level]
	if !ok {
		base = fallbackSubtopics[levels.Middle]
	}
	shuffled := make([]string, len(base))
	copy(shuffled, base)
	return lo.Shuffle(shuffled)
}

// Validate reports whether subtopic is related to topic. The model is
// asked for a RELATED / NOT RELATED verdict; LLM failures default to
// related so a provider outage never blocks the student.
func (s *Service) Validate(ctx context.Context, subtopic, topic string) bool {
	ctx = llm.WithPurpose(ctx, "validate-subtopic")

	req := llm.Request{
		System: validateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildValidateUserMessage(subtopic, topic)},
		},
		MaxTokens: 16,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return true
	}

	verdict := strings.ToUpper(strings.TrimSpace(string(resp.Content)))
	// "NOT RELATED" contains "RELATED", so check the negative first.
	if strings.Contains(verdict, "NOT RELATED") {
		return false
	}
	return strings.Contains(verdict, "RELATED")
}
