// Package tutor runs the adaptive teach-me chat loop: opening lesson,
// per-turn replies steered by an adaptation strategy, and a 0-10
// assessment of each student response.
package tutor

import (
	"context"
	"strconv"
	"strings"

	"github.com/abhisek/profexa/internal/levels"
	"github.com/abhisek/profexa/internal/llm"
)

// Service drives the tutoring conversation.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a tutoring service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Intro produces the opening lesson message for a subtopic. Provider
// failures fall back to a fixed welcome so the session always starts.
func (s *Service) Intro(ctx context.Context, topic, subtopic string, level levels.Level) string {
	ctx = llm.WithPurpose(ctx, "teach-intro")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildIntroPrompt(topic, subtopic, level)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return introFallback(topic, subtopic)
	}

	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return introFallback(topic, subtopic)
	}
	return text
}

// Turn handles one student message: pick an adaptation strategy, reply
// in that direction, then score the student's response. The caller
// folds the score into session progress.
func (s *Service) Turn(ctx context.Context, in TurnInput) TurnResult {
	strategy := s.Adapt(ctx, in.Input, in.Progress, in.Level)

	lastReply := ""
	for i := len(in.Transcript) - 1; i >= 0; i-- {
		if in.Transcript[i].Role == RoleTeacher {
			lastReply = in.Transcript[i].Content
			break
		}
	}

	return TurnResult{
		Reply:    s.Reply(ctx, in, strategy),
		Strategy: strategy,
		Score:    s.Assess(ctx, in.Input, lastReply, in.Subtopic, in.Level),
	}
}

// Reply generates the teacher's next message following the strategy.
func (s *Service) Reply(ctx context.Context, in TurnInput, strategy Strategy) string {
	ctx = llm.WithPurpose(ctx, "teach-reply")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReplyPrompt(in, strategy)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return replyFallback
	}

	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return replyFallback
	}
	return text
}

// Assess scores the student's response 0-10. Unparseable model output
// and provider failures score a neutral 5, out-of-range scores clamp.
func (s *Service) Assess(ctx context.Context, input, lastReply, subtopic string, level levels.Level) int {
	ctx = llm.WithPurpose(ctx, "assess-response")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAssessPrompt(input, lastReply, subtopic, level)},
		},
		MaxTokens: 16,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return 5
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(resp.Content)))
	if err != nil {
		return 5
	}
	return max(0, min(10, score))
}

// Adapt picks the teaching strategy for the next reply. Unknown model
// output and provider failures fall back by progress band.
func (s *Service) Adapt(ctx context.Context, input string, progress int, level levels.Level) Strategy {
	ctx = llm.WithPurpose(ctx, "adapt-teaching")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAdaptPrompt(input, progress, level)},
		},
		MaxTokens: 16,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return DefaultStrategy(progress)
	}

	if strategy, ok := ParseStrategy(strings.TrimSpace(string(resp.Content))); ok {
		return strategy
	}
	return DefaultStrategy(progress)
}
