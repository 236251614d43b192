package curriculum

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/abhisek/profexa/internal/levels"
	"github.com/abhisek/profexa/internal/llm"
)

func validSubtopicJSON() json.RawMessage {
	return json.RawMessage(`{"subtopics":["Camera Basics","Light and Exposure","Composition","Editing Workflows","Photo History"]}`)
}

func TestSubtopics_GeneratesFive(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSubtopicJSON()})
	svc := NewService(mock, DefaultConfig())

	subs := svc.Subtopics(context.Background(), "Photography", levels.Middle)

	if len(subs) != SubtopicCount {
		t.Fatalf("expected %d subtopics, got %d", SubtopicCount, len(subs))
	}
	if subs[0] != "Camera Basics" {
		t.Errorf("first subtopic = %q", subs[0])
	}
}

func TestSubtopics_PromptCarriesTopicAndLevel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSubtopicJSON()})
	svc := NewService(mock, DefaultConfig())

	svc.Subtopics(context.Background(), "Photography", levels.Adult)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 LLM call, got %d", mock.CallCount())
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Photography") {
		t.Error("prompt missing topic")
	}
	if !strings.Contains(msg, levels.Adult.DisplayName()) {
		t.Error("prompt missing level")
	}
	if !strings.Contains(msg, levels.Adult.Focus()) {
		t.Error("prompt missing level focus")
	}
	if mock.Calls[0].Schema != SubtopicSchema {
		t.Error("expected subtopic schema on request")
	}
}

func TestSubtopics_FallbackOnError(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue -> ErrProviderUnavailable
	svc := NewService(mock, DefaultConfig())

	subs := svc.Subtopics(context.Background(), "Cooking", levels.Elementary)

	if len(subs) != SubtopicCount {
		t.Fatalf("expected %d fallback subtopics, got %d", SubtopicCount, len(subs))
	}
	for _, want := range fallbackSubtopics[levels.Elementary] {
		if !slices.Contains(subs, want) {
			t.Errorf("fallback missing %q", want)
		}
	}
}

func TestSubtopics_FallbackOnShortList(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"subtopics":["Only One"]}`),
	})
	svc := NewService(mock, DefaultConfig())

	subs := svc.Subtopics(context.Background(), "History", levels.High)

	for _, want := range fallbackSubtopics[levels.High] {
		if !slices.Contains(subs, want) {
			t.Errorf("expected fallback list, missing %q", want)
		}
	}
}

func TestSubtopics_TruncatesExtras(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"subtopics":["a","b","c","d","e","f","g"]}`),
	})
	svc := NewService(mock, DefaultConfig())

	subs := svc.Subtopics(context.Background(), "Math", levels.Middle)
	if len(subs) != SubtopicCount {
		t.Errorf("expected %d subtopics, got %d", SubtopicCount, len(subs))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{"related", "RELATED", true},
		{"related with noise", "The answer is RELATED.", true},
		{"not related", "NOT RELATED", false},
		{"lowercase", "not related", false},
		{"garbage", "maybe?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{
				Content: json.RawMessage(tt.response),
			})
			svc := NewService(mock, DefaultConfig())

			got := svc.Validate(context.Background(), "Knife skills", "Cooking")
			if got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.response, got, tt.want)
			}
		})
	}
}

func TestValidate_DefaultsRelatedOnError(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())

	if !svc.Validate(context.Background(), "anything", "topic") {
		t.Error("expected validation to default to related on LLM error")
	}
}
