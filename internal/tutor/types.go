package tutor

import "github.com/abhisek/profexa/internal/levels"

// Role identifies the sender of a chat message.
type Role string

const (
	RoleStudent Role = "user"
	RoleTeacher Role = "ai"
)

// Message is one turn of the teach-me transcript. The role strings
// match the stored transcript format.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TurnInput holds everything needed to answer one student turn.
type TurnInput struct {
	Topic      string
	Subtopic   string
	Level      levels.Level
	Transcript []Message // full transcript, oldest first
	Input      string    // the student's latest message
	Progress   int       // 0-100 before this turn
}

// TurnResult is the outcome of one student turn.
type TurnResult struct {
	Reply    string
	Strategy Strategy
	Score    int // response quality 0-10
}
