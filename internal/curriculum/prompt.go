package curriculum

import (
	"fmt"
	"strings"

	"github.com/abhisek/profexa/internal/levels"
)

const subtopicSystemPrompt = `You are an expert curriculum designer. You break broad topics into the subtopic areas a student should learn, matched to the student's learning level.`

// varietyHints nudge the model away from returning the same five
// subtopics for repeated requests on the same topic.
var varietyHints = []string{
	"unique perspectives",
	"different approaches",
	"various aspects",
	"diverse angles",
	"multiple viewpoints",
	"alternative methods",
	"fresh insights",
	"new dimensions",
	"creative approaches",
}

func buildSubtopicUserMessage(topic string, level levels.Level, varietyHint string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	b.WriteString(fmt.Sprintf("Learning level: %s\n", level.DisplayName()))
	b.WriteString(fmt.Sprintf("Focus on: %s\n", level.Focus()))

	b.WriteString(fmt.Sprintf(`
Instructions:
Generate exactly 5 BROAD, GENERAL subtopics that students at this level should learn about. Generate %s and BROAD categories, not specific techniques or detailed concepts. Think of major areas within the topic.

Each subtopic should be:
- A BROAD category within the main topic (e.g., "Basic Concepts", "Advanced Techniques", "Real-World Applications")
- Age and skill level appropriate
- Something that can be taught in 10-15 minutes
- General enough to cover multiple specific concepts
- Different from typical suggestions - be creative and varied`, varietyHint))

	return b.String()
}

const validateSystemPrompt = `You decide whether a proposed subtopic belongs to a given main topic.`

func buildValidateUserMessage(subtopic, topic string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Main topic: %q\nProposed subtopic: %q\n", topic, subtopic))

	b.WriteString(`
A subtopic is related if:
- It's a specific aspect, technique, or concept within the main topic
- It's commonly taught as part of learning the main topic
- It's a specialized area within the main topic's domain

Examples:
- Main topic: "Photography", Subtopic: "Aperture settings" -> RELATED
- Main topic: "Cooking", Subtopic: "Knife skills" -> RELATED
- Main topic: "Photography", Subtopic: "Baking bread" -> NOT RELATED
- Main topic: "Cooking", Subtopic: "Car mechanics" -> NOT RELATED

Respond with only "RELATED" or "NOT RELATED".`)

	return b.String()
}
