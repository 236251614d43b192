// Package levels defines the learning levels a student can choose and
// the per-level curriculum focus and teaching style that steer prompt
// construction throughout the app.
package levels

import "fmt"

// Level is a student's learning level.
type Level string

const (
	Elementary Level = "elementary"
	Middle     Level = "middle"
	High       Level = "high"
	Adult      Level = "adult"
)

// All returns every valid level in presentation order.
func All() []Level {
	return []Level{Elementary, Middle, High, Adult}
}

// Parse validates a level string. Returns an error for unknown values.
func Parse(s string) (Level, error) {
	switch Level(s) {
	case Elementary, Middle, High, Adult:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown learning level: %q", s)
}

// DisplayName returns the human-readable level name.
func (l Level) DisplayName() string {
	switch l {
	case Elementary:
		return "Elementary School"
	case Middle:
		return "Middle School"
	case High:
		return "High School"
	case Adult:
		return "Adult"
	}
	return string(l)
}

// Focus returns the curriculum focus areas for subtopic generation.
// Unknown levels fall back to the middle-school focus.
func (l Level) Focus() string {
	switch l {
	case Elementary:
		return "basic concepts, foundational skills, hands-on activities, simple explanations, and fun learning"
	case High:
		return "advanced concepts, detailed analysis, complex applications, theoretical understanding, and career preparation"
	case Adult:
		return "professional applications, advanced techniques, industry relevance, practical skills, and specialized knowledge"
	}
	return "building on basics, practical applications, critical thinking, real-world connections, and skill development"
}

// Style describes how the tutor should speak to a student at this level.
type Style struct {
	Tone     string
	Language string
	Approach string
}

// TeachingStyle returns the teaching style for the level.
// Unknown levels fall back to the middle-school style.
func (l Level) TeachingStyle() Style {
	switch l {
	case Elementary:
		return Style{
			Tone:     "warm, encouraging, and very patient like a caring elementary teacher",
			Language: "simple, clear, and uses lots of examples and analogies",
			Approach: "very hands-on with concrete examples and step-by-step guidance",
		}
	case High:
		return Style{
			Tone:     "professional yet approachable like a knowledgeable high school teacher",
			Language: "more sophisticated vocabulary, detailed explanations",
			Approach: "encourages independent thinking and deeper analysis",
		}
	case Adult:
		return Style{
			Tone:     "professional and collaborative like a subject matter expert",
			Language: "sophisticated vocabulary, assumes prior knowledge",
			Approach: "focuses on practical applications and advanced concepts",
		}
	}
	return Style{
		Tone:     "enthusiastic and supportive like a middle school teacher who believes in you",
		Language: "clear but more sophisticated, uses relatable examples",
		Approach: "encourages critical thinking while providing structure",
	}
}
