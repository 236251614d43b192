package curriculum

import "github.com/abhisek/profexa/internal/levels"

// Config holds subtopic generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for subtopic generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.9,
	}
}

// fallbackSubtopics are served when the LLM is unavailable or returns
// malformed output. Per level, mirroring the generated shape.
var fallbackSubtopics = map[levels.Level][]string{
	levels.Elementary: {"Basic Concepts", "Simple Examples", "Fun Activities", "Easy Practice", "Real World Uses"},
	levels.Middle:     {"Building Skills", "Practical Applications", "Problem Solving", "Critical Thinking", "Hands-on Projects"},
	levels.High:       {"Advanced Concepts", "Detailed Analysis", "Complex Applications", "Theoretical Understanding", "Career Preparation"},
	levels.Adult:      {"Professional Skills", "Advanced Techniques", "Industry Applications", "Specialized Knowledge", "Practical Implementation"},
}
