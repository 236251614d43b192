package tutor

// Config bounds the tutoring calls. Replies stay short by prompt
// contract, the token cap is a backstop.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the tutoring defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}
