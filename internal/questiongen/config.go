package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxQuestionLen is the longest question accepted, in runes.
	MaxQuestionLen int
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:      256,
		Temperature:    0.7,
		MaxQuestionLen: 400,
	}
}
