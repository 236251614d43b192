package tutor

// Strategy is a teaching adaptation chosen per student turn based on
// the response and current progress.
type Strategy string

const (
	ReviewBasics    Strategy = "REVIEW_BASICS"
	BuildFoundation Strategy = "BUILD_FOUNDATION"
	AdvanceSlowly   Strategy = "ADVANCE_SLOWLY"
	ClarifyConcepts Strategy = "CLARIFY_CONCEPTS"
	ChallengeDeeper Strategy = "CHALLENGE_DEEPER"
	ReinforceCore   Strategy = "REINFORCE_CORE"
	ApplyKnowledge  Strategy = "APPLY_KNOWLEDGE"
	FillGaps        Strategy = "FILL_GAPS"
)

// strategyInstructions expand a strategy into the concrete lesson
// steering sent with the next reply prompt.
var strategyInstructions = map[Strategy]string{
	ReviewBasics:    "Go back to the very basics. Use extremely simple language, lots of analogies, and concrete examples. Build confidence step by step toward understanding.",
	BuildFoundation: "Continue building the foundation. Use clear explanations with multiple examples. Ensure solid understanding before moving forward toward mastery.",
	AdvanceSlowly:   "Introduce slightly more complex concepts gradually. Build on what they know while adding new layers of understanding to reach deeper knowledge.",
	ClarifyConcepts: "Re-explain current concepts using different examples and approaches. Address any confusion directly to keep progress moving forward.",
	ChallengeDeeper: "Introduce more advanced concepts and encourage critical thinking. Push them to think more deeply about the topic to reach expert level.",
	ReinforceCore:   "Strengthen understanding of core concepts. Use different examples and applications to solidify knowledge for mastery.",
	ApplyKnowledge:  "Focus on real-world applications and synthesis. Help them connect concepts and think creatively to achieve full understanding.",
	FillGaps:        "Address specific areas of misunderstanding. Provide targeted explanations for any gaps in knowledge to reach 100% comprehension.",
}

// ParseStrategy maps model output to a known strategy.
// Returns ("", false) for anything outside the fixed set.
func ParseStrategy(s string) (Strategy, bool) {
	st := Strategy(s)
	if _, ok := strategyInstructions[st]; ok {
		return st, true
	}
	return "", false
}

// DefaultStrategy is the progress-banded fallback used when the model
// returns an unknown strategy or the call fails.
func DefaultStrategy(progress int) Strategy {
	switch {
	case progress < 30:
		return BuildFoundation
	case progress < 70:
		return AdvanceSlowly
	default:
		return ChallengeDeeper
	}
}

// Instruction returns the steering text for the strategy.
func (s Strategy) Instruction() string {
	if instr, ok := strategyInstructions[s]; ok {
		return instr
	}
	return "Continue building understanding with appropriate challenge level toward mastery."
}
