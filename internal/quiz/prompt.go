package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/profexa/internal/levels"
)

const quizSystemPrompt = `You are an expert quiz writer. You create fair multiple choice questions with plausible distractors.`

func buildQuizUserMessage(subtopic, topic string, level levels.Level) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Create a %d-question multiple choice quiz about %q within the broader topic of %q for %s students.\n", QuestionCount, subtopic, topic, level.DisplayName()))

	b.WriteString(fmt.Sprintf(`
Each question should:
- Have 4 options (A, B, C, D) with only one correct answer
- Be age-appropriate for %s students
- Use clear, simple language
- Include real-world examples when possible
- Range from basic to moderate difficulty
- Be engaging and interesting

CRITICAL: Make the incorrect answers believable and plausible. They should:
- Sound reasonable to someone who doesn't know the topic well
- Be common misconceptions or partial truths
- Not be obviously wrong or silly
- Be about the same length as the correct answer`, level.DisplayName()))

	return b.String()
}
