package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/profexa/internal/levels"
)

func buildIntroPrompt(topic, subtopic string, level levels.Level) string {
	style := level.TeachingStyle()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an expert teacher specializing in %s, teaching a %s student about %q.\n\n", topic, level, subtopic))
	b.WriteString(fmt.Sprintf("TEACHING STYLE: %s\nLANGUAGE: %s\nAPPROACH: %s\n", style.Tone, style.Language, style.Approach))

	b.WriteString(fmt.Sprintf(`
Create an engaging initial lesson that clearly explains what %q is and starts teaching it. Assume the student has NO prior knowledge.

Your response should be:
- 3-4 sentences long
- Start with "🎓 Welcome to [subtopic]!"
- Clearly explain what the subtopic is and why it's important
- Provide a brief overview of what they'll learn
- End with an engaging question that starts the learning journey
- Use %s and %s
- Make it exciting and inviting

CRITICAL: Do NOT ask yes/no questions. Ask open-ended questions that encourage thinking and discussion.

Make sure the explanation is clear and the question moves the lesson forward!`, subtopic, style.Tone, style.Language))

	return b.String()
}

// introFallback keeps the lesson moving when the provider is down.
func introFallback(topic, subtopic string) string {
	return fmt.Sprintf("🎓 Welcome to %s! This is an important area within %s that will help you understand the bigger picture. Let's explore what this involves and why it matters. What do you think this subtopic might cover?", subtopic, topic)
}

// replyContextWindow is how many trailing transcript messages
// (3 exchanges) are replayed into the reply prompt.
const replyContextWindow = 6

func buildReplyPrompt(in TurnInput, strategy Strategy) string {
	style := in.Level.TeachingStyle()

	var ctx strings.Builder
	recent := in.Transcript
	if len(recent) > replyContextWindow {
		recent = recent[len(recent)-replyContextWindow:]
	}
	for _, msg := range recent {
		who := "Teacher"
		if msg.Role == RoleStudent {
			who = "Student"
		}
		fmt.Fprintf(&ctx, "%s: %s\n", who, msg.Content)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an expert teacher helping a %s student learn about %q within the broader topic of %q.\n\n", in.Level, in.Subtopic, in.Topic))
	b.WriteString(fmt.Sprintf("TEACHING STYLE: %s\nLANGUAGE: %s\nAPPROACH: %s\n\n", style.Tone, style.Language, style.Approach))
	b.WriteString(fmt.Sprintf("CURRENT PROGRESS: %d%%\nGOAL: Get student from 0%% to 100%% knowledge of %q\nADAPTATION STRATEGY: %s\nADAPTATION INSTRUCTION: %s\n\n", in.Progress, in.Subtopic, strategy, strategy.Instruction()))
	b.WriteString("Previous conversation context:\n")
	b.WriteString(ctx.String())
	b.WriteString(fmt.Sprintf("\nThe student just said: %q\n", in.Input))

	b.WriteString(fmt.Sprintf(`
Your response should:
- Use %s and %s
- Follow the %s strategy: %s
- Be SHORT and CONCISE (1-2 paragraphs maximum)
- Focus on moving the lesson FORWARD toward 100%% knowledge
- Ask EXACTLY ONE question that progresses the learning journey
- Connect to real-world relevance
- TAKE INITIATIVE: Guide the process step by step
- End with ONLY ONE engaging question that moves them closer to mastery
- Adapt the difficulty level based on their current progress (%d%%)

CRITICAL RULES:
1. Ask EXACTLY ONE question - no more, no less
2. Do NOT ask yes/no questions - ask open-ended questions that encourage thinking
3. Every response should help move from current progress (%d%%) toward 100%% knowledge
4. Each question and explanation should be a step forward in the learning journey
5. If they say "I don't know", be encouraging and provide a simpler explanation

If progress is low (0-30%%): Use simpler language, more examples, build confidence
If progress is medium (31-70%%): Balance explanation with challenge, encourage deeper thinking
If progress is high (71-100%%): Focus on applications, synthesis, and advanced concepts

Remember: You're actively guiding their learning journey from no knowledge to complete mastery!`, style.Tone, style.Language, strategy, strategy.Instruction(), in.Progress, in.Progress))

	return b.String()
}

const replyFallback = "That's a great question! Let's explore this together and move forward in our learning journey..."

func buildAssessPrompt(input, lastReply, subtopic string, level levels.Level) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an expert teacher assessing a %s student's response during a lesson about %q.\n\n", level, subtopic))
	b.WriteString(fmt.Sprintf("Student's response: %q\nTeacher's previous message: %q\n", input, lastReply))

	b.WriteString(fmt.Sprintf(`
Rate the student's response quality on a scale of 0-10:

0-2: No response, off-topic, or completely incorrect
3-4: Minimal effort, vague response, or misunderstanding
5-6: Basic understanding shown, simple response
7-8: Good understanding, thoughtful response, shows engagement
9-10: Excellent understanding, detailed response, shows deep thinking

Consider:
- Relevance to the topic
- Depth of understanding shown
- Engagement and effort
- Age-appropriate expectations for %s level
- Whether they're building on previous learning

SPECIAL RULE: If the student says "I don't know" or similar, give them 3-4 points for honesty and engagement, not 0.

Return only a number from 0-10, no additional text.`, level))

	return b.String()
}

func buildAdaptPrompt(input string, progress int, level levels.Level) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an expert teacher adapting your lesson for a %s student.\n\n", level))
	b.WriteString(fmt.Sprintf("Student's latest response: %q\nCurrent learning progress: %d%%\n", input, progress))

	b.WriteString(`
Based on this response and progress, determine the teaching adaptation needed to move toward 100% knowledge:

If progress is 0-20% and response shows confusion or "I don't know":
- "REVIEW_BASICS" - Go back to fundamental concepts, use simpler language

If progress is 0-20% and response shows basic understanding:
- "BUILD_FOUNDATION" - Continue with foundational concepts, add more examples

If progress is 21-50% and response shows good understanding:
- "ADVANCE_SLOWLY" - Introduce more complex concepts gradually

If progress is 21-50% and response shows confusion or "I don't know":
- "CLARIFY_CONCEPTS" - Re-explain current concepts with different examples

If progress is 51-80% and response shows strong understanding:
- "CHALLENGE_DEEPER" - Introduce advanced concepts and critical thinking

If progress is 51-80% and response shows gaps or "I don't know":
- "REINFORCE_CORE" - Strengthen understanding of core concepts

If progress is 81-100% and response shows mastery:
- "APPLY_KNOWLEDGE" - Focus on real-world applications and synthesis

If progress is 81-100% and response shows gaps or "I don't know":
- "FILL_GAPS" - Address specific areas of misunderstanding

Return only the adaptation strategy (e.g., "REVIEW_BASICS", "ADVANCE_SLOWLY"), no additional text.`)

	return b.String()
}
