// Package prompt renders message histories into the linear text format the
// completion service consumes.
package prompt

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/careerbot/internal/session"
)

// MaxResumeChars caps how much extracted resume text is embedded in an
// analysis prompt. Longer documents are cut at the boundary, not chunked.
const MaxResumeChars = 4000

// Render flattens a history into one prompt string: each message becomes
// "<ROLE>: <content>" followed by a blank line, and the trailing
// "ASSISTANT:" cue tells the model to continue as the assistant. The full
// history is always rendered; there is no token budgeting.
func Render(history []session.Message) string {
	var sb strings.Builder
	for _, msg := range history {
		sb.WriteString(strings.ToUpper(string(msg.Role)))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}
	sb.WriteString("ASSISTANT:")
	return sb.String()
}

// ResumeAnalysis builds the one-shot resume review instruction. The
// extracted text is truncated to MaxResumeChars characters (runes, so a
// multi-byte character is never split).
func ResumeAnalysis(text string) string {
	runes := []rune(text)
	if len(runes) > MaxResumeChars {
		text = string(runes[:MaxResumeChars])
	}
	return fmt.Sprintf(
		"You are a professional HR assistant. Analyze this resume text and provide:\n"+
			"1. Strengths\n2. Weak areas\n3. Suggestions for improvement\n\n"+
			"Resume Content:\n%s",
		text,
	)
}
