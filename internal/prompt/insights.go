package prompt

import (
	"fmt"
	"strings"

	"github.com/timecapsule/timecapsule/internal/domain"
	"github.com/timecapsule/timecapsule/internal/schema"
)

const insightInstructions = `
Generate insights in JSON format with three categories:
1. keyDifferences: Array of strings describing key differences between past/present or present/future perspectives
2. successfulPredictions: Array of strings highlighting successful predictions or decisions
3. missedOpportunities: Array of strings noting missed opportunities or areas for improvement`

// BuildInsightPrompt renders the single-shot prompt asking the model to
// summarize a finished conversation as a three-category JSON object. The
// transcript is rendered as User:/AI: lines in original order.
func BuildInsightPrompt(mode domain.Mode, timeFrame domain.TimeFrame, topic domain.Context, situation string, messages []domain.Message) string {
	phrase := TimeFramePhrase(timeFrame)
	direction := TenseDirection(mode)

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following conversation between a user and their %s self from %s %s in the %q context, generate insights summary.", mode, phrase, direction, topic)
	fmt.Fprintf(&b, " Current situation: %q\n\n", situation)

	for _, msg := range messages {
		speaker := "AI"
		if msg.Role == domain.RoleUser {
			speaker = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Content)
	}

	b.WriteString(insightInstructions)
	return b.String()
}

// ParseInsightResponse validates raw model output against the insights
// shape. Malformed output fails with a ValidationError; it is never
// replaced with empty arrays.
func ParseInsightResponse(raw string) (*domain.Insights, error) {
	return schema.DecodeInsights(raw)
}
