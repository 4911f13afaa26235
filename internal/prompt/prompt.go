// Package prompt deterministically renders prompts for the chat model.
// It performs no reasoning of its own; its whole responsibility is exact
// prompt text and strict transcript ordering.
package prompt

import (
	"fmt"
	"strings"

	"github.com/timecapsule/timecapsule/internal/adapter/llm"
	"github.com/timecapsule/timecapsule/internal/domain"
	"github.com/timecapsule/timecapsule/internal/schema"
)

var timeFramePhrases = map[domain.TimeFrame]string{
	domain.TimeFrame1Month:  "1 month",
	domain.TimeFrame3Months: "3 months",
	domain.TimeFrame6Months: "6 months",
	domain.TimeFrame1Year:   "1 year",
	domain.TimeFrame2Years:  "2 years",
	domain.TimeFrame5Years:  "5 years",
}

// TimeFramePhrase maps a time frame code to its human phrase. Unknown
// codes pass through unchanged.
func TimeFramePhrase(tf domain.TimeFrame) string {
	if phrase, ok := timeFramePhrases[tf]; ok {
		return phrase
	}
	return string(tf)
}

// TenseDirection returns the temporal direction word for a mode.
func TenseDirection(mode domain.Mode) string {
	if mode == domain.ModePast {
		return "ago"
	}
	return "from now"
}

// BuildReplyPrompt turns conversation state into a system prompt and the
// ordered message list for a chat completion call. The history is
// validated against the message shape; unknown mode/timeFrame/context
// values never fail, they are echoed verbatim. The returned list is
// strictly system prompt, then the history in transcript order, then the
// new user message.
func BuildReplyPrompt(mode domain.Mode, timeFrame domain.TimeFrame, topic domain.Context, situation string, history []domain.Message, newMessage string) (string, []llm.ChatMessage, error) {
	if err := schema.ValidateMessages(history); err != nil {
		return "", nil, err
	}

	phrase := TimeFramePhrase(timeFrame)
	direction := TenseDirection(mode)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a Time Capsule AI that simulates a conversation with the user's %s self from %s %s.", mode, phrase, direction)
	fmt.Fprintf(&b, " Focus on the %q context.", topic)
	if mode == domain.ModePast {
		fmt.Fprintf(&b, " You will answer as if you are the user from %s ago, using knowledge that would have been available at that time.", phrase)
	} else {
		fmt.Fprintf(&b, " You will answer as if you are the user %s in the future, based on reasonable projections from the current situation.", phrase)
	}
	fmt.Fprintf(&b, " The user's current situation is: %q.", situation)
	systemPrompt := b.String()

	messages := make([]llm.ChatMessage, 0, len(history)+2)
	messages = append(messages, llm.ChatMessage{Role: "system", Content: systemPrompt})
	for _, msg := range history {
		role := "assistant"
		if msg.Role == domain.RoleUser {
			role = "user"
		}
		messages = append(messages, llm.ChatMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: "user", Content: newMessage})

	return systemPrompt, messages, nil
}
