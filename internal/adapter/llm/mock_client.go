package llm

import (
	"context"
	"fmt"
	"time"
)

// MockClient is a mock implementation of ChatClient so the whole service
// can run offline.
type MockClient struct{}

// NewMockClient creates a new mock chat client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements ChatClient interface.
var _ ChatClient = (*MockClient)(nil)

// mockInsightsJSON is returned for json_object requests so the insights
// flow parses and validates end to end.
const mockInsightsJSON = `{"keyDifferences":["[MOCK] Priorities shifted from building to selling."],"successfulPredictions":["[MOCK] The product launch landed roughly on schedule."],"missedOpportunities":["[MOCK] Hiring was delayed a quarter too long."]}`

// CreateChatCompletion returns a mock response.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	content := m.generateMockResponse(req)

	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{
			PromptTokens:     m.estimateTokens(req),
			CompletionTokens: len(content) / 4,
			TotalTokens:      m.estimateTokens(req) + len(content)/4,
		},
	}, nil
}

// generateMockResponse generates a mock response based on the request.
func (m *MockClient) generateMockResponse(req *ChatCompletionRequest) string {
	if t, ok := req.ResponseFormat["type"].(string); ok && t == "json_object" {
		return mockInsightsJSON
	}

	var lastUserMessage string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			lastUserMessage = req.Messages[i].Content
			break
		}
	}

	if lastUserMessage == "" {
		return "[MOCK] This is a mock response from the chat client."
	}

	return fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(lastUserMessage, 100))
}

// estimateTokens provides a rough token count estimate.
func (m *MockClient) estimateTokens(req *ChatCompletionRequest) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content) / 4
	}
	return total
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
