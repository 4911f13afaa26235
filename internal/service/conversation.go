package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/timecapsule/timecapsule/internal/adapter/llm"
	"github.com/timecapsule/timecapsule/internal/domain"
	"github.com/timecapsule/timecapsule/internal/prompt"
	"github.com/timecapsule/timecapsule/internal/schema"
	"github.com/timecapsule/timecapsule/policy"
)

// fallbackReply is substituted when the model returns an empty choice so a
// turn is never left unanswered.
const fallbackReply = "I'm not sure how to respond to that."

// GenerateReply renders the reply prompt from the conversation state and
// asks the model for the counterpart's next message. The store is not
// touched; no local state is held across the model call.
func (s *Service) GenerateReply(ctx context.Context, req *domain.GenerateRequest) (*domain.GenerateResponse, error) {
	_, messages, err := prompt.BuildReplyPrompt(req.Mode, req.TimeFrame, req.Context, req.CurrentSituation, req.PreviousMessages, req.Message)
	if err != nil {
		return nil, err
	}

	resp, err := s.chatCompletion(ctx, "generate reply", &llm.ChatCompletionRequest{
		Model:    s.config.LLMModel,
		Messages: messages,
	})
	if err != nil {
		return nil, err
	}

	reply := fallbackReply
	if len(resp.Choices) > 0 && resp.Choices[0].Message != nil && resp.Choices[0].Message.Content != "" {
		reply = resp.Choices[0].Message.Content
	}

	return &domain.GenerateResponse{
		Response:  reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// GenerateInsights asks the model for the three-category summary of a
// finished conversation and strictly validates its JSON output. Malformed
// model output propagates as a validation failure, never as defaulted
// empty insights.
func (s *Service) GenerateInsights(ctx context.Context, req *domain.InsightsRequest) (*domain.Insights, error) {
	if err := schema.ValidateMessages(req.Messages); err != nil {
		return nil, err
	}

	insightPrompt := prompt.BuildInsightPrompt(req.Mode, req.TimeFrame, req.Context, req.CurrentSituation, req.Messages)

	resp, err := s.chatCompletion(ctx, "generate insights", &llm.ChatCompletionRequest{
		Model: s.config.LLMModel,
		Messages: []llm.ChatMessage{
			{Role: "user", Content: insightPrompt},
		},
		ResponseFormat: map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var raw string
	if len(resp.Choices) > 0 && resp.Choices[0].Message != nil {
		raw = resp.Choices[0].Message.Content
	}
	return prompt.ParseInsightResponse(raw)
}

// chatCompletion wraps the model call with request correlation and latency
// logging. Failures become UpstreamError so handlers never leak upstream
// detail to callers.
func (s *Service) chatCompletion(ctx context.Context, op string, req *llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	requestID := "llm_" + uuid.New().String()[:8]
	start := time.Now()

	resp, err := s.llmClient.CreateChatCompletion(ctx, req)
	latencyMs := time.Since(start).Milliseconds()
	if err != nil {
		log.Printf("ERROR: chat completion %s (%s) failed after %dms: %v", requestID, op, latencyMs, err)
		return nil, &domain.UpstreamError{Op: op, Err: err}
	}

	log.Printf("chat completion %s (%s) done in %dms (model=%s)", requestID, op, latencyMs, resp.Model)
	return resp, nil
}

// SaveConversation validates and persists a new conversation.
func (s *Service) SaveConversation(ctx context.Context, draft *domain.ConversationDraft) (*domain.Conversation, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := schema.ValidateMessages(draft.Messages); err != nil {
		return nil, err
	}
	return s.store.CreateConversation(ctx, draft)
}

// GetConversation retrieves a stored conversation.
func (s *Service) GetConversation(ctx context.Context, id int) (*domain.Conversation, error) {
	conv, err := s.store.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, &domain.NotFoundError{ID: id}
	}
	return conv, nil
}

// ListConversations returns conversations for the given user, including
// the unset user when userID is nil.
func (s *Service) ListConversations(ctx context.Context, userID *int) ([]domain.Conversation, error) {
	convs, err := s.store.GetConversationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return convs, nil
}

// UpdateConversation shallow-merges fields onto a stored conversation,
// after the policy engine has approved the write. The default policy
// blocks setting insights on a conversation with no saved messages.
func (s *Service) UpdateConversation(ctx context.Context, id int, update *domain.ConversationUpdate) (*domain.Conversation, error) {
	if update.Messages != nil {
		if err := schema.ValidateMessages(*update.Messages); err != nil {
			return nil, err
		}
	}

	existing, err := s.store.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &domain.NotFoundError{ID: id}
	}

	hasMessages := len(existing.Messages) > 0
	if update.Messages != nil {
		hasMessages = len(*update.Messages) > 0
	}
	decision, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
		"action":        "update",
		"sets_insights": update.Insights != nil,
		"has_messages":  hasMessages,
	})
	if err != nil {
		return nil, fmt.Errorf("policy evaluation failed: %w", err)
	}
	if decision != policy.DecisionAllow {
		return nil, &domain.PolicyError{
			Decision: decision,
			Reason:   "insights cannot be set on a conversation with no saved messages",
		}
	}

	conv, err := s.store.UpdateConversation(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, &domain.NotFoundError{ID: id}
	}
	return conv, nil
}

// DeleteConversation removes a stored conversation.
func (s *Service) DeleteConversation(ctx context.Context, id int) error {
	deleted, err := s.store.DeleteConversation(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}
