// Package store defines the conversation storage interface and its
// implementations.
package store

import (
	"context"

	"github.com/timecapsule/timecapsule/internal/domain"
)

// Store defines the interface for conversation persistence. Lookups for an
// unknown id return (nil, nil), never an error; ids are assigned
// monotonically and are never reused.
type Store interface {
	// CreateConversation assigns the next id and the creation timestamp,
	// inserts the record and returns the full stored conversation.
	CreateConversation(ctx context.Context, draft *domain.ConversationDraft) (*domain.Conversation, error)

	// GetConversation retrieves a conversation by id.
	GetConversation(ctx context.Context, id int) (*domain.Conversation, error)

	// GetConversationsByUser returns conversations whose userId exactly
	// equals the given one, including the unset (nil) user.
	GetConversationsByUser(ctx context.Context, userID *int) ([]domain.Conversation, error)

	// UpdateConversation shallow-merges the provided fields onto the
	// existing record and returns the result.
	UpdateConversation(ctx context.Context, id int, update *domain.ConversationUpdate) (*domain.Conversation, error)

	// DeleteConversation removes a conversation, reporting whether a
	// record existed.
	DeleteConversation(ctx context.Context, id int) (bool, error)

	// Lifecycle
	Close() error
}
