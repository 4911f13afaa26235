package store

import (
	"context"
	"sync"
	"time"

	"github.com/timecapsule/timecapsule/internal/domain"
)

// MemoryStore implements Store with a mutex-guarded map. Data lives for
// the lifetime of the process.
type MemoryStore struct {
	mu            sync.Mutex
	conversations map[int]*domain.Conversation
	nextID        int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[int]*domain.Conversation),
		nextID:        1,
	}
}

var _ Store = (*MemoryStore)(nil)

// CreateConversation assigns the next id and current timestamp and inserts
// the record. The id counter only ever moves forward, so concurrent
// creates can never share an id.
func (s *MemoryStore) CreateConversation(ctx context.Context, draft *domain.ConversationDraft) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	conv := &domain.Conversation{
		ID:               id,
		Mode:             draft.Mode,
		TimeFrame:        draft.TimeFrame,
		Context:          draft.Context,
		CurrentSituation: draft.CurrentSituation,
		Messages:         domain.CloneMessages(draft.Messages),
		Insights:         draft.Insights.Clone(),
		CreatedAt:        time.Now().UTC(),
	}
	if draft.UserID != nil {
		uid := *draft.UserID
		conv.UserID = &uid
	}

	s.conversations[id] = conv
	return conv.Clone(), nil
}

// GetConversation retrieves a conversation by id.
func (s *MemoryStore) GetConversation(ctx context.Context, id int) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, nil
	}
	return conv.Clone(), nil
}

// GetConversationsByUser returns conversations matching the given userId.
func (s *MemoryStore) GetConversationsByUser(ctx context.Context, userID *int) ([]domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Conversation
	for _, conv := range s.conversations {
		if userIDEqual(conv.UserID, userID) {
			out = append(out, *conv.Clone())
		}
	}
	return out, nil
}

// UpdateConversation shallow-merges the provided fields onto the existing
// record. CreatedAt and id are untouched.
func (s *MemoryStore) UpdateConversation(ctx context.Context, id int, update *domain.ConversationUpdate) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, nil
	}
	update.Apply(conv)
	return conv.Clone(), nil
}

// DeleteConversation removes a conversation by id.
func (s *MemoryStore) DeleteConversation(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return false, nil
	}
	delete(s.conversations, id)
	return true, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func userIDEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
