package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/timecapsule/timecapsule/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	uid := 3
	draft := testDraft()
	draft.UserID = &uid
	draft.Insights = &domain.Insights{
		KeyDifferences:        []string{"a"},
		SuccessfulPredictions: []string{"b"},
		MissedOpportunities:   []string{"c"},
	}

	created, err := s.CreateConversation(ctx, draft)
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	got, err := s.GetConversation(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored conversation")
	}
	if got.ID != created.ID || got.Mode != draft.Mode || got.TimeFrame != draft.TimeFrame {
		t.Fatalf("unexpected conversation: %+v", got)
	}
	if got.UserID == nil || *got.UserID != uid {
		t.Fatalf("userId not persisted: %+v", got.UserID)
	}
	if !reflect.DeepEqual(got.Messages, draft.Messages) {
		t.Fatalf("messages mismatch: %+v", got.Messages)
	}
	if !reflect.DeepEqual(got.Insights, draft.Insights) {
		t.Fatalf("insights mismatch: %+v", got.Insights)
	}
}

func TestSQLiteStoreUnknownID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	got, err := s.GetConversation(ctx, 99)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown id, got %+v", got)
	}

	updated, err := s.UpdateConversation(ctx, 99, &domain.ConversationUpdate{})
	if err != nil {
		t.Fatalf("UpdateConversation failed: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil for unknown id, got %+v", updated)
	}

	deleted, err := s.DeleteConversation(ctx, 99)
	if err != nil || deleted {
		t.Fatalf("expected false for unknown id, got %v, %v", deleted, err)
	}
}

func TestSQLiteStoreUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	created, err := s.CreateConversation(ctx, testDraft())
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	insights := &domain.Insights{
		KeyDifferences:        []string{"different focus"},
		SuccessfulPredictions: []string{},
		MissedOpportunities:   []string{"missed hire"},
	}
	updated, err := s.UpdateConversation(ctx, created.ID, &domain.ConversationUpdate{Insights: insights})
	if err != nil {
		t.Fatalf("UpdateConversation failed: %v", err)
	}
	if updated == nil || !reflect.DeepEqual(updated.Insights, insights) {
		t.Fatalf("insights not merged: %+v", updated)
	}
	if !reflect.DeepEqual(updated.Messages, created.Messages) {
		t.Fatalf("messages changed by unrelated update: %+v", updated.Messages)
	}

	deleted, err := s.DeleteConversation(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got %v, %v", deleted, err)
	}
	got, err := s.GetConversation(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil after delete, got %+v", got)
	}
}

func TestSQLiteStoreListByUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	if _, err := s.CreateConversation(ctx, testDraft()); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	uid := 5
	owned := testDraft()
	owned.UserID = &uid
	if _, err := s.CreateConversation(ctx, owned); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	anon, err := s.GetConversationsByUser(ctx, nil)
	if err != nil {
		t.Fatalf("GetConversationsByUser failed: %v", err)
	}
	if len(anon) != 1 || anon[0].UserID != nil {
		t.Fatalf("expected 1 anonymous conversation, got %+v", anon)
	}

	ownedConvs, err := s.GetConversationsByUser(ctx, &uid)
	if err != nil {
		t.Fatalf("GetConversationsByUser failed: %v", err)
	}
	if len(ownedConvs) != 1 || ownedConvs[0].UserID == nil || *ownedConvs[0].UserID != uid {
		t.Fatalf("expected 1 conversation for user %d, got %+v", uid, ownedConvs)
	}
}
