// Package domain defines the core domain models for the time capsule service.
package domain

import "time"

// Message is a single turn in a conversation transcript. Messages are
// immutable once appended; their order is the literal transcript replayed
// to the model.
type Message struct {
	Role      string `json:"role"` // "user" or "ai"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // ISO-8601, assigned client-side
}

// Insights is the three-category summary generated once per conversation.
type Insights struct {
	KeyDifferences        []string `json:"keyDifferences"`
	SuccessfulPredictions []string `json:"successfulPredictions"`
	MissedOpportunities   []string `json:"missedOpportunities"`
}

// Clone returns a deep copy of the insights.
func (i *Insights) Clone() *Insights {
	if i == nil {
		return nil
	}
	out := &Insights{
		KeyDifferences:        append([]string(nil), i.KeyDifferences...),
		SuccessfulPredictions: append([]string(nil), i.SuccessfulPredictions...),
		MissedOpportunities:   append([]string(nil), i.MissedOpportunities...),
	}
	return out
}

// Conversation is a stored time capsule conversation.
type Conversation struct {
	ID               int       `json:"id"`
	UserID           *int      `json:"userId"`
	Mode             Mode      `json:"mode"`
	TimeFrame        TimeFrame `json:"timeFrame"`
	Context          Context   `json:"context"`
	CurrentSituation string    `json:"currentSituation"`
	Messages         []Message `json:"messages"`
	Insights         *Insights `json:"insights"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the conversation. Stores hand out clones so
// callers can never alias the stored record.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	out := *c
	out.UserID = cloneIntPtr(c.UserID)
	out.Messages = CloneMessages(c.Messages)
	out.Insights = c.Insights.Clone()
	return &out
}

// ConversationDraft is the insert shape of a conversation: everything the
// client supplies, without the store-assigned id and createdAt.
type ConversationDraft struct {
	UserID           *int      `json:"userId"`
	Mode             Mode      `json:"mode"`
	TimeFrame        TimeFrame `json:"timeFrame"`
	Context          Context   `json:"context"`
	CurrentSituation string    `json:"currentSituation"`
	Messages         []Message `json:"messages"`
	Insights         *Insights `json:"insights"`
}

// ConversationUpdate carries the fields of a shallow-merge update. Nil means
// "leave unchanged"; id and createdAt are never updatable.
type ConversationUpdate struct {
	UserID           *int       `json:"userId"`
	Mode             *Mode      `json:"mode"`
	TimeFrame        *TimeFrame `json:"timeFrame"`
	Context          *Context   `json:"context"`
	CurrentSituation *string    `json:"currentSituation"`
	Messages         *[]Message `json:"messages"`
	Insights         *Insights  `json:"insights"`
}

// Apply merges the provided fields onto conv in place.
func (u *ConversationUpdate) Apply(conv *Conversation) {
	if u.UserID != nil {
		conv.UserID = cloneIntPtr(u.UserID)
	}
	if u.Mode != nil {
		conv.Mode = *u.Mode
	}
	if u.TimeFrame != nil {
		conv.TimeFrame = *u.TimeFrame
	}
	if u.Context != nil {
		conv.Context = *u.Context
	}
	if u.CurrentSituation != nil {
		conv.CurrentSituation = *u.CurrentSituation
	}
	if u.Messages != nil {
		conv.Messages = CloneMessages(*u.Messages)
	}
	if u.Insights != nil {
		conv.Insights = u.Insights.Clone()
	}
}

// CloneMessages copies a message list. A nil input yields an empty,
// non-nil slice so stored transcripts always marshal as [].
func CloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
