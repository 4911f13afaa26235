// Package schema validates untrusted values against the message and
// insights shapes. It guards two boundaries: message lists arriving from
// clients, and the JSON text the model returns when asked for insights.
package schema

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/timecapsule/timecapsule/internal/domain"
)

// Role and timestamp must be non-empty; content may be any string.
const messageListSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["role", "content", "timestamp"],
		"properties": {
			"role": {"type": "string", "minLength": 1},
			"content": {"type": "string"},
			"timestamp": {"type": "string", "minLength": 1}
		}
	}
}`

// Exactly three required string-array fields. Extra fields are ignored,
// missing fields are rejected.
const insightsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["keyDifferences", "successfulPredictions", "missedOpportunities"],
	"properties": {
		"keyDifferences": {"type": "array", "items": {"type": "string"}},
		"successfulPredictions": {"type": "array", "items": {"type": "string"}},
		"missedOpportunities": {"type": "array", "items": {"type": "string"}}
	}
}`

var (
	messageList = jsonschema.MustCompileString("messages.json", messageListSchema)
	insights    = jsonschema.MustCompileString("insights.json", insightsSchema)
)

// ValidateMessages checks a client-supplied message list against the
// message shape. A nil list is valid and means "no history".
func ValidateMessages(msgs []domain.Message) error {
	if msgs == nil {
		return nil
	}
	raw, err := json.Marshal(msgs)
	if err != nil {
		return &domain.ValidationError{
			Source:  domain.ValidationSourceInput,
			Field:   "messages",
			Message: err.Error(),
		}
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return &domain.ValidationError{
			Source:  domain.ValidationSourceInput,
			Field:   "messages",
			Message: err.Error(),
		}
	}
	if err := messageList.Validate(v); err != nil {
		return toValidationError(err, domain.ValidationSourceInput, "messages")
	}
	return nil
}

// DecodeInsights parses and validates raw model output against the insights
// shape. Any failure, including non-JSON text, is a ValidationError; a
// partially populated result is never returned.
func DecodeInsights(raw string) (*domain.Insights, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, &domain.ValidationError{
			Source:  domain.ValidationSourceModel,
			Field:   "insights",
			Message: "response is not valid JSON: " + err.Error(),
		}
	}
	if err := insights.Validate(v); err != nil {
		return nil, toValidationError(err, domain.ValidationSourceModel, "insights")
	}
	var out domain.Insights
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &domain.ValidationError{
			Source:  domain.ValidationSourceModel,
			Field:   "insights",
			Message: err.Error(),
		}
	}
	// Validated arrays may still decode as nil when empty.
	if out.KeyDifferences == nil {
		out.KeyDifferences = []string{}
	}
	if out.SuccessfulPredictions == nil {
		out.SuccessfulPredictions = []string{}
	}
	if out.MissedOpportunities == nil {
		out.MissedOpportunities = []string{}
	}
	return &out, nil
}

// toValidationError converts a jsonschema error into a domain error naming
// the deepest offending instance path.
func toValidationError(err error, source domain.ValidationSource, root string) *domain.ValidationError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &domain.ValidationError{Source: source, Field: root, Message: err.Error()}
	}
	deepest := ve
	for len(deepest.Causes) > 0 {
		deepest = deepest.Causes[0]
	}
	field := root
	if loc := strings.TrimPrefix(deepest.InstanceLocation, "/"); loc != "" {
		field = root + "/" + loc
	}
	return &domain.ValidationError{Source: source, Field: field, Message: deepest.Message}
}
