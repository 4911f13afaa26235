// Package policy evaluates write policies for stored conversations.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// DecisionAllow is the decision under which a write proceeds; any other
// decision blocks it.
const DecisionAllow = "allow"

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.conversation_policy.decision"),
		rego.Module("conversation_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the conversation policy. Input is a map with keys such
// as action, sets_insights, has_messages. Returns the decision string; the
// policy is expected to define a default.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionAllow, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("policy returned non-string decision: %v", results[0].Expressions[0].Value)
}

// DefaultPolicy is the default conversation policy: insights may only be
// written to a conversation that already carries messages.
const DefaultPolicy = `
package conversation_policy

default decision := "allow"

decision := "block_insights_without_messages" if {
	input.action == "update"
	input.sets_insights
	not input.has_messages
}
`
