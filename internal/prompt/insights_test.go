package prompt

import (
	"reflect"
	"strings"
	"testing"

	"github.com/timecapsule/timecapsule/internal/domain"
)

func TestBuildInsightPromptTranscriptOrder(t *testing.T) {
	messages := []domain.Message{
		{Role: domain.RoleUser, Content: "first question", Timestamp: "2025-01-01T00:00:00Z"},
		{Role: domain.RoleAI, Content: "first answer", Timestamp: "2025-01-01T00:00:05Z"},
		{Role: domain.RoleUser, Content: "second question", Timestamp: "2025-01-01T00:00:10Z"},
	}

	p := BuildInsightPrompt(domain.ModeFuture, domain.TimeFrame2Years, domain.ContextStrategy, "choosing a market", messages)

	if !strings.Contains(p, "future self from 2 years from now") {
		t.Fatalf("prompt missing header phrase:\n%s", p)
	}
	if !strings.Contains(p, `"choosing a market"`) {
		t.Fatalf("prompt missing situation:\n%s", p)
	}

	iUser := strings.Index(p, "User: first question")
	iAI := strings.Index(p, "AI: first answer")
	iUser2 := strings.Index(p, "User: second question")
	if iUser < 0 || iAI < 0 || iUser2 < 0 {
		t.Fatalf("transcript lines missing:\n%s", p)
	}
	if !(iUser < iAI && iAI < iUser2) {
		t.Fatalf("transcript rendered out of order:\n%s", p)
	}

	for _, field := range []string{"keyDifferences", "successfulPredictions", "missedOpportunities"} {
		if !strings.Contains(p, field) {
			t.Fatalf("instruction block missing %q:\n%s", field, p)
		}
	}
}

func TestParseInsightResponseRoundTrip(t *testing.T) {
	raw := `{"keyDifferences":["x"],"successfulPredictions":["y"],"missedOpportunities":["z"]}`
	got, err := ParseInsightResponse(raw)
	if err != nil {
		t.Fatalf("ParseInsightResponse failed: %v", err)
	}
	want := &domain.Insights{
		KeyDifferences:        []string{"x"},
		SuccessfulPredictions: []string{"y"},
		MissedOpportunities:   []string{"z"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected insights: %+v", got)
	}
}

func TestParseInsightResponseRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"not json at all",
		`{"keyDifferences":[]}`,
		`["keyDifferences"]`,
	} {
		if got, err := ParseInsightResponse(raw); err == nil {
			t.Fatalf("expected error for %q, got %+v", raw, got)
		}
	}
}
