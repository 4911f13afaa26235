package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/timecapsule/timecapsule/internal/domain"
	"github.com/timecapsule/timecapsule/internal/prompt"
)

// exportPage renders a stored conversation as a self-contained display
// page. One-way and lossy: not a re-importable format.
const exportPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Time Capsule Conversation #{{.Conversation.ID}}</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; color: #1a1a2e; }
header { border-bottom: 2px solid #1a1a2e; padding-bottom: 1rem; }
dl { display: grid; grid-template-columns: max-content 1fr; gap: 0.25rem 1rem; }
dt { font-weight: bold; }
.message { margin: 0.75rem 0; padding: 0.75rem; border-radius: 8px; }
.message.user { background: #e8eaf6; }
.message.ai { background: #f1f8e9; }
.speaker { font-weight: bold; font-size: 0.85rem; }
.insights h3 { margin-bottom: 0.25rem; }
footer { margin-top: 2rem; font-size: 0.8rem; color: #666; }
</style>
</head>
<body>
<header>
<h1>Conversation with your {{.Conversation.Mode}} self</h1>
<dl>
<dt>Time frame</dt><dd>{{.TimeFramePhrase}} {{.Direction}}</dd>
<dt>Context</dt><dd>{{.Conversation.Context}}</dd>
<dt>Situation</dt><dd>{{.Conversation.CurrentSituation}}</dd>
<dt>Started</dt><dd>{{.Conversation.CreatedAt.Format "Jan 2, 2006 15:04 MST"}}</dd>
</dl>
</header>
<main>
{{range .Conversation.Messages}}
<div class="message {{.Role}}">
<div class="speaker">{{if eq .Role "user"}}You{{else}}{{$.Counterpart}}{{end}}</div>
<div>{{.Content}}</div>
</div>
{{end}}
{{with .Conversation.Insights}}
<section class="insights">
<h2>Insights</h2>
<h3>Key differences</h3>
<ul>{{range .KeyDifferences}}<li>{{.}}</li>{{end}}</ul>
<h3>Successful predictions</h3>
<ul>{{range .SuccessfulPredictions}}<li>{{.}}</li>{{end}}</ul>
<h3>Missed opportunities</h3>
<ul>{{range .MissedOpportunities}}<li>{{.}}</li>{{end}}</ul>
</section>
{{end}}
</main>
<footer>Exported {{.GeneratedAt.Format "Jan 2, 2006 15:04 MST"}}</footer>
</body>
</html>
`

var exportTemplate = template.Must(template.New("export").Parse(exportPage))

type exportData struct {
	Conversation    *domain.Conversation
	TimeFramePhrase string
	Direction       string
	Counterpart     string
	GeneratedAt     time.Time
}

// ExportConversation renders a stored conversation as a static HTML page.
func (s *Service) ExportConversation(ctx context.Context, id int) ([]byte, error) {
	conv, err := s.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}

	data := exportData{
		Conversation:    conv,
		TimeFramePhrase: prompt.TimeFramePhrase(conv.TimeFrame),
		Direction:       prompt.TenseDirection(conv.Mode),
		Counterpart:     counterpartLabel(conv.Mode),
		GeneratedAt:     time.Now().UTC(),
	}

	var buf bytes.Buffer
	if err := exportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}
	return buf.Bytes(), nil
}

func counterpartLabel(mode domain.Mode) string {
	switch mode {
	case domain.ModePast:
		return "Past self"
	case domain.ModeFuture:
		return "Future self"
	default:
		return "AI"
	}
}
