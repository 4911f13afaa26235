package domain

// GenerateRequest is the body of POST /api/conversations/generate.
type GenerateRequest struct {
	Mode             Mode      `json:"mode"`
	TimeFrame        TimeFrame `json:"timeFrame"`
	Context          Context   `json:"context"`
	CurrentSituation string    `json:"currentSituation"`
	Message          string    `json:"message"`
	PreviousMessages []Message `json:"previousMessages"`
}

// Validate checks required fields. It deliberately does not check enum
// membership; unrecognized values degrade gracefully downstream.
func (r *GenerateRequest) Validate() error {
	switch {
	case r.Mode == "":
		return MissingFieldError("mode")
	case r.TimeFrame == "":
		return MissingFieldError("timeFrame")
	case r.Context == "":
		return MissingFieldError("context")
	case r.CurrentSituation == "":
		return MissingFieldError("currentSituation")
	case r.Message == "":
		return MissingFieldError("message")
	}
	return nil
}

// GenerateResponse is the body returned by the generate endpoint.
type GenerateResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// InsightsRequest is the body of POST /api/conversations/insights.
type InsightsRequest struct {
	Mode             Mode      `json:"mode"`
	TimeFrame        TimeFrame `json:"timeFrame"`
	Context          Context   `json:"context"`
	CurrentSituation string    `json:"currentSituation"`
	Messages         []Message `json:"messages"`
}

// Validate checks required fields.
func (r *InsightsRequest) Validate() error {
	switch {
	case r.Mode == "":
		return MissingFieldError("mode")
	case r.TimeFrame == "":
		return MissingFieldError("timeFrame")
	case r.Context == "":
		return MissingFieldError("context")
	case r.CurrentSituation == "":
		return MissingFieldError("currentSituation")
	case r.Messages == nil:
		return MissingFieldError("messages")
	}
	return nil
}

// Validate checks the required fields of a save request.
func (d *ConversationDraft) Validate() error {
	switch {
	case d.Mode == "":
		return MissingFieldError("mode")
	case d.TimeFrame == "":
		return MissingFieldError("timeFrame")
	case d.Context == "":
		return MissingFieldError("context")
	case d.CurrentSituation == "":
		return MissingFieldError("currentSituation")
	}
	return nil
}
