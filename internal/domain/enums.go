package domain

// Mode selects whether the simulated counterpart is the user's past or
// future self. Free-form values are accepted at the boundary and echoed
// verbatim into prompts; only the enumerated values get mode framing.
type Mode string

const (
	ModePast   Mode = "past"
	ModeFuture Mode = "future"
)

// TimeFrame is the enumerated distance between now and the simulated self.
type TimeFrame string

const (
	TimeFrame1Month  TimeFrame = "1m"
	TimeFrame3Months TimeFrame = "3m"
	TimeFrame6Months TimeFrame = "6m"
	TimeFrame1Year   TimeFrame = "1y"
	TimeFrame2Years  TimeFrame = "2y"
	TimeFrame5Years  TimeFrame = "5y"
)

// Context is the business topic framing the conversation.
type Context string

const (
	ContextProduct  Context = "product"
	ContextTeam     Context = "team"
	ContextRevenue  Context = "revenue"
	ContextStrategy Context = "strategy"
)

// Message roles as stored in the transcript. The model-facing "assistant"
// role only exists on the wire to the LLM, never in stored messages.
const (
	RoleUser = "user"
	RoleAI   = "ai"
)
