package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "TIMECAPSULE_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewChatClient creates a chat client based on the TIMECAPSULE_MODE
// environment variable. If TIMECAPSULE_MODE=MOCK, returns a MockClient;
// otherwise returns a real Client.
func NewChatClient(baseURL, apiKey string, timeout time.Duration) ChatClient {
	if os.Getenv(EnvMode) == ModeMock {
		log.Println("TIMECAPSULE_MODE=MOCK detected, using mock chat client")
		return NewMockClient()
	}
	return NewClient(baseURL, apiKey, timeout)
}
