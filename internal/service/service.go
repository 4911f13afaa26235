// Package service orchestrates prompt building, model calls and
// conversation persistence.
package service

import (
	"github.com/timecapsule/timecapsule/internal/adapter/llm"
	"github.com/timecapsule/timecapsule/internal/config"
	"github.com/timecapsule/timecapsule/internal/store"
	"github.com/timecapsule/timecapsule/policy"
)

type Service struct {
	store        store.Store
	llmClient    llm.ChatClient
	config       *config.Config
	policyEngine *policy.Engine
}

func New(store store.Store, llmClient llm.ChatClient, cfg *config.Config, policyEngine *policy.Engine) *Service {
	return &Service{
		store:        store,
		llmClient:    llmClient,
		config:       cfg,
		policyEngine: policyEngine,
	}
}
