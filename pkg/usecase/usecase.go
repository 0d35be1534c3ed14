package usecase

import (
	"time"

	"github.com/agentmesh/agent-endpoint/pkg/domain/interfaces"
	"github.com/agentmesh/agent-endpoint/pkg/domain/model"
	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
)

type UseCases struct {
	agentID types.AgentID
	profile *model.AgentProfile
	now     func() time.Time

	Chat *ChatUseCase
	Fact *FactUseCase
}

type Option func(*UseCases)

// WithNow replaces the clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.ConversationRepository, facts interfaces.FactClient, agentID types.AgentID, profile *model.AgentProfile, opts ...Option) *UseCases {
	uc := &UseCases{
		agentID: agentID,
		profile: profile,
		now:     time.Now,
	}
	if uc.profile == nil {
		uc.profile = &model.AgentProfile{}
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Chat = newChatUseCase(repo, agentID, uc.profile, uc.now)
	uc.Fact = newFactUseCase(facts, agentID)

	return uc
}
