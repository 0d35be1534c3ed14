package usecase

import (
	"context"

	"github.com/agentmesh/agent-endpoint/pkg/domain/interfaces"
	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
)

// FactUseCase proxies key/value fact storage to the remote backend.
// The service holds no local copy of facts.
type FactUseCase struct {
	facts   interfaces.FactClient
	agentID types.AgentID
}

func newFactUseCase(facts interfaces.FactClient, agentID types.AgentID) *FactUseCase {
	return &FactUseCase{
		facts:   facts,
		agentID: agentID,
	}
}

// SetFact stores a fact for this agent. A nil value is rejected, but
// zero values (false, 0, "") are legitimate facts and pass through.
func (uc *FactUseCase) SetFact(ctx context.Context, key string, value any) error {
	if key == "" || value == nil {
		return ErrMissingKeyOrValue
	}
	return uc.facts.SetFact(ctx, uc.agentID, key, value)
}

// GetFact retrieves a fact for this agent. A missing fact is not an
// error: the backend reports it as a null value.
func (uc *FactUseCase) GetFact(ctx context.Context, key string) (any, error) {
	return uc.facts.GetFact(ctx, uc.agentID, key)
}
