package interfaces

import (
	"context"

	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
)

// FactClient defines the interface for the remote long-term fact
// storage. Facts are owned entirely by the backend; the service keeps
// no local copy.
type FactClient interface {
	// SetFact stores a key/value pair scoped to the agent.
	SetFact(ctx context.Context, agentID types.AgentID, key string, value any) error

	// GetFact retrieves the value for a key, or nil if the backend has
	// no value.
	GetFact(ctx context.Context, agentID types.AgentID, key string) (any, error)
}
