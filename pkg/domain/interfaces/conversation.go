package interfaces

import (
	"context"

	"github.com/agentmesh/agent-endpoint/pkg/domain/model"
	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
)

// ConversationRepository defines the interface for the shared
// conversation log. The log is ordered most-recent-first and owned by
// the external store; this service only pushes entries and reads a
// bounded prefix. Push and Recent are intentionally independent
// operations: no per-agent serialization is provided, and concurrent
// requests may interleave their pushes.
type ConversationRepository interface {
	// Push prepends a message to the agent's conversation log.
	Push(ctx context.Context, agentID types.AgentID, msg *model.Message) error

	// Recent returns up to limit messages from the front of the log,
	// most recent first.
	Recent(ctx context.Context, agentID types.AgentID, limit int) ([]*model.Message, error)

	// Close releases the underlying store connection.
	Close() error
}
