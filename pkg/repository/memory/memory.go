package memory

import (
	"context"
	"sync"

	"github.com/agentmesh/agent-endpoint/pkg/domain/interfaces"
	"github.com/agentmesh/agent-endpoint/pkg/domain/model"
	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
)

// Repository is an in-memory conversation log for development and
// tests. It mirrors the store semantics: most-recent-first order,
// unbounded, prefix reads.
type Repository struct {
	mu   sync.RWMutex
	logs map[types.AgentID][]*model.Message
}

var _ interfaces.ConversationRepository = &Repository{}

func New() *Repository {
	return &Repository{
		logs: make(map[types.AgentID][]*model.Message),
	}
}

func (r *Repository) Push(ctx context.Context, agentID types.AgentID, msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs[agentID] = append([]*model.Message{msg.Clone()}, r.logs[agentID]...)
	return nil
}

func (r *Repository) Recent(ctx context.Context, agentID types.AgentID, limit int) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log := r.logs[agentID]
	if limit < 0 {
		limit = 0
	}
	if limit > len(log) {
		limit = len(log)
	}

	messages := make([]*model.Message, limit)
	for i := 0; i < limit; i++ {
		messages[i] = log[i].Clone()
	}
	return messages, nil
}

func (r *Repository) Close() error {
	return nil
}
