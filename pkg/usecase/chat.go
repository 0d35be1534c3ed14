package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/agentmesh/agent-endpoint/pkg/domain/interfaces"
	"github.com/agentmesh/agent-endpoint/pkg/domain/model"
	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
)

// historyWindow is the number of log entries read back per request.
// The backing list is unbounded; only this prefix is ever consumed.
const historyWindow = 10

// ChatUseCase handles inbound user messages: it appends the message to
// the shared conversation log, reads back the recent history, and
// appends a placeholder agent reply carrying that history snapshot.
//
// The push/read/push sequence is ordered only within one call. Two
// concurrent requests for the same agent may interleave their pushes;
// the store provides no per-agent serialization and none is added here.
type ChatUseCase struct {
	repo    interfaces.ConversationRepository
	agentID types.AgentID
	profile *model.AgentProfile
	now     func() time.Time
}

func newChatUseCase(repo interfaces.ConversationRepository, agentID types.AgentID, profile *model.AgentProfile, now func() time.Time) *ChatUseCase {
	return &ChatUseCase{
		repo:    repo,
		agentID: agentID,
		profile: profile,
		now:     now,
	}
}

// HandleMessage processes one user message and returns the agent reply.
// Store failures propagate to the caller; there are no retries, and a
// failure between the two pushes leaves the user message in the log.
func (uc *ChatUseCase) HandleMessage(ctx context.Context, message string) (*model.Message, error) {
	if message == "" {
		return nil, ErrMissingMessage
	}

	userMsg := model.NewMessage(types.RoleUser, message, uc.now())
	if err := uc.repo.Push(ctx, uc.agentID, userMsg); err != nil {
		return nil, goerr.Wrap(err, "failed to store user message", goerr.V("agentID", uc.agentID))
	}

	history, err := uc.repo.Recent(ctx, uc.agentID, historyWindow)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read conversation history", goerr.V("agentID", uc.agentID))
	}

	// TODO: replace with tool invocation and a real LLM call once the
	// platform wires model access into agent containers.
	reply := model.NewMessage(types.RoleAgent, uc.replyContent(message), uc.now())
	reply.Memory = history

	if err := uc.repo.Push(ctx, uc.agentID, reply); err != nil {
		return nil, goerr.Wrap(err, "failed to store agent reply", goerr.V("agentID", uc.agentID))
	}

	return reply, nil
}

func (uc *ChatUseCase) replyContent(message string) string {
	return fmt.Sprintf("Echo: %s\nContext: %s\nTools: %s",
		message, uc.profile.SystemPrompt, uc.profile.ToolList())
}
