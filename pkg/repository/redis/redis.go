package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/agentmesh/agent-endpoint/pkg/domain/interfaces"
	"github.com/agentmesh/agent-endpoint/pkg/domain/model"
	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
)

// Repository stores conversation logs as Redis lists, one list per
// agent. Entries are JSON-encoded messages, pushed to the list head so
// the log reads most-recent-first.
type Repository struct {
	client *goredis.Client
}

var _ interfaces.ConversationRepository = &Repository{}

// New connects to the store at the given URL (redis://host:port form)
// and verifies the connection. The caller is responsible for calling
// Close() on the returned repository.
func New(ctx context.Context, redisURL string) (*Repository, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse redis URL", goerr.V("url", redisURL))
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", opts.Addr))
	}

	return &Repository{client: client}, nil
}

// logKey is the shared key scheme for per-agent conversation logs.
// Other components of the platform read the same keys, so the format
// must not change.
func logKey(agentID types.AgentID) string {
	return fmt.Sprintf("agent:%s:messages", agentID)
}

func (r *Repository) Push(ctx context.Context, agentID types.AgentID, msg *model.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal message")
	}

	if err := r.client.LPush(ctx, logKey(agentID), data).Err(); err != nil {
		return goerr.Wrap(err, "failed to push message", goerr.V("agentID", agentID))
	}
	return nil
}

func (r *Repository) Recent(ctx context.Context, agentID types.AgentID, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		return nil, nil
	}

	entries, err := r.client.LRange(ctx, logKey(agentID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read conversation log", goerr.V("agentID", agentID))
	}

	messages := make([]*model.Message, 0, len(entries))
	for _, entry := range entries {
		var msg model.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal message", goerr.V("agentID", agentID), goerr.V("entry", entry))
		}
		messages = append(messages, &msg)
	}
	return messages, nil
}

func (r *Repository) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close redis client")
	}
	return nil
}
