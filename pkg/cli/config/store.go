package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/agentmesh/agent-endpoint/pkg/domain/interfaces"
	"github.com/agentmesh/agent-endpoint/pkg/repository/memory"
	"github.com/agentmesh/agent-endpoint/pkg/repository/redis"
	"github.com/agentmesh/agent-endpoint/pkg/utils/logging"
)

// Store holds CLI flags for conversation store configuration
type Store struct {
	backend  string
	redisURL string
}

// Flags returns CLI flags for store configuration
func (x *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store-backend",
			Usage:       "Conversation store backend (redis or memory)",
			Value:       "redis",
			Sources:     cli.EnvVars("AGENT_STORE_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "redis-url",
			Usage:       "URL of the shared conversation store",
			Value:       "redis://localhost:6379",
			Sources:     cli.EnvVars("REDIS_URL"),
			Destination: &x.redisURL,
		},
	}
}

// Configure initializes and returns a conversation repository based on
// the configured backend. The caller is responsible for calling Close()
// on the returned repository.
func (x *Store) Configure(ctx context.Context) (interfaces.ConversationRepository, error) {
	switch x.backend {
	case "redis":
		repo, err := redis.New(ctx, x.redisURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize redis repository")
		}
		logging.Default().Info("Using Redis conversation store", "url", x.redisURL)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory conversation store (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid store backend", goerr.V("backend", x.backend))
	}
}
