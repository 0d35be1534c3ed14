package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/agentmesh/agent-endpoint/pkg/domain/interfaces"
	"github.com/agentmesh/agent-endpoint/pkg/service/backend"
)

// Backend holds CLI flags for the remote fact-storage backend
type Backend struct {
	baseURL string
}

// Flags returns CLI flags for backend configuration
func (x *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the platform backend API",
			Value:       "http://host.docker.internal:4000",
			Sources:     cli.EnvVars("BACKEND_URL"),
			Destination: &x.baseURL,
		},
	}
}

// Configure returns a fact client for the configured backend.
func (x *Backend) Configure() (interfaces.FactClient, error) {
	client, err := backend.New(x.baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize backend client")
	}
	return client, nil
}
