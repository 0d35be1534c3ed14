package config

import (
	"encoding/base64"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/agentmesh/agent-endpoint/pkg/domain/model"
	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
)

// Agent holds CLI flags for the agent identity and profile. The
// orchestrator provisions agents with AGENT_ID and a base64-encoded
// JSON profile in AGENT_CONFIG; a TOML file is the local-development
// alternative.
type Agent struct {
	id         string
	encoded    string
	configPath string
}

// Flags returns CLI flags for agent configuration
func (x *Agent) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "agent-id",
			Usage:       "Identity of this agent instance",
			Value:       types.DefaultAgentID.String(),
			Sources:     cli.EnvVars("AGENT_ID"),
			Destination: &x.id,
		},
		&cli.StringFlag{
			Name:        "agent-config",
			Usage:       "Base64-encoded JSON agent profile (systemPrompt, tools)",
			Sources:     cli.EnvVars("AGENT_CONFIG"),
			Destination: &x.encoded,
		},
		&cli.StringFlag{
			Name:        "agent-config-file",
			Usage:       "Path to a TOML agent profile (alternative to --agent-config)",
			Sources:     cli.EnvVars("AGENT_CONFIG_FILE"),
			Destination: &x.configPath,
		},
	}
}

// AgentID returns the configured agent identity.
func (x *Agent) AgentID() types.AgentID {
	return types.AgentID(x.id)
}

// Configure validates the identity and loads the agent profile. An
// empty configuration yields an empty profile: missing fields default
// to empty string and no tools rather than failing.
func (x *Agent) Configure() (*model.AgentProfile, error) {
	if err := x.AgentID().Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid agent ID")
	}

	if x.encoded != "" && x.configPath != "" {
		return nil, goerr.New("agent-config and agent-config-file are mutually exclusive")
	}

	switch {
	case x.encoded != "":
		return decodeProfile(x.encoded)
	case x.configPath != "":
		return loadProfileFile(x.configPath)
	default:
		return &model.AgentProfile{}, nil
	}
}

func decodeProfile(encoded string) (*model.AgentProfile, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode agent config")
	}

	var profile model.AgentProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse agent config JSON")
	}
	return &profile, nil
}

func loadProfileFile(path string) (*model.AgentProfile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read agent config file", goerr.V("path", path))
	}

	var profile model.AgentProfile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML agent config", goerr.V("path", path))
	}
	return &profile, nil
}
