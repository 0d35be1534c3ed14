package types

import "github.com/m-mizutani/goerr/v2"

// AgentID identifies one running agent instance. It is fixed at process
// start and never changes for the process lifetime.
type AgentID string

// DefaultAgentID is used when no identity is configured.
const DefaultAgentID AgentID = "unknown"

// Validate checks if the agent ID is usable as a store key component.
func (x AgentID) Validate() error {
	if x == "" {
		return goerr.New("agent ID must not be empty")
	}
	return nil
}

// String returns the string representation of the agent ID.
func (x AgentID) String() string {
	return string(x)
}
