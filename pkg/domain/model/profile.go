package model

import "strings"

// ToolSpec describes one tool available to the agent. Only the name is
// used by the placeholder responder; the rest is carried for the
// orchestrator that provisions the agent.
type ToolSpec struct {
	Name        string `json:"name" toml:"name"`
	Description string `json:"description,omitempty" toml:"description,omitempty"`
}

// AgentProfile is the per-agent configuration loaded once at startup
// and immutable thereafter. Missing fields default to empty values.
type AgentProfile struct {
	SystemPrompt string     `json:"systemPrompt" toml:"system_prompt"`
	Tools        []ToolSpec `json:"tools" toml:"tools"`
}

// ToolNames returns the configured tool names in order.
func (x *AgentProfile) ToolNames() []string {
	names := make([]string, len(x.Tools))
	for i, tool := range x.Tools {
		names[i] = tool.Name
	}
	return names
}

// ToolList returns the comma-joined tool names used in the placeholder
// response content.
func (x *AgentProfile) ToolList() string {
	return strings.Join(x.ToolNames(), ", ")
}
