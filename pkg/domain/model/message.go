package model

import (
	"time"

	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
)

// Message is one entry in the shared conversation log. The JSON field
// names are the wire format shared with other agents reading the same
// log, so they must stay stable. Messages are append-only and never
// mutated after creation.
type Message struct {
	Role      types.Role `json:"role"`
	Content   string     `json:"content"`
	Timestamp int64      `json:"timestamp"`
	Memory    []*Message `json:"memory,omitempty"`
}

// NewMessage creates a message authored at the given time. Timestamps
// are stored as Unix seconds on the wire.
func NewMessage(role types.Role, content string, at time.Time) *Message {
	return &Message{
		Role:      role,
		Content:   content,
		Timestamp: at.Unix(),
	}
}

// Clone returns a deep copy including the memory snapshot, so callers
// can hand out messages without sharing the backing slice.
func (x *Message) Clone() *Message {
	if x == nil {
		return nil
	}
	copied := &Message{
		Role:      x.Role,
		Content:   x.Content,
		Timestamp: x.Timestamp,
	}
	if x.Memory != nil {
		copied.Memory = make([]*Message, len(x.Memory))
		for i, m := range x.Memory {
			copied.Memory[i] = m.Clone()
		}
	}
	return copied
}
