package core

import (
	"time"

	"github.com/google/uuid"
)

// Response is the immutable record produced by exactly one agent call. It
// carries attribution (which agent variant produced it), the generated text
// and open metadata such as the answering backend or call latency. Responses
// never reference each other; relationships between them are expressed only
// through the orchestrator's context passing.
type Response struct {
	ID        string         `json:"id"`
	AgentName string         `json:"agent_name"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewResponse constructs a Response attributed to the named agent with a
// generated ID and UTC creation timestamp. The metadata map is copied.
func NewResponse(agentName, content string, metadata map[string]any) Response {
	r := Response{
		ID:        NewID(),
		AgentName: agentName,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if len(metadata) > 0 {
		r.Metadata = make(map[string]any, len(metadata))
		for k, v := range metadata {
			r.Metadata[k] = v
		}
	}
	return r
}

// NewID generates a new unique identifier for responses.
func NewID() string { return uuid.NewString() }
