package responder

import "context"

// Role of a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// ChatMessage is one role-tagged message of a conversation.
type ChatMessage struct {
	Role    Role
	Content string
}

// ChatRequest is a provider-neutral chat completion request. An empty Model
// leaves the choice to the completer's configured default.
type ChatRequest struct {
	Model       string
	Messages    []ChatMessage
	Temperature float64
	MaxTokens   int64
}

// System returns the concatenated system messages.
func (r ChatRequest) System() string {
	var out string
	for _, m := range r.Messages {
		if m.Role != RoleSystem {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += m.Content
	}
	return out
}

// Completer is a remote chat completion capability. Complete makes exactly
// one outbound call and returns the first choice's text. Failures should be
// returned as *Failure so callers can tell them apart.
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
