package anthropic

import (
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/lewisedginton/email_responder/internal/responder"
)

// toClaudeMessages keeps the non-system messages; the system prompt travels
// in MessageNewParams.System.
func toClaudeMessages(messages []responder.ChatMessage) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		if m.Role == responder.RoleSystem {
			continue
		}
		out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
	}
	return out
}

// messageText joins the text blocks of a response.
func messageText(message *anthropic.Message) (string, error) {
	if message == nil {
		return "", fmt.Errorf("nil message")
	}
	var sb strings.Builder
	found := false
	for _, block := range message.Content {
		if block.Type != "text" {
			continue
		}
		found = true
		sb.WriteString(block.Text)
	}
	if !found {
		return "", fmt.Errorf("no text content in response")
	}
	return sb.String(), nil
}
