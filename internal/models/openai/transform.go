package openai

import (
	"fmt"

	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/openai/openai-go"
)

// toOpenAIMessages converts role-tagged messages. Unknown roles are sent as user messages.
func toOpenAIMessages(messages []responder.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case responder.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// firstChoiceText returns the first choice's message content untrimmed.
func firstChoiceText(completion *openai.ChatCompletion) (string, error) {
	if completion == nil {
		return "", fmt.Errorf("nil completion")
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return completion.Choices[0].Message.Content, nil
}
