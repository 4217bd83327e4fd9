package responder

import "fmt"

const promptTemplate = `You are an AI assistant for a customer support team.
Generate a %s email response to the following customer message:

%s

Make the response polite, clear, and professional.`

// BuildPrompt renders the instruction sent as the user message. Both inputs
// are embedded verbatim: nothing is validated, trimmed or escaped, so a
// message containing its own instructions reaches the model unchanged.
func BuildPrompt(message, tone string) string {
	return fmt.Sprintf(promptTemplate, tone, message)
}
