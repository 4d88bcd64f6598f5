package relay

import "strings"

// Compose builds the prompt sent to the model. An empty (after trimming)
// context leaves userText untouched; otherwise the context is placed under a
// header, followed by the request.
func Compose(label, context, userText string) string {
	block := strings.TrimSpace(context)
	if block == "" {
		return userText
	}

	var sb strings.Builder
	sb.WriteString(contextHeader(label))
	sb.WriteString("\n")
	sb.WriteString(block)
	sb.WriteString("\n\nUser request:\n")
	sb.WriteString(userText)
	return sb.String()
}

func contextHeader(label string) string {
	if label = strings.TrimSpace(label); label == "" {
		return "Context:"
	}
	return "Context (" + label + "):"
}
