package eval

import "strings"

const DefaultSystemPrompt = "You are a helpful assistant."

const userTemplate = "Use the provided context to answer the question. " +
	"Your answer must contain only the name, with no other words. " +
	"If the answer is not present in the context, reply with 'Unknown'.\n\n" +
	"CONTEXT:\n{context}\n\n" +
	"QUESTION: {question}\n\n" +
	"Your answer:"

// Prompt is the message pair sent for one question, persisted as-is in the
// answers artifact.
type Prompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

func BuildPrompt(context, question string) Prompt {
	user := strings.ReplaceAll(userTemplate, "{context}", context)
	user = strings.ReplaceAll(user, "{question}", question)
	return Prompt{System: DefaultSystemPrompt, User: user}
}
