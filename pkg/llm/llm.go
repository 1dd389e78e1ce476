// Package llm talks to the chat-completion services used to interrogate and
// rewrite requirements.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a service answers without any text.
var ErrEmptyResponse = errors.New("empty response")

// Request is a single system + user exchange.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// LLM is a chat-completion service.
type LLM interface {
	Chat(ctx context.Context, req Request) (string, error)
	Name() string
}

const defaultMaxTokens = 4000

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
