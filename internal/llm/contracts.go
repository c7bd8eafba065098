package llm

import "context"

// Request carries one chat-style completion request.
type Request struct {
	System string
	User   string
}

// Generator is the text-generation capability the pipeline depends on.
// Implementations are treated as untrusted oracles: the response is raw text,
// parsed and repaired downstream.
type Generator interface {
	Complete(ctx context.Context, req Request) (string, error)
}
