package mock

import (
	"context"

	"github.com/mr-aymann/docuRAG"
)

var _ docurag.Assistant = (*Assistant)(nil)

// Assistant is a mock implementation of docurag.Assistant.
type Assistant struct {
	ChatFn       func(ctx context.Context, query string) (*docurag.Answer, error)
	ChatStreamFn func(ctx context.Context, query string) (*docurag.ChatStream, error)
}

func (a *Assistant) Chat(ctx context.Context, query string) (*docurag.Answer, error) {
	return a.ChatFn(ctx, query)
}

func (a *Assistant) ChatStream(ctx context.Context, query string) (*docurag.ChatStream, error) {
	return a.ChatStreamFn(ctx, query)
}
