package mocks

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"negar/internal/llm/client"
)

type TextCompleterMock struct {
	CompleteFunc func(ctx context.Context, messages []*schema.Message, opts client.CompletionOptions) (string, error)
}

func (m *TextCompleterMock) Complete(ctx context.Context, messages []*schema.Message, opts client.CompletionOptions) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages, opts)
	}
	return "", nil
}
