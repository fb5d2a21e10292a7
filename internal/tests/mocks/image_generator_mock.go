package mocks

import "context"

type ImageGeneratorMock struct {
	GenerateFunc func(ctx context.Context, prompt, size string) (string, error)
}

func (m *ImageGeneratorMock) Generate(ctx context.Context, prompt, size string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, size)
	}
	return "", nil
}
