package mocks

import (
	"context"

	"negar/internal/models"
)

type GenerationServiceMock struct {
	GenerateFunc   func(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error)
	RegenerateFunc func(ctx context.Context, generationID string) (*models.RegenerateResponse, error)
}

func (m *GenerationServiceMock) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &models.GenerateResponse{}, nil
}

func (m *GenerationServiceMock) Regenerate(ctx context.Context, generationID string) (*models.RegenerateResponse, error) {
	if m.RegenerateFunc != nil {
		return m.RegenerateFunc(ctx, generationID)
	}
	return &models.RegenerateResponse{}, nil
}
