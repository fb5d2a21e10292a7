package mocks

import (
	"context"

	"negar/internal/models"
)

type EvaluatorMock struct {
	EvaluateFunc func(ctx context.Context, text, evalModel, prompt string, criteria models.Criteria) *models.EvaluationResult
}

func (m *EvaluatorMock) Evaluate(ctx context.Context, text, evalModel, prompt string, criteria models.Criteria) *models.EvaluationResult {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, text, evalModel, prompt, criteria)
	}
	return &models.EvaluationResult{}
}
