package unit_tests

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"

	"negar/internal/llm/client"
	"negar/internal/models"
	"negar/internal/services"
	"negar/internal/tests/mocks"
)

func evaluatorWithResponse(response string) services.Evaluator {
	return services.NewEvaluationService(&mocks.TextCompleterMock{
		CompleteFunc: func(ctx context.Context, messages []*schema.Message, opts client.CompletionOptions) (string, error) {
			return response, nil
		},
	})
}

func TestEvaluationService_ScoresAndAverages(t *testing.T) {
	evaluator := evaluatorWithResponse(`{
		"score_details": {"relevance": 8, "coherence": 6.5, "grammar": 7, "completeness": 6.5},
		"issues": ["the middle drags"],
		"suggestions": ["tighten the second paragraph"],
		"rewrite_hint": "shorten the middle",
		"analysis_summary": "solid but uneven"
	}`)

	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", models.DefaultCriteria())
	assert.False(t, res.ParseError)
	assert.Equal(t, 7.0, res.ScoreOverall)
	assert.Equal(t, 8.0, res.ScoreDetails["relevance"])
	assert.Equal(t, []string{"the middle drags"}, res.Issues)
	assert.Equal(t, "shorten the middle", res.RewriteHint)
}

func TestEvaluationService_ScalesDownHundredPointScores(t *testing.T) {
	evaluator := evaluatorWithResponse(`{"score_details": {"relevance": 85, "coherence": 70, "grammar": 90, "completeness": 75}}`)

	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", models.DefaultCriteria())
	assert.False(t, res.ParseError)
	assert.Equal(t, 8.5, res.ScoreDetails["relevance"])
	assert.Equal(t, 8.0, res.ScoreOverall)
}

func TestEvaluationService_AcceptsStringScores(t *testing.T) {
	evaluator := evaluatorWithResponse(`{"score_details": {"relevance": "8.5 out of 10", "coherence": "7", "grammar": "6", "completeness": "6.5"}}`)

	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", models.DefaultCriteria())
	assert.False(t, res.ParseError)
	assert.Equal(t, 8.5, res.ScoreDetails["relevance"])
	assert.Equal(t, 7.0, res.ScoreOverall)
}

func TestEvaluationService_SplitsDelimitedFeedbackStrings(t *testing.T) {
	evaluator := evaluatorWithResponse(`{
		"score_details": {"relevance": 6},
		"issues": "کوتاه است، پایان ناگهانی، لحن ناهمگون، تکرار زیاد",
		"suggestions": "expand the ending, vary the rhythm"
	}`)

	criteria := models.Criteria{Relevance: true}
	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", criteria)
	assert.False(t, res.ParseError)
	assert.Len(t, res.Issues, 3)
	assert.Equal(t, "کوتاه است", res.Issues[0])
	assert.Equal(t, []string{"expand the ending", "vary the rhythm"}, res.Suggestions)
}

func TestEvaluationService_IgnoresInactiveCriteria(t *testing.T) {
	evaluator := evaluatorWithResponse(`{"score_details": {"relevance": 9, "engagement": 1}}`)

	criteria := models.Criteria{Relevance: true}
	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", criteria)
	assert.Equal(t, 9.0, res.ScoreOverall)
	assert.NotContains(t, res.ScoreDetails, "engagement")
}

func TestEvaluationService_NoActiveCriteriaShortCircuits(t *testing.T) {
	called := false
	evaluator := services.NewEvaluationService(&mocks.TextCompleterMock{
		CompleteFunc: func(ctx context.Context, messages []*schema.Message, opts client.CompletionOptions) (string, error) {
			called = true
			return "{}", nil
		},
	})

	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", models.Criteria{})
	assert.False(t, called)
	assert.True(t, res.EvaluationDisabled)
	assert.Equal(t, 0.0, res.ScoreOverall)
}

func TestEvaluationService_UnparseableResponse(t *testing.T) {
	evaluator := evaluatorWithResponse("I think the text is quite good overall, maybe a seven.")

	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", models.DefaultCriteria())
	assert.True(t, res.ParseError)
	assert.GreaterOrEqual(t, res.ScoreOverall, 5.0)
	assert.LessOrEqual(t, res.ScoreOverall, 9.0)
	assert.Equal(t, []string{"evaluator response could not be parsed"}, res.Issues)
	assert.NotEmpty(t, res.RawResponse)
}

func TestEvaluationService_ProviderError(t *testing.T) {
	evaluator := services.NewEvaluationService(&mocks.TextCompleterMock{
		CompleteFunc: func(ctx context.Context, messages []*schema.Message, opts client.CompletionOptions) (string, error) {
			return "", assert.AnError
		},
	})

	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", models.DefaultCriteria())
	assert.True(t, res.ParseError)
	assert.GreaterOrEqual(t, res.ScoreOverall, 4.0)
	assert.LessOrEqual(t, res.ScoreOverall, 8.0)
	assert.Len(t, res.Issues, 1)
	assert.Contains(t, res.Issues[0], "evaluation failed")
	assert.Equal(t, assert.AnError.Error(), res.RawResponse)
}

func TestEvaluationService_ClampsOverallScoreFloor(t *testing.T) {
	evaluator := evaluatorWithResponse(`{"score_details": {"relevance": 0.2, "coherence": 0.4}}`)

	criteria := models.Criteria{Relevance: true, Coherence: true}
	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", criteria)
	assert.False(t, res.ParseError)
	assert.Equal(t, 1.0, res.ScoreOverall)
}

func TestEvaluationService_NoCoercibleScoresDefaultsToFive(t *testing.T) {
	evaluator := evaluatorWithResponse(`{"score_details": {"relevance": "no number here", "coherence": null}}`)

	criteria := models.Criteria{Relevance: true, Coherence: true}
	res := evaluator.Evaluate(context.Background(), "text", "gpt-4o", "prompt", criteria)
	assert.False(t, res.ParseError)
	assert.Empty(t, res.ScoreDetails)
	assert.Equal(t, 5.0, res.ScoreOverall)
}

func TestEvaluationService_UsesRequestedModelAndJSONSettings(t *testing.T) {
	var captured client.CompletionOptions
	evaluator := services.NewEvaluationService(&mocks.TextCompleterMock{
		CompleteFunc: func(ctx context.Context, messages []*schema.Message, opts client.CompletionOptions) (string, error) {
			captured = opts
			return `{"score_details": {"relevance": 7}}`, nil
		},
	})

	evaluator.Evaluate(context.Background(), "text", "gpt-4o-mini", "prompt", models.Criteria{Relevance: true})
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.Equal(t, 0.5, captured.Temperature)
	assert.Equal(t, 300, captured.MaxTokens)
}
