package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"negar/internal/events"
	"negar/internal/llm"
	"negar/internal/llm/client"
	"negar/internal/models"
	"negar/internal/sessions"
)

// GenerationService runs the quality-gated generation loop: an initial
// draft, an optional evaluation pass, and bounded regeneration driven
// by evaluator feedback.
type GenerationService interface {
	Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error)
	Regenerate(ctx context.Context, generationID string) (*models.RegenerateResponse, error)
}

// Regeneration temperature bounds. The schedule nudges the sampling
// temperature around the base value before falling back to a random
// mid-range pick.
const (
	tempStep      = 0.1
	tempCeiling   = 0.8
	tempFloor     = 0.2
	tempRandLow   = 0.3
	tempRandRange = 0.4
)

var sentenceTerminators = []rune{'.', '!', '?', '؟'}

type generationService struct {
	completer      client.TextCompleter
	images         client.ImageGenerator
	evaluator      Evaluator
	store          *sessions.Store
	generatorModel string
}

// NewGenerationService wires the generation loop. images may be nil
// when no image provider is configured; image requests then silently
// produce no URL.
func NewGenerationService(completer client.TextCompleter, images client.ImageGenerator, evaluator Evaluator, store *sessions.Store, generatorModel string) GenerationService {
	return &generationService{
		completer:      completer,
		images:         images,
		evaluator:      evaluator,
		store:          store,
		generatorModel: generatorModel,
	}
}

func (s *generationService) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	s.store.EvictExpired(time.Now())

	req.Normalize()
	if req.Prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	persona := ""
	if req.UseBio {
		persona = strings.TrimSpace(req.BioText)
	}

	messages := llm.BuildMessages(llm.PromptInput{
		Prompt:     req.Prompt,
		Persona:    persona,
		Creativity: req.Creativity,
		MaxTokens:  req.MaxTokens,
		Mode:       req.Mode,
	})
	baseTemperature := llm.Temperature(req.Creativity)
	budget := llm.TokenBudget(req.Mode, req.MaxTokens)

	events.Emit(ctx, events.GenerationStart, events.NewInfo(
		fmt.Sprintf("generating with %s (temperature %.2f, budget %d)", s.generatorModel, baseTemperature, budget)))

	text, err := s.completer.Complete(ctx, messages, client.CompletionOptions{
		Model:       s.generatorModel,
		Temperature: baseTemperature,
		MaxTokens:   budget,
	})
	if err != nil {
		events.Emit(ctx, events.GenerationDone, events.NewError(err.Error()))
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	text = finishSentence(text)
	if persona != "" && !strings.Contains(text, persona) {
		text = fmt.Sprintf("As %s, %s", persona, text)
	}

	evaluationEnabled := req.EnableEvaluation && req.Criteria.AnyActive()

	resp := &models.GenerateResponse{
		Response:          text,
		EvaluationEnabled: evaluationEnabled,
		Remaining:         req.MaxRetryAttempts,
	}

	var evaluation *models.EvaluationResult
	evalModel := ""
	if evaluationEnabled {
		evalModel = ResolveEvalModel(req.EvaluationModel)
		evaluation = s.evaluator.Evaluate(ctx, text, evalModel, req.Prompt, req.Criteria)

		criteria := req.Criteria
		resp.EvaluationModel = evalModel
		resp.QualityThreshold = float64(req.QualityThreshold)
		resp.FinalScore = &evaluation.ScoreOverall
		resp.ParseError = &evaluation.ParseError
		resp.Evaluation = evaluation
		resp.Criteria = &criteria

		events.Emit(ctx, events.Evaluation, events.NewInfo(
			fmt.Sprintf("scored %.1f against threshold %d", evaluation.ScoreOverall, req.QualityThreshold)))
	}

	if req.GenerateImage && s.images != nil {
		url, imgErr := s.images.Generate(ctx, req.Prompt, req.ImageSize)
		if imgErr != nil {
			// Image failures are advisory; the text still ships.
			events.Emit(ctx, events.GenerationDone, events.NewWarn(
				fmt.Sprintf("image generation failed: %v", imgErr)))
		} else {
			resp.ImageURL = url
		}
	}

	sess := &sessions.Session{
		Prompt:            req.Prompt,
		Messages:          messages,
		GeneratorModel:    s.generatorModel,
		BaseTemperature:   baseTemperature,
		MaxTokens:         budget,
		EvaluationEnabled: evaluationEnabled,
		EvaluatorModel:    evalModel,
		Criteria:          req.Criteria,
		QualityThreshold:  float64(req.QualityThreshold),
		Remaining:         req.MaxRetryAttempts,
	}
	if evaluation != nil {
		sess.LastScore = &evaluation.ScoreOverall
		sess.LastEvaluation = evaluation
		sess.LastParseError = evaluation.ParseError
	}
	resp.GenerationID = s.store.Put(sess)

	events.Emit(events.WithSession(ctx, resp.GenerationID), events.GenerationDone,
		events.NewSuccess(fmt.Sprintf("generated %d characters", len([]rune(text)))))

	return resp, nil
}

func (s *generationService) Regenerate(ctx context.Context, generationID string) (*models.RegenerateResponse, error) {
	s.store.EvictExpired(time.Now())

	sess, ok := s.store.Get(generationID)
	if !ok {
		return &models.RegenerateResponse{OK: false, Message: "session not found"}, nil
	}

	// The whole decision-and-mutate sequence runs under the session
	// lock so two concurrent calls cannot both spend the last attempt.
	sess.Lock()
	defer sess.Unlock()

	if !sess.EvaluationEnabled {
		return &models.RegenerateResponse{OK: false, Message: "evaluation is not enabled", Remaining: sess.Remaining}, nil
	}
	if sess.Remaining <= 0 {
		return &models.RegenerateResponse{OK: false, Message: "no regeneration attempts remaining", Remaining: 0}, nil
	}
	if !sess.LastParseError && sess.LastScore != nil && *sess.LastScore >= sess.QualityThreshold {
		return &models.RegenerateResponse{
			OK:         false,
			Message:    "already good enough",
			Remaining:  sess.Remaining,
			FinalScore: *sess.LastScore,
			Evaluation: sess.LastEvaluation,
		}, nil
	}

	temperature := nextTemperature(sess.BaseTemperature, sess.RegenerationCount)
	messages := withFeedback(sess.Messages, sess.LastEvaluation)

	ctx = events.WithSession(ctx, sess.ID)
	events.Emit(ctx, events.Regeneration, events.NewInfo(
		fmt.Sprintf("retry %d at temperature %.2f", sess.RegenerationCount+1, temperature)))

	text, err := s.completer.Complete(ctx, messages, client.CompletionOptions{
		Model:       sess.GeneratorModel,
		Temperature: temperature,
		MaxTokens:   sess.MaxTokens,
	})
	if err != nil {
		events.Emit(ctx, events.Regeneration, events.NewError(err.Error()))
		return nil, fmt.Errorf("regeneration failed: %w", err)
	}
	text = finishSentence(text)

	evalModel := sess.EvaluatorModel
	if evalModel == "" {
		evalModel = sess.GeneratorModel
	}
	evaluation := s.evaluator.Evaluate(ctx, text, evalModel, sess.Prompt, sess.Criteria)

	sess.Remaining--
	sess.LastScore = &evaluation.ScoreOverall
	sess.LastEvaluation = evaluation
	sess.LastParseError = evaluation.ParseError
	sess.RegenerationCount++
	sess.LastTemperature = temperature

	criteria := sess.Criteria
	events.Emit(ctx, events.Evaluation, events.NewInfo(
		fmt.Sprintf("scored %.1f against threshold %.0f, %d attempts left", evaluation.ScoreOverall, sess.QualityThreshold, sess.Remaining)))

	return &models.RegenerateResponse{
		OK:                true,
		Response:          text,
		EvaluationEnabled: true,
		EvaluationModel:   evalModel,
		QualityThreshold:  sess.QualityThreshold,
		Remaining:         sess.Remaining,
		FinalScore:        evaluation.ScoreOverall,
		ParseError:        evaluation.ParseError,
		Evaluation:        evaluation,
		Criteria:          &criteria,
		TemperatureUsed:   temperature,
		RegenerationCount: sess.RegenerationCount,
	}, nil
}

// nextTemperature picks the sampling temperature for the retry after
// regenCount completed retries: first nudge up, then nudge down, then
// sample the middle of the range.
func nextTemperature(base float64, regenCount int) float64 {
	switch regenCount {
	case 0:
		t := base + tempStep
		if t > tempCeiling {
			t = tempCeiling
		}
		return t
	case 1:
		t := base - tempStep
		if t < tempFloor {
			t = tempFloor
		}
		return t
	default:
		return tempRandLow + rand.Float64()*tempRandRange
	}
}

// withFeedback returns a copy of the conversation with evaluator
// feedback appended to the last user message. The stored history is
// never mutated, so feedback clauses do not pile up across retries.
func withFeedback(messages []*schema.Message, evaluation *models.EvaluationResult) []*schema.Message {
	out := make([]*schema.Message, len(messages))
	copy(out, messages)

	clause := feedbackClause(evaluation)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Role == schema.User {
			amended := *out[i]
			amended.Content = amended.Content + "\n\n" + clause
			out[i] = &amended
			break
		}
	}
	return out
}

// feedbackClause turns the previous evaluation into rewrite guidance.
// A rewrite hint short enough to be noise is skipped in favor of the
// issue list; at most one clause is produced per retry.
func feedbackClause(evaluation *models.EvaluationResult) string {
	if evaluation != nil {
		if hint := strings.TrimSpace(evaluation.RewriteHint); len([]rune(hint)) > 10 {
			return fmt.Sprintf("Rewrite the previous answer with this guidance: %s", hint)
		}
		if len(evaluation.Issues) > 0 {
			issues := evaluation.Issues
			if len(issues) > 2 {
				issues = issues[:2]
			}
			return fmt.Sprintf("Rewrite the previous answer and fix these problems: %s", strings.Join(issues, "; "))
		}
	}
	return "Rewrite the previous answer with better quality."
}

// finishSentence closes off text that the token budget cut mid-thought
// by appending a period when no sentence terminator ends it.
func finishSentence(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	runes := []rune(text)
	if isTerminator(runes[len(runes)-1]) {
		return text
	}
	return text + "."
}

func isTerminator(r rune) bool {
	for _, t := range sentenceTerminators {
		if r == t {
			return true
		}
	}
	return false
}
