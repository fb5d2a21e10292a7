package services

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"

	"negar/internal/llm/client"
	"negar/internal/models"
	"negar/internal/utils"
)

// Evaluator scores a candidate text against the active rubric subset.
// It never returns an error: provider and parse failures come back as
// degraded results tagged with ParseError so the quality gate can
// discount them.
type Evaluator interface {
	Evaluate(ctx context.Context, text, evalModel, prompt string, criteria models.Criteria) *models.EvaluationResult
}

const (
	evalTemperature = 0.5
	evalMaxTokens   = 300

	maxFeedbackItems   = 3
	maxRewriteHintLen  = 250
	maxSummaryLen      = 200
	maxRawResponseLen  = 500
	maxErrorMessageLen = 100
)

// criteriaLabels are the human-readable rubric descriptions embedded
// in the evaluation prompt.
var criteriaLabels = map[string]string{
	"relevance":    "alignment with the user's request",
	"coherence":    "coherence and structure of the text",
	"creativity":   "creativity and originality",
	"grammar":      "grammar and writing mechanics",
	"engagement":   "engagement and impact",
	"completeness": "length and detail of the text (completeness)",
}

type evaluationService struct {
	completer client.TextCompleter
}

// NewEvaluationService builds an evaluator on top of a completion
// client configured for JSON output.
func NewEvaluationService(completer client.TextCompleter) Evaluator {
	return &evaluationService{completer: completer}
}

func (s *evaluationService) Evaluate(ctx context.Context, text, evalModel, prompt string, criteria models.Criteria) *models.EvaluationResult {
	active := criteria.Active()
	if len(active) == 0 {
		return &models.EvaluationResult{
			ScoreDetails:       map[string]float64{},
			Issues:             []string{},
			Suggestions:        []string{},
			AnalysisSummary:    "evaluation is disabled",
			EvaluationDisabled: true,
		}
	}

	messages := buildEvaluationMessages(text, prompt, active)

	raw, err := s.completer.Complete(ctx, messages, client.CompletionOptions{
		Model:       evalModel,
		Temperature: evalTemperature,
		MaxTokens:   evalMaxTokens,
	})
	if err != nil {
		// Evaluation must not take the pipeline down with it; hand
		// back a degraded placeholder the gate will treat as
		// low-confidence.
		return &models.EvaluationResult{
			ScoreOverall: round1(randomBetween(4.0, 8.0)),
			ScoreDetails: map[string]float64{},
			Issues:       []string{fmt.Sprintf("evaluation failed: %s", truncateRunes(err.Error(), maxErrorMessageLen))},
			Suggestions:  []string{},
			ParseError:   true,
			RawResponse:  err.Error(),
		}
	}

	parsed := utils.ExtractJSON(raw)
	if parsed == nil {
		return &models.EvaluationResult{
			ScoreOverall: round1(randomBetween(5.0, 9.0)),
			ScoreDetails: map[string]float64{},
			Issues:       []string{"evaluator response could not be parsed"},
			Suggestions:  []string{},
			RewriteHint:  "please evaluate again",
			ParseError:   true,
			RawResponse:  truncateRunes(raw, maxRawResponseLen),
		}
	}

	details := parsedScoreDetails(parsed, active)
	return &models.EvaluationResult{
		ScoreOverall:    overallScore(details),
		ScoreDetails:    details,
		Issues:          feedbackList(parsed["issues"]),
		Suggestions:     feedbackList(parsed["suggestions"]),
		RewriteHint:     truncateRunes(stringField(parsed["rewrite_hint"]), maxRewriteHintLen),
		AnalysisSummary: truncateRunes(stringField(parsed["analysis_summary"]), maxSummaryLen),
		RawResponse:     truncateRunes(raw, maxRawResponseLen),
	}
}

// buildEvaluationMessages constructs the rubric instruction. The
// system message demands strict JSON; the user message embeds the
// original prompt, the candidate text, the active criteria, and the
// expected response shape.
func buildEvaluationMessages(text, prompt string, active []string) []*schema.Message {
	system := `You are an evaluator of creative writing. Assess the quality of the text carefully and with nuance.
Return the output as JSON only, with no extra text.

Important rules:
1. Score only the listed criteria
2. Give each criterion a score between 1 and 10 (fractional values like 7.5 are allowed)
3. The overall score is computed automatically from the per-criterion average
4. Issues and suggestions must be specific to this text, not generic
5. rewrite_hint must be concrete and actionable`

	var criteriaLines []string
	for i, name := range active {
		criteriaLines = append(criteriaLines, fmt.Sprintf("%d. %s", i+1, criteriaLabels[name]))
	}

	var schemaFields []string
	for _, name := range active {
		schemaFields = append(schemaFields, fmt.Sprintf("%q: \"number between 1-10 (%s)\"", name, criteriaLabels[name]))
	}

	user := fmt.Sprintf(`## Original user request:
%s

## Generated text:
%s

## Evaluation criteria (score only the following):
%s

Respond with exactly this structure (JSON only):
{
  "score_details": {
    %s
  },
  "issues": ["problems specific to this text"],
  "suggestions": ["actionable suggestions for this text"],
  "rewrite_hint": "precise guidance for improving this particular text",
  "analysis_summary": "short analysis of strengths and weaknesses"
}`, prompt, text, strings.Join(criteriaLines, "\n"), strings.Join(schemaFields, ",\n    "))

	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}
}

// parsedScoreDetails coerces the per-criterion scores for the active
// criteria present in the parsed payload.
func parsedScoreDetails(parsed map[string]any, active []string) map[string]float64 {
	details := map[string]float64{}
	rawDetails, ok := parsed["score_details"].(map[string]any)
	if !ok {
		return details
	}
	for _, name := range active {
		value, present := rawDetails[name]
		if !present {
			continue
		}
		if score, ok := coerceScore(value); ok {
			details[name] = round1(score)
		}
	}
	return details
}

// overallScore averages the coerced per-criterion values, defaulting
// to 5.0 when nothing coerced, then clamps to [1,10] and rounds to
// one decimal.
func overallScore(details map[string]float64) float64 {
	score := 5.0
	if len(details) > 0 {
		sum := 0.0
		for _, v := range details {
			sum += v
		}
		score = sum / float64(len(details))
	}
	return round1(math.Max(1.0, math.Min(score, 10.0)))
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// coerceScore accepts a number or a string containing a number. Any
// value above 10 is scaled down by a factor of 10, guarding against a
// provider mistakenly answering on a 0-100 scale.
func coerceScore(value any) (float64, bool) {
	var num float64
	switch v := value.(type) {
	case float64:
		num = v
	case int:
		num = float64(v)
	case string:
		match := numberPattern.FindString(v)
		if match == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		num = parsed
	default:
		return 0, false
	}
	if num > 10 {
		num = num / 10.0
	}
	return num, true
}

// feedbackList accepts either a list or a delimited string, trying the
// Persian comma before the ASCII comma, and caps the result at three
// entries.
func feedbackList(value any) []string {
	var items []string
	switch v := value.(type) {
	case []any:
		for _, entry := range v {
			if s := strings.TrimSpace(stringField(entry)); s != "" {
				items = append(items, s)
			}
		}
	case string:
		sep := ""
		if strings.Contains(v, "،") {
			sep = "،"
		} else if strings.Contains(v, ",") {
			sep = ","
		}
		if sep == "" {
			if s := strings.TrimSpace(v); s != "" {
				items = append(items, s)
			}
		} else {
			for _, part := range strings.Split(v, sep) {
				if s := strings.TrimSpace(part); s != "" {
					items = append(items, s)
				}
			}
		}
	}
	if items == nil {
		items = []string{}
	}
	if len(items) > maxFeedbackItems {
		items = items[:maxFeedbackItems]
	}
	return items
}

func stringField(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truncateRunes shortens s to at most n runes; evaluator feedback is
// routinely non-ASCII, so byte slicing would split characters.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func randomBetween(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
