package models

import "strings"

// Criteria toggles the rubric dimensions an evaluation pass scores.
// Only active dimensions are sent to the evaluator and only their
// scores contribute to the overall score.
type Criteria struct {
	Relevance    bool `json:"relevance"`
	Coherence    bool `json:"coherence"`
	Creativity   bool `json:"creativity"`
	Grammar      bool `json:"grammar"`
	Engagement   bool `json:"engagement"`
	Completeness bool `json:"completeness"`
}

// CriteriaOrder is the stable ordering used when enumerating rubric
// dimensions in prompts and score maps.
var CriteriaOrder = []string{"relevance", "coherence", "creativity", "grammar", "engagement", "completeness"}

// DefaultCriteria returns the rubric subset enabled when the caller
// does not toggle anything explicitly.
func DefaultCriteria() Criteria {
	return Criteria{
		Relevance:    true,
		Coherence:    true,
		Grammar:      true,
		Completeness: true,
	}
}

// Active returns the names of the enabled dimensions in stable order.
func (c Criteria) Active() []string {
	var active []string
	for _, name := range CriteriaOrder {
		if c.IsActive(name) {
			active = append(active, name)
		}
	}
	return active
}

// IsActive reports whether the named dimension is enabled.
func (c Criteria) IsActive(name string) bool {
	switch name {
	case "relevance":
		return c.Relevance
	case "coherence":
		return c.Coherence
	case "creativity":
		return c.Creativity
	case "grammar":
		return c.Grammar
	case "engagement":
		return c.Engagement
	case "completeness":
		return c.Completeness
	}
	return false
}

// AnyActive reports whether at least one dimension is enabled.
func (c Criteria) AnyActive() bool {
	return len(c.Active()) > 0
}

// EvaluationResult is one scoring pass over a generated text. A result
// with ParseError set carries a placeholder score and must never be
// treated as a trustworthy signal by quality gates.
type EvaluationResult struct {
	ScoreOverall       float64            `json:"score_overall"`
	ScoreDetails       map[string]float64 `json:"score_details"`
	Issues             []string           `json:"issues"`
	Suggestions        []string           `json:"suggestions"`
	RewriteHint        string             `json:"rewrite_hint"`
	AnalysisSummary    string             `json:"analysis_summary"`
	ParseError         bool               `json:"parse_error"`
	EvaluationDisabled bool               `json:"evaluation_disabled,omitempty"`
	RawResponse        string             `json:"raw_response,omitempty"`
}

// GenerateRequest is the normalized input surface for starting a new
// generation. Normalize applies the documented defaults and clamps.
type GenerateRequest struct {
	Prompt           string   `json:"prompt"`
	UseBio           bool     `json:"use_bio"`
	BioText          string   `json:"bio_text"`
	Mode             string   `json:"mode"`
	Creativity       int      `json:"creativity"`
	MaxTokens        int      `json:"max_tokens"`
	GenerateImage    bool     `json:"generate_image"`
	ImageSize        string   `json:"img_size"`
	EnableEvaluation bool     `json:"enable_evaluation"`
	EvaluationModel  string   `json:"evaluation_model"`
	QualityThreshold int      `json:"quality_threshold"`
	MaxRetryAttempts int      `json:"max_retry_attempts"`
	Criteria         Criteria `json:"evaluation_criteria"`
}

// Normalize trims the prompt and clamps numeric fields to their
// documented ranges, substituting defaults for missing values.
func (r *GenerateRequest) Normalize() {
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.Mode == "" {
		r.Mode = "write"
	}
	r.Creativity = clampInt(r.Creativity, 0, 100)
	if r.MaxTokens == 0 {
		r.MaxTokens = 200
	}
	r.MaxTokens = clampInt(r.MaxTokens, 50, 4000)
	if r.QualityThreshold == 0 {
		r.QualityThreshold = 7
	}
	r.QualityThreshold = clampInt(r.QualityThreshold, 1, 10)
	if r.MaxRetryAttempts == 0 {
		r.MaxRetryAttempts = 3
	}
	r.MaxRetryAttempts = clampInt(r.MaxRetryAttempts, 1, 10)
	if r.EvaluationModel == "" {
		r.EvaluationModel = "auto"
	}
}

// GenerateResponse is the reply to a start-generation request. The
// evaluation block is present only when evaluation was enabled.
type GenerateResponse struct {
	Response          string            `json:"response"`
	ImageURL          string            `json:"image_url"`
	GenerationID      string            `json:"generation_id"`
	EvaluationEnabled bool              `json:"evaluation_enabled"`
	Remaining         int               `json:"remaining"`
	EvaluationModel   string            `json:"evaluation_model,omitempty"`
	QualityThreshold  float64           `json:"quality_threshold,omitempty"`
	FinalScore        *float64          `json:"final_score,omitempty"`
	ParseError        *bool             `json:"parse_error,omitempty"`
	Evaluation        *EvaluationResult `json:"evaluation,omitempty"`
	Criteria          *Criteria         `json:"evaluation_criteria,omitempty"`
}

// RegenerateResponse is the reply to a continue-generation request.
// Policy declines come back with OK=false and a human-readable reason;
// they are expected outcomes, not errors.
type RegenerateResponse struct {
	OK                bool              `json:"ok"`
	Message           string            `json:"message,omitempty"`
	Response          string            `json:"response,omitempty"`
	EvaluationEnabled bool              `json:"evaluation_enabled,omitempty"`
	EvaluationModel   string            `json:"evaluation_model,omitempty"`
	QualityThreshold  float64           `json:"quality_threshold,omitempty"`
	Remaining         int               `json:"remaining"`
	FinalScore        float64           `json:"final_score,omitempty"`
	ParseError        bool              `json:"parse_error,omitempty"`
	Evaluation        *EvaluationResult `json:"evaluation,omitempty"`
	Criteria          *Criteria         `json:"evaluation_criteria,omitempty"`
	TemperatureUsed   float64           `json:"temperature_used,omitempty"`
	RegenerationCount int               `json:"regeneration_count,omitempty"`
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
