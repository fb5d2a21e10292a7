package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Evaluator models are instructed to answer with bare JSON but
// routinely wrap it in prose or markdown fences anyway. ExtractJSON
// runs an ordered chain of recovery strategies and returns the first
// object that parses; callers get nil instead of an error when every
// strategy fails.

var (
	jsonFencePattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	anyFencePattern  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
	bracePattern     = regexp.MustCompile(`(?s)\{.*\}`)
)

type extractStrategy func(text string) (string, bool)

var extractStrategies = []extractStrategy{
	wholeText,
	fencedBlock(jsonFencePattern),
	fencedBlock(anyFencePattern),
	braceSpan,
	firstToLastBrace,
}

// ExtractJSON recovers a JSON object from free-form model output.
// Returns nil when no strategy yields a parseable object.
func ExtractJSON(text string) map[string]any {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, strategy := range extractStrategies {
		candidate, ok := strategy(text)
		if !ok {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &obj); err == nil {
			return obj
		}
	}
	return nil
}

func wholeText(text string) (string, bool) {
	return text, true
}

func fencedBlock(pattern *regexp.Regexp) extractStrategy {
	return func(text string) (string, bool) {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			return "", false
		}
		return match[1], true
	}
}

// braceSpan matches the outermost {...} span greedily, which tolerates
// nested objects inside the evaluator payload.
func braceSpan(text string) (string, bool) {
	match := bracePattern.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}

func firstToLastBrace(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
