package services

import "strings"

// DefaultEvalModel is the evaluator used when the caller asks for
// "auto" or for anything not on the allow-list.
const DefaultEvalModel = "gpt-4o"

// evalModelPriority is the allow-list of vetted evaluator models.
// Identifiers outside this list are never forwarded to the provider.
var evalModelPriority = []string{
	"gpt-4o",
	"gpt-4-turbo-preview",
	"gpt-4",
	"gpt-4o-mini",
}

// evalModelAliases maps short names to their canonical identifiers.
var evalModelAliases = map[string]string{
	"gpt-4-turbo": "gpt-4-turbo-preview",
}

// ResolveEvalModel maps a user-requested evaluator identifier to a
// supported model. It never fails: empty, "auto", and unrecognized
// input all resolve to the default.
func ResolveEvalModel(requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" || requested == "auto" {
		return DefaultEvalModel
	}
	if canonical, ok := evalModelAliases[requested]; ok {
		requested = canonical
	}
	for _, id := range evalModelPriority {
		if requested == id {
			return id
		}
	}
	return DefaultEvalModel
}
