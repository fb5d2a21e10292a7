package llm

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// ModeWrite is the authoring mode; every other mode gets the short
// quick-reply token budget.
const (
	ModeWrite        = "write"
	quickReplyTokens = 150
)

// PromptInput carries everything the prompt builder needs to assemble
// a generation request.
type PromptInput struct {
	Prompt     string
	Persona    string
	Creativity int
	MaxTokens  int
	Mode       string
}

// BuildMessages assembles the system guidance and user message for a
// generation call. The system message always demands complete
// sentences; with a persona it additionally demands the persona be
// mentioned at least once.
func BuildMessages(in PromptInput) []*schema.Message {
	const completeness = "Make sure every sentence in the response is complete and nothing is left half-finished. Every paragraph must end with a period."

	var system string
	if in.Persona != "" {
		system = fmt.Sprintf("Your identity is '%s' and it must be mentioned at least once in the response.\n%s", in.Persona, completeness)
	} else {
		system = completeness
	}

	var user strings.Builder
	fmt.Fprintf(&user, "The generated text must be complete and around %d words. ", in.MaxTokens)
	user.WriteString("Every sentence must carry a complete thought and must not be cut off mid-way. ")
	if mentionsVerse(in.Prompt) {
		user.WriteString("The verses must be complete. ")
	}
	user.WriteString(StyleDirective(in.Creativity))
	user.WriteString("\n\n")
	if in.Persona != "" {
		fmt.Fprintf(&user, "With the identity '%s', %s", in.Persona, in.Prompt)
	} else {
		user.WriteString(in.Prompt)
	}

	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user.String()),
	}
}

// StyleDirective maps a 0-100 creativity level to one of four style
// buckets. Bucket boundaries are inclusive on the upper bound.
func StyleDirective(creativity int) string {
	switch {
	case creativity <= 25:
		return "Use simple, plain sentences."
	case creativity <= 50:
		return "The text should be mildly literary and gentle, but easy to follow."
	case creativity <= 75:
		return "The text should be literary and imaginative."
	default:
		return "The text should be highly literary and poetic."
	}
}

// Temperature derives the sampling temperature from the creativity
// level, with a floor of 0.1.
func Temperature(creativity int) float64 {
	t := float64(creativity) / 100
	if t < 0.1 {
		return 0.1
	}
	return t
}

// TokenBudget returns the downstream token budget: the caller's length
// budget in authoring mode, a fixed short budget otherwise.
func TokenBudget(mode string, maxTokens int) int {
	if mode == ModeWrite {
		return maxTokens
	}
	return quickReplyTokens
}

// mentionsVerse detects prompts that ask for poetry, in either the
// platform's primary language or English.
func mentionsVerse(prompt string) bool {
	lower := strings.ToLower(prompt)
	return strings.Contains(prompt, "شعر") ||
		strings.Contains(lower, "poem") ||
		strings.Contains(lower, "verse")
}
