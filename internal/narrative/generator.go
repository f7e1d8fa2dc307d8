package narrative

import (
	"context"
	"fmt"
	"strings"

	analysis "heatpump-insight/internal/analysis/domain"
)

// MaxExplanationWords is the hard cap on narrative length.
const MaxExplanationWords = 50

// defaultMaxTokens bounds the collaborator reply; a 50-word answer
// fits comfortably.
const defaultMaxTokens = 120

// Narrative sources.
const (
	SourceModel    = "model"
	SourceTemplate = "template"
)

// Narrative is the generated plain-language explanation.
type Narrative struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	Source    string `json:"source"`
}

// Generator produces explanations through the injected completer,
// falling back to the fixed per-pattern templates when the completer
// is nil or errors. The fallback never calls the completer again.
type Generator struct {
	completer Completer
	maxTokens int
}

// GeneratorOption configures the generator.
type GeneratorOption func(*Generator)

// WithMaxTokens overrides the collaborator token budget.
func WithMaxTokens(budget int) GeneratorOption {
	return func(g *Generator) {
		if budget > 0 {
			g.maxTokens = budget
		}
	}
}

// NewGenerator constructs a generator. A nil completer is valid and
// yields template explanations only.
func NewGenerator(completer Completer, opts ...GeneratorOption) *Generator {
	g := &Generator{completer: completer, maxTokens: defaultMaxTokens}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Narrate builds the prompt, makes the single blocking collaborator
// call, and repairs or replaces the reply locally. It never fails.
func (g *Generator) Narrate(ctx context.Context, s analysis.TelemetrySnapshot, c analysis.PatternClassification, b analysis.BenefitEstimate) Narrative {
	if g != nil && g.completer != nil {
		reply, err := g.completer.Complete(ctx, BuildPrompt(s, c, b), g.maxTokens)
		if err == nil {
			text := enforceWordLimit(strings.TrimSpace(reply))
			return Narrative{Text: text, WordCount: countWords(text), Source: SourceModel}
		}
	}
	text := fallbackText(c.PatternType, s, b)
	return Narrative{Text: text, WordCount: countWords(text), Source: SourceTemplate}
}

// BuildPrompt renders the deterministic homeowner-explanation prompt.
func BuildPrompt(s analysis.TelemetrySnapshot, c analysis.PatternClassification, b analysis.BenefitEstimate) string {
	timestamp := s.Timestamp
	if timestamp == "" {
		timestamp = "today"
	}
	return fmt.Sprintf(`You're explaining a heat pump's behaviour to a homeowner with no technical knowledge.

SITUATION:
- What happened: %s
- Indoor temperature: %.1f°C (target: %.1f°C)
- Outdoor temperature: %.1f°C
- System efficiency: %.1f (3+ is good, 2-3 is okay, <2 is concerning)
- Time: %s

CONTEXT:
- Is this normal? %t
- Trigger: %s

BENEFITS (if applicable):
- Money saved: £%.2f
- Carbon avoided: %.1fkg CO2

YOUR TASK:
Write ONE explanation in UNDER %d WORDS that:
1. Explains WHY this happened in everyday language
2. Mentions the benefit if there is one (savings/carbon)
3. Is reassuring if normal, or flags if needs attention

RULES:
- NO technical jargon (don't say: COP, VPP, kWh, thermal mass, SPF, refrigerant)
- DO use everyday words (say: efficiency, heating schedule, electricity price, weather)
- Keep it conversational and friendly
- Be specific with numbers (e.g., "saved £1.20" not "saved money")

EXPLANATION (under %d words):`,
		strings.ReplaceAll(string(c.PatternType), "_", " "),
		s.Indoor(), s.Target(),
		s.Outdoor(),
		s.Efficiency(),
		timestamp,
		!c.IsAnomaly,
		c.Trigger,
		b.CostSavings,
		b.CarbonKg,
		MaxExplanationWords,
		MaxExplanationWords,
	)
}

// enforceWordLimit truncates over-long replies to the first 50 words
// and marks the cut. A local repair, never a re-query.
func enforceWordLimit(text string) string {
	words := strings.Fields(text)
	if len(words) <= MaxExplanationWords {
		return text
	}
	return strings.Join(words[:MaxExplanationWords], " ") + "..."
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
