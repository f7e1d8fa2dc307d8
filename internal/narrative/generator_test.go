package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	analysis "heatpump-insight/internal/analysis/domain"
)

type stubCompleter struct {
	reply string
	err   error

	calls   int
	prompt  string
	budgets []int
}

func (s *stubCompleter) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	s.calls++
	s.prompt = prompt
	s.budgets = append(s.budgets, maxTokens)
	return s.reply, s.err
}

func f64(v float64) *float64 { return &v }

func coldSnapshot() analysis.TelemetrySnapshot {
	return analysis.TelemetrySnapshot{
		IndoorTemp:         f64(19.8),
		OutdoorTemp:        f64(-5.0),
		COP:                f64(2.0),
		PowerConsumptionKW: f64(3.5),
		Timestamp:          "2024-01-20T08:00:00",
	}
}

func TestNarrateFromModel(t *testing.T) {
	completer := &stubCompleter{reply: "  Your heat pump worked a bit harder because it was freezing outside. That is completely normal.  "}
	generator := NewGenerator(completer)

	snapshot := coldSnapshot()
	classification := analysis.Classify(snapshot)
	got := generator.Narrate(context.Background(), snapshot, classification, analysis.BenefitEstimate{})

	if got.Source != SourceModel {
		t.Fatalf("expected model source, got %s", got.Source)
	}
	if strings.HasPrefix(got.Text, " ") || strings.HasSuffix(got.Text, " ") {
		t.Fatalf("reply not trimmed: %q", got.Text)
	}
	if got.WordCount != len(strings.Fields(got.Text)) {
		t.Fatalf("word count mismatch: %d vs %d", got.WordCount, len(strings.Fields(got.Text)))
	}
	if completer.calls != 1 {
		t.Fatalf("expected exactly one completion call, got %d", completer.calls)
	}
}

func TestNarrateTruncatesLongReply(t *testing.T) {
	long := strings.Repeat("word ", 80)
	completer := &stubCompleter{reply: long}
	generator := NewGenerator(completer)

	snapshot := coldSnapshot()
	got := generator.Narrate(context.Background(), snapshot, analysis.Classify(snapshot), analysis.BenefitEstimate{})

	if got.WordCount > MaxExplanationWords {
		t.Fatalf("expected at most %d words, got %d", MaxExplanationWords, got.WordCount)
	}
	if !strings.HasSuffix(got.Text, "...") {
		t.Fatalf("truncated text must end with ellipsis: %q", got.Text)
	}
	if completer.calls != 1 {
		t.Fatalf("truncation must be local, got %d calls", completer.calls)
	}
}

func TestNarrateFallbackOnError(t *testing.T) {
	completer := &stubCompleter{err: errors.New("upstream unavailable")}
	generator := NewGenerator(completer)

	snapshot := coldSnapshot()
	classification := analysis.PatternClassification{PatternType: analysis.PatternColdWeatherOperation}
	got := generator.Narrate(context.Background(), snapshot, classification, analysis.BenefitEstimate{})

	if got.Source != SourceTemplate {
		t.Fatalf("expected template source, got %s", got.Source)
	}
	want := "Your heat pump is using more electricity because outdoor temperature dropped to -5.0°C. This is normal winter behaviour - still cheaper than gas."
	if got.Text != want {
		t.Fatalf("expected %q, got %q", want, got.Text)
	}
	if completer.calls != 1 {
		t.Fatalf("fallback must not retry, got %d calls", completer.calls)
	}
}

func TestNarrateNilCompleter(t *testing.T) {
	generator := NewGenerator(nil)
	snapshot := coldSnapshot()
	classification := analysis.PatternClassification{PatternType: analysis.PatternTariffOptimization}
	benefit := analysis.BenefitEstimate{CostSavings: 1.26, CarbonKg: 0.8}
	got := generator.Narrate(context.Background(), snapshot, classification, benefit)

	if got.Source != SourceTemplate {
		t.Fatalf("expected template source, got %s", got.Source)
	}
	want := "Your smart tariff shifted heating to cheap-rate hours, saving you £1.26 today. The system ran efficiently despite -5.0°C outside."
	if got.Text != want {
		t.Fatalf("expected %q, got %q", want, got.Text)
	}
}

func TestNarrateDefaultTemplate(t *testing.T) {
	generator := NewGenerator(nil)
	snapshot := coldSnapshot()
	got := generator.Narrate(context.Background(), snapshot, analysis.PatternClassification{PatternType: analysis.PatternNormalOperation}, analysis.BenefitEstimate{})
	if got.Text != "Your heat pump is operating normally." {
		t.Fatalf("unexpected default narrative: %q", got.Text)
	}
}

func TestNarrateTokenBudget(t *testing.T) {
	completer := &stubCompleter{reply: "All good."}
	generator := NewGenerator(completer, WithMaxTokens(200))
	snapshot := coldSnapshot()
	generator.Narrate(context.Background(), snapshot, analysis.Classify(snapshot), analysis.BenefitEstimate{})
	if len(completer.budgets) != 1 || completer.budgets[0] != 200 {
		t.Fatalf("expected budget 200, got %v", completer.budgets)
	}
}

func TestBuildPrompt(t *testing.T) {
	snapshot := coldSnapshot()
	classification := analysis.Classify(snapshot)
	prompt := BuildPrompt(snapshot, classification, analysis.BenefitEstimate{CostSavings: 0.15, CarbonKg: 1.2})

	for _, fragment := range []string{
		"cold weather operation",
		"Indoor temperature: 19.8°C (target: 20.0°C)",
		"Money saved: £0.15",
		"Carbon avoided: 1.2kg CO2",
		"UNDER 50 WORDS",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestFallbackTemplatesStayWithinWordLimit(t *testing.T) {
	snapshot := coldSnapshot()
	snapshot.WeatherForecastTemp = f64(-8.0)
	benefit := analysis.BenefitEstimate{CostSavings: 1.26, CarbonKg: 0.8}
	for _, pattern := range analysis.AllPatterns {
		text := fallbackText(pattern, snapshot, benefit)
		if count := len(strings.Fields(text)); count > MaxExplanationWords {
			t.Fatalf("%s template has %d words", pattern, count)
		}
	}
}
