// Package risk scores text and URLs against keyword rule tables and
// turns the accumulated score into a safety verdict for a child of a
// given age.
//
// Scoring is cumulative and deterministic: every table entry is
// checked independently by naive substring containment, every hit
// adds its category weight, and there is no early exit or
// deduplication. A profile's stored maturity_level label is derived
// from the same age brackets but is informational only; the evaluator
// always recomputes the threshold from the raw age it is given.
package risk

import (
	"fmt"
	"strings"
)

// Verdict is the evaluator's output for a single piece of content.
type Verdict struct {
	Safe       bool     `json:"is_safe"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// Maturity labels shared by the age thresholds and profile metadata.
const (
	MaturityStrict   = "strict"
	MaturityModerate = "moderate"
	MaturityLenient  = "lenient"
)

// urlThreshold is fixed: URLs are scored without age context.
const urlThreshold = 30

// ThresholdForAge maps a viewer age to the risk score threshold at or
// above which content is unsafe.
func ThresholdForAge(age int) int {
	switch {
	case age <= 8:
		return 20
	case age <= 12:
		return 35
	default:
		return 50
	}
}

// MaturityForAge returns the maturity label for the same age brackets
// ThresholdForAge uses.
func MaturityForAge(age int) string {
	switch {
	case age <= 8:
		return MaturityStrict
	case age <= 12:
		return MaturityModerate
	default:
		return MaturityLenient
	}
}

// Evaluator scores content against an immutable rule table. It holds
// no mutable state and is safe for concurrent use.
type Evaluator struct {
	table *RuleTable
}

// New creates an Evaluator. A nil table selects the built-in defaults.
func New(table *RuleTable) *Evaluator {
	if table == nil {
		table = DefaultTable()
	}
	return &Evaluator{table: table}
}

// ScoreText scores free text for a viewer of the given age.
func (e *Evaluator) ScoreText(text string, age int) Verdict {
	lower := strings.ToLower(text)
	reasons := []string{}
	score := 0

	for _, term := range e.table.Explicit.Terms {
		if strings.Contains(lower, term) {
			reasons = append(reasons, fmt.Sprintf("Explicit content: '%s'", term))
			score += e.table.Explicit.Weight
		}
	}

	for _, term := range e.table.Slang.Terms {
		if strings.Contains(lower, term) {
			reasons = append(reasons, fmt.Sprintf("Inappropriate slang: '%s'", term))
			score += e.table.Slang.Weight
		}
	}

	// Symbols are matched against the original text: emoji carry no
	// case, and lowercasing can alter multi-byte sequences.
	for _, sym := range e.table.Symbols.Terms {
		if strings.Contains(text, sym) {
			reasons = append(reasons, fmt.Sprintf("Suggestive emoji: '%s'", sym))
			score += e.table.Symbols.Weight
		}
	}

	for _, term := range e.table.Violence.Terms {
		if strings.Contains(lower, term) {
			reasons = append(reasons, fmt.Sprintf("Violence-related: '%s'", term))
			score += e.table.Violence.Weight
		}
	}

	return Verdict{
		Safe:       score < ThresholdForAge(age),
		Confidence: confidence(score),
		Reasons:    reasons,
	}
}

// ScoreURL scores a URL. The threshold is fixed and never age-scaled:
// a single adult-domain hit always yields an unsafe verdict.
func (e *Evaluator) ScoreURL(rawURL string) Verdict {
	lower := strings.ToLower(rawURL)
	reasons := []string{}
	score := 0

	for _, domain := range e.table.AdultDomains.Terms {
		if strings.Contains(lower, domain) {
			reasons = append(reasons, "Adult website: "+domain)
			score += e.table.AdultDomains.Weight
		}
	}

	for _, term := range e.table.Explicit.Terms {
		if strings.Contains(lower, term) {
			reasons = append(reasons, fmt.Sprintf("Explicit keyword in URL: '%s'", term))
			score += e.table.URLKeywordWeight
		}
	}

	return Verdict{
		Safe:       score < urlThreshold,
		Confidence: confidence(score),
		Reasons:    reasons,
	}
}

// ImageStubReason is the reason string of the fixed image verdict,
// kept distinct so callers and tests can detect the stub.
const ImageStubReason = "Image analysis not yet implemented - marked as safe"

// ImageStub returns the fixed verdict for image content. Image
// analysis is unimplemented; callers must short-circuit image-kind
// requests here instead of invoking the scorers.
func ImageStub() Verdict {
	return Verdict{
		Safe:       true,
		Confidence: 0.5,
		Reasons:    []string{ImageStubReason},
	}
}

func confidence(score int) float64 {
	c := float64(score) / 100.0
	if c > 1.0 {
		return 1.0
	}
	return c
}
