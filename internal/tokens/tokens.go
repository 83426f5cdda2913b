// Package tokens estimates how many vocabulary units a language model
// consumes when ingesting aggregated compact output, and derives cost
// and context-window utilization from a static per-model rate table.
package tokens

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"fastcraft/internal/fcerrors"
)

// Profile describes one supported vocabulary/model.
type Profile struct {
	Name string

	// Encoding names a tiktoken BPE vocabulary. Empty means the
	// profile counts heuristically via CharsPerToken instead.
	Encoding      string
	CharsPerToken float64

	// ContextWindow is the model's context size in tokens.
	ContextWindow int

	// USDPerMTok is the input price per million tokens.
	USDPerMTok float64
}

// profiles is the closed set of supported model identifiers.
var profiles = map[string]Profile{
	"gpt-4": {
		Name:          "gpt-4",
		Encoding:      "cl100k_base",
		ContextWindow: 8192,
		USDPerMTok:    30.0,
	},
	"gpt-3.5-turbo": {
		Name:          "gpt-3.5-turbo",
		Encoding:      "cl100k_base",
		ContextWindow: 16385,
		USDPerMTok:    0.50,
	},
	// tiktoken carries no Anthropic vocabulary; the Claude profile
	// estimates with a characters-per-token ratio.
	"claude": {
		Name:          "claude",
		CharsPerToken: 3.6,
		ContextWindow: 200000,
		USDPerMTok:    3.0,
	},
}

// Report holds the derived metrics for one run.
type Report struct {
	Model     string
	Chars     int
	Tokens    int
	CostUSD   float64
	WindowPct float64
}

// String formats the report for the console.
func (r *Report) String() string {
	return fmt.Sprintf(
		"Model: %s\nCharacters: %d\nTokens: %d\nEstimated cost: $%.4f\nContext window: %.1f%%",
		r.Model, r.Chars, r.Tokens, r.CostUSD, r.WindowPct)
}

// Supported returns the supported model identifiers, sorted.
func Supported() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a model identifier eagerly, before any tokenization
// or file work begins.
func Validate(model string) error {
	if _, ok := profiles[model]; !ok {
		return fcerrors.InvalidArgumentf(
			"unsupported token model %q (supported: %s)",
			model, strings.Join(Supported(), ", "))
	}
	return nil
}

// Count tokenizes text against the named profile and derives the
// report metrics.
func Count(text, model string) (*Report, error) {
	profile, ok := profiles[model]
	if !ok {
		return nil, Validate(model)
	}

	var count int
	if profile.Encoding != "" {
		enc, err := tiktoken.GetEncoding(profile.Encoding)
		if err != nil {
			return nil, fcerrors.Wrapf(err, "load encoding %s", profile.Encoding)
		}
		count = len(enc.Encode(text, nil, nil))
	} else {
		count = heuristicCount(text, profile.CharsPerToken)
	}

	return &Report{
		Model:     profile.Name,
		Chars:     len(text),
		Tokens:    count,
		CostUSD:   float64(count) / 1_000_000 * profile.USDPerMTok,
		WindowPct: float64(count) / float64(profile.ContextWindow) * 100,
	}, nil
}

// heuristicCount rounds len(text)/charsPerToken up.
func heuristicCount(text string, charsPerToken float64) int {
	if text == "" {
		return 0
	}
	n := int(float64(len(text))/charsPerToken + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}
