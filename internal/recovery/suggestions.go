// Package recovery turns generation and profile errors into actionable hints.
package recovery

import (
	"errors"
	"sort"

	"github.com/acolita/genpass/internal/entropy"
	"github.com/acolita/genpass/internal/generator"
	"github.com/acolita/genpass/internal/profile"
)

// Suggestion is a recovery hint for a failed request.
type Suggestion struct {
	Error       string   // Short description of the detected problem
	Category    string   // Problem category (length, bounds, alphabet, profile, system)
	Options     []string // Options worth changing, as profile keys (e.g. "min_length")
	Explanation string   // What to change
	Confidence  float64  // Confidence that following the hint resolves the error
}

// Analyzer maps errors to suggestions.
type Analyzer struct {
	rules []recoveryRule
}

type recoveryRule struct {
	name    string
	target  error
	suggest func() *Suggestion
}

// NewAnalyzer creates an analyzer with the default rules.
func NewAnalyzer() *Analyzer {
	return &Analyzer{rules: defaultRules()}
}

// Analyze returns the suggestions matching err, most confident first.
func (a *Analyzer) Analyze(err error) []*Suggestion {
	if err == nil {
		return nil
	}

	var suggestions []*Suggestion
	for _, rule := range a.rules {
		if errors.Is(err, rule.target) {
			suggestions = append(suggestions, rule.suggest())
		}
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions
}

// Best returns the most confident suggestion for err, or nil.
func (a *Analyzer) Best(err error) *Suggestion {
	if s := a.Analyze(err); len(s) > 0 {
		return s[0]
	}
	return nil
}

func defaultRules() []recoveryRule {
	return []recoveryRule{
		{
			name:   "length_conflict",
			target: profile.ErrLengthConflict,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "Exact length combined with a length range",
					Category:    "length",
					Options:     []string{"length", "min_length", "max_length"},
					Explanation: "Give either an exact length or a min/max length range, not both.",
					Confidence:  0.95,
				}
			},
		},
		{
			name:   "minimums_exceed_length",
			target: generator.ErrMinimumsExceedLength,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "Required characters do not fit",
					Category:    "length",
					Options:     []string{"length", "max_length", "min_numeric", "min_lower", "min_upper", "min_symbol"},
					Explanation: "Raise the password length or lower the per-class minimums so their sum fits.",
					Confidence:  0.9,
				}
			},
		},
		{
			name:   "maximums_below_length",
			target: generator.ErrMaximumsBelowLength,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "Allowed characters cannot fill the password",
					Category:    "length",
					Options:     []string{"length", "min_length", "max_numeric", "max_lower", "max_upper", "max_symbol"},
					Explanation: "Shorten the password or raise the per-class maximums so they add up to at least its length.",
					Confidence:  0.9,
				}
			},
		},
		{
			name:   "invalid_bounds",
			target: generator.ErrInvalidBounds,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "Minimum above maximum",
					Category:    "bounds",
					Options:     []string{"min_numeric", "max_numeric", "min_lower", "max_lower", "min_upper", "max_upper", "min_symbol", "max_symbol"},
					Explanation: "Each class minimum must be less than or equal to its maximum.",
					Confidence:  0.85,
				}
			},
		},
		{
			name:   "invalid_length_bounds",
			target: generator.ErrLengthBoundsInvalid,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "Length range is empty",
					Category:    "length",
					Options:     []string{"min_length", "max_length"},
					Explanation: "The minimum length must not exceed the maximum length. A max_length below 16 needs a matching min_length.",
					Confidence:  0.85,
				}
			},
		},
		{
			name:   "empty_alphabet",
			target: generator.ErrEmptyAlphabet,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "A required class has no characters",
					Category:    "alphabet",
					Options:     []string{"symbols", "max_symbol", "exclude_ambiguous"},
					Explanation: "Provide a non-empty symbol set, or set max_symbol to 0 to disable symbols.",
					Confidence:  0.8,
				}
			},
		},
		{
			name:   "infeasible",
			target: generator.ErrInfeasibleConstraints,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "Constraints cannot be satisfied",
					Category:    "bounds",
					Options:     []string{"length", "min_length", "max_length"},
					Explanation: "Relax the per-class bounds or the length range.",
					Confidence:  0.6,
				}
			},
		},
		{
			name:   "profile_not_found",
			target: profile.ErrNotFound,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "Profile does not exist",
					Category:    "profile",
					Explanation: "List the saved profiles to check the name.",
					Confidence:  0.9,
				}
			},
		},
		{
			name:   "invalid_profile_name",
			target: profile.ErrInvalidName,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "Invalid profile name",
					Category:    "profile",
					Explanation: "Profile names must not contain path separators or start with a dot.",
					Confidence:  0.9,
				}
			},
		},
		{
			name:   "entropy_unavailable",
			target: entropy.ErrEntropyUnavailable,
			suggest: func() *Suggestion {
				return &Suggestion{
					Error:       "Secure random source unavailable",
					Category:    "system",
					Explanation: "The operating system random source failed. No password was produced; retry, and check the system if it persists.",
					Confidence:  0.5,
				}
			},
		},
	}
}
