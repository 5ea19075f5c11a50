package check

import (
	"fmt"
	"time"
)

// Result is the outcome of one field-level comparison.
//
// Results are values: once built by Compare or FromError they are only
// copied, never mutated. Passed always equals the verdict of Rule on
// Expected and Actual, or false when the values could not be obtained.
type Result struct {
	// Group is the check group that produced the result, e.g. "Head Block".
	Group string `json:"group,omitempty"`
	// Name is the compared field, e.g. "Parent Hash".
	Name string `json:"name"`

	Passed bool `json:"passed"`

	// Expected is the chain RPC value; Actual is the sidecar value.
	// Chain-only diagnostics use Expected for the target value.
	Expected any `json:"expected,omitempty"`
	Actual   any `json:"actual,omitempty"`

	Message string `json:"message,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
	Rule    string `json:"rule,omitempty"`

	Duration time.Duration `json:"duration,omitempty"`
}

// Compare applies rule to expected and actual and records the verdict.
func Compare(name string, expected, actual any, rule Rule) Result {
	result := Result{
		Name:     name,
		Expected: expected,
		Actual:   actual,
		Rule:     rule.Name(),
	}

	equal, err := rule.Equal(expected, actual)
	switch {
	case err != nil:
		result.Kind = KindOf(err)
		result.Message = fmt.Sprintf("%s: %v", result.Kind, err)
	case !equal:
		result.Kind = KindMismatch
		result.Message = fmt.Sprintf("%s: expected %v, actual %v", KindMismatch, expected, actual)
	default:
		result.Passed = true
	}

	return result
}

// FromError records a check that could not be compared because fetching
// one of its values failed. The message always starts with the error kind.
func FromError(name string, err error) Result {
	kind := KindOf(err)
	return Result{
		Name:    name,
		Kind:    kind,
		Message: fmt.Sprintf("%s: %v", kind, err),
	}
}

// WithGroup returns a copy of r attributed to group.
func (r Result) WithGroup(group string) Result {
	r.Group = group
	return r
}

// WithDuration returns a copy of r carrying the time spent producing it.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// FullName joins the group and field name for display.
func (r Result) FullName() string {
	if r.Group == "" {
		return r.Name
	}
	return r.Group + " / " + r.Name
}

// Err returns the failure as an error wrapping the kind sentinel, or nil if the check passed.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}

	switch r.Kind {
	case KindNetwork:
		return fmt.Errorf("%s: %w", r.FullName(), withMessage(ErrNetwork, r.Message))
	case KindTimeout:
		return fmt.Errorf("%s: %w", r.FullName(), withMessage(ErrTimeout, r.Message))
	case KindParse:
		return fmt.Errorf("%s: %w", r.FullName(), withMessage(ErrParse, r.Message))
	case KindMismatch:
		return fmt.Errorf("%s: %w", r.FullName(), withMessage(ErrMismatch, r.Message))
	default:
		return fmt.Errorf("%s: %s", r.FullName(), r.Message)
	}
}

func withMessage(sentinel error, msg string) error {
	return fmt.Errorf("%w (%s)", sentinel, msg)
}
