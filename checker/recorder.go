package checker

import (
	"fmt"
	"strings"
	"time"

	"github.com/papermoonio/sidecar-tests-substrate/check"
	"github.com/papermoonio/sidecar-tests-substrate/document"
)

// recorder collects the results and notes of one check group.
// It is owned by a single goroutine.
type recorder struct {
	group   string
	started time.Time

	results []check.Result
	notes   []string
}

func newRecorder(group string) *recorder {
	return &recorder{
		group:   group,
		started: time.Now(),
	}
}

// compare records expected (the node's value) against actual (the sidecar's value).
func (r *recorder) compare(name string, expected, actual any, rule check.Rule) {
	result := check.Compare(name, expected, actual, rule)
	if result.Kind == check.KindMismatch {
		result.Message = fmt.Sprintf("Mismatch - Sidecar: %s, RPC: %s", formatValue(actual), formatValue(expected))
	}
	r.add(result)
}

// assert records a check that has no sidecar counterpart.
// message describes the failure and is only kept when ok is false.
func (r *recorder) assert(name string, ok bool, expected, actual any, message string) {
	result := check.Result{
		Name:     name,
		Passed:   ok,
		Expected: expected,
		Actual:   actual,
		Rule:     "assert",
	}
	if !ok {
		result.Kind = check.KindMismatch
		result.Message = fmt.Sprintf("%s: %s", check.KindMismatch, message)
	}
	r.add(result)
}

func (r *recorder) fail(name string, err error) {
	r.add(check.FromError(name, err))
}

func (r *recorder) notef(format string, args ...any) {
	r.notes = append(r.notes, fmt.Sprintf(format, args...))
}

func (r *recorder) add(result check.Result) {
	r.results = append(r.results, result.WithGroup(r.group))
}

// finish stamps every result with the time the group took.
func (r *recorder) finish() []check.Result {
	elapsed := time.Since(r.started)
	out := make([]check.Result, len(r.results))
	for i, result := range r.results {
		out[i] = result.WithDuration(elapsed)
	}
	return out
}

// field pairs a node value with the sidecar value it must match.
type field struct {
	name    string
	rule    check.Rule
	chain   func() (any, error)
	sidecar func(document.Document) (any, error)
}

// compareFields records one result per field. A failed fetch fails every
// field that depends on it, so the number of results is the same on every run.
func (r *recorder) compareFields(doc document.Document, sidecarErr error, fields []field) {
	for _, f := range fields {
		if sidecarErr != nil {
			r.fail(f.name, sidecarErr)
			continue
		}

		expected, err := f.chain()
		if err != nil {
			r.fail(f.name, err)
			continue
		}

		actual, err := f.sidecar(doc)
		if err != nil {
			r.fail(f.name, err)
			continue
		}

		r.compare(f.name, expected, actual, f.rule)
	}
}

/* ---------------------------- Field accessors ---------------------------- */

func chainValue(v any, err error) func() (any, error) {
	return func() (any, error) { return v, err }
}

func stringAt(path string) func(document.Document) (any, error) {
	return func(doc document.Document) (any, error) { return doc.String(path) }
}

func uintAt(path string) func(document.Document) (any, error) {
	return func(doc document.Document) (any, error) { return doc.Uint(path) }
}

func boolAt(path string) func(document.Document) (any, error) {
	return func(doc document.Document) (any, error) { return doc.Bool(path) }
}

// optionalUintAt yields nil when the field is absent.
func optionalUintAt(path string) func(document.Document) (any, error) {
	return func(doc document.Document) (any, error) {
		if !doc.Has(path) {
			return nil, nil
		}
		return doc.Uint(path)
	}
}

// optionalListAt yields an empty list when the field is absent.
func optionalListAt(path string) func(document.Document) (any, error) {
	return func(doc document.Document) (any, error) {
		if !doc.Has(path) {
			return []string{}, nil
		}
		return doc.StringList(path)
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "<none>"
	case string:
		if t == "" {
			return `""`
		}
		return t
	case []string:
		return "[" + strings.Join(t, ", ") + "]"
	default:
		return fmt.Sprintf("%v", t)
	}
}
