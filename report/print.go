package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const separator = "================================================================================"

// PrintOptions controls console rendering.
type PrintOptions struct {
	// Color enables ANSI colours.
	Color bool
	// Verbose prints passing checks too, not only failures.
	Verbose bool
}

type palette struct {
	pass, fail, header, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		pass:   color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
		header: color.New(color.FgCyan, color.Bold),
		dim:    color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.pass, p.fail, p.header, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print renders the results, the per-group verdicts and the summary line to w.
func (r *Report) Print(w io.Writer, opts PrintOptions) {
	p := newPalette(opts.Color)

	currentGroup := ""
	for _, result := range r.Results {
		if result.Group != currentGroup {
			currentGroup = result.Group
			p.header.Fprintf(w, "%s\n", currentGroup)
		}

		switch {
		case !result.Passed:
			p.fail.Fprintf(w, "  ✗ %s: %s\n", result.Name, result.Message)
		case opts.Verbose:
			p.pass.Fprintf(w, "  ✓ %s: %s\n", result.Name, formatValue(result.Expected))
		}
	}

	if len(r.Notes) > 0 {
		fmt.Fprintln(w)
		for _, note := range r.Notes {
			p.dim.Fprintf(w, "  %s\n", note)
		}
	}

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "Test Results Summary")
	fmt.Fprintln(w, separator)

	groups := r.Groups()
	groupsPassed := 0
	for _, group := range groups {
		if group.OK() {
			groupsPassed++
			p.pass.Fprintf(w, "✓ %s: PASS (%d/%d)\n", group.Name, group.Passed, group.Total)
		} else {
			p.fail.Fprintf(w, "✗ %s: FAIL (%d/%d)\n", group.Name, group.Passed, group.Total)
		}
	}

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Groups Passed: %d/%d\n", groupsPassed, len(groups))

	summary := p.pass
	if !r.AllPassed() {
		summary = p.fail
	}
	summary.Fprintf(w, "Tests Passed: %d/%d (%.1f%%)\n", r.Passed(), r.Total(), r.SuccessRate())
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
