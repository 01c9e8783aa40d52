package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/drmlgentry/Golden-Unification/domain/run"
)

// MarkdownEmitter writes a GitHub-flavoured Markdown summary.
type MarkdownEmitter struct{}

func (MarkdownEmitter) Format() string { return FormatMarkdown }

func (MarkdownEmitter) Extension() string { return ".md" }

var markdownEscaper = strings.NewReplacer(`|`, `\|`, `*`, `\*`, `_`, `\_`)

func (MarkdownEmitter) Emit(w io.Writer, r *run.Report) error {
	ew := &errWriter{w: w}
	m := r.Manifest

	ew.line("# Anchored lattice fit: null tests")
	ew.line("")
	ew.line("## Run")
	ew.line("")
	ew.line("| Field | Value |")
	ew.line("|---|---|")
	ew.line("| Run ID | `%s` |", m.RunID)
	ew.line("| Fingerprint | `%s` |", m.Fingerprint.Short())
	ew.line("| Search box | %s |", m.Box)
	ew.line("| Feasible exponents | %d |", m.FeasibleSize)
	ew.line("| Search strategy | %s |", m.Strategy)
	ew.line("| Anchor | %s |", markdownEscaper.Replace(m.Anchor))
	ew.line("| Dataset | `%s` (%s) |", shortHash(m.DatasetHash.String()), m.Unit)
	ew.line("| Trials | %d |", m.Trials)
	ew.line("| Seed | %d |", m.Seed)
	ew.line("| Jitter σ | %s |", joinSigmas(m.Sigmas))
	ew.line("| Multiplicity tolerance | %g |", m.Tolerance)
	ew.line("")

	ew.line("## Observed fit")
	ew.line("")
	ew.line("Mean error: **%.6e**", r.Observed.MeanError)
	ew.line("")
	if len(r.Diagnostics) > 0 {
		ew.line("| Particle | Observed mass | Best q | (a,b,c) | Predicted mass | Frac. error | ε | Note |")
		ew.line("|---|---:|---:|---|---:|---:|---:|---|")
		for _, d := range r.Diagnostics {
			ew.line("| %s | %.6g | %d | %s | %.6g | %+.3e | %.6e | %s |",
				markdownEscaper.Replace(d.Name), d.ObservedMass, d.BestExponent, d.Canonical,
				d.PredictedMass, d.FracError, d.Error, d.Note())
		}
	} else {
		ew.line("| Particle | Best q | ε |")
		ew.line("|---|---:|---:|")
		for _, name := range r.Observed.Order {
			fit := r.Observed.PerParticle[name]
			ew.line("| %s | %d | %.6e |", markdownEscaper.Replace(name), fit.BestExponent, fit.Error)
		}
	}
	ew.line("")

	ew.line("## Null distributions")
	ew.line("")
	ew.line("| Ensemble | σ | min | median | [16%%, 84%%] | max | p_emp |")
	ew.line("|---|---:|---:|---:|---|---:|---:|")
	var notes []string
	for _, n := range r.Nulls {
		s := n.Summary
		sigma := "-"
		if _, ok := n.Params["sigma"]; ok {
			sigma = fmt.Sprintf("%.3f", n.Sigma())
		}
		ew.line("| %s | %s | %.6e | %.6e | [%.6e, %.6e] | %.6e | %s |",
			markdownEscaper.Replace(n.Kind), sigma, s.Min, s.Median, s.P16, s.P84, s.Max, formatP(s.EmpiricalP))
		if n.Caveat != "" {
			notes = append(notes, fmt.Sprintf("- **%s**: %s", markdownEscaper.Replace(n.Kind), n.Caveat))
		}
	}
	if len(notes) > 0 {
		ew.line("")
		for _, note := range notes {
			ew.line("%s", note)
		}
	}
	return ew.err
}

func shortHash(s string) string {
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
