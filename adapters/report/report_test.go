package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drmlgentry/Golden-Unification/adapters/battery"
	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/domain/run"
	"github.com/drmlgentry/Golden-Unification/domain/stats"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
)

func sampleReport() *run.Report {
	manifest := run.NewRunManifest(lattice.DefaultSearchBox(), 4303, lattice.StrategyBinary,
		"electron", "MeV", core.DatasetHash("0123456789abcdef0123"), 2000, 1,
		[]float64{0.15, 0.5}, 0.05, "test")

	summary := func(p float64) stats.NullDistributionSummary {
		return stats.NullDistributionSummary{
			N: 2000, Min: 0.01, Median: 0.06, P16: 0.04, P84: 0.08, Max: 0.11,
			Observed: 0.07, AtOrBelow: int(p * 2000), EmpiricalP: p,
		}
	}

	return &run.Report{
		Manifest: manifest,
		Observed: run.SetFit{
			Anchor: "electron",
			Order:  []string{"electron", "tau_lepton"},
			PerParticle: map[string]lattice.FitResult{
				"electron":   {BestExponent: 0, Error: 0},
				"tau_lepton": {BestExponent: 68, Error: 0.0553},
			},
			MeanError: 0.02765,
		},
		Diagnostics: []run.MassDiagnostic{
			{Name: "electron", ObservedMass: 0.511, PredictedMass: 0.511, Multiplicity: 1},
			{Name: "tau_lepton", ObservedMass: 1776.86, PredictedMass: 1826.0, BestExponent: 68,
				Canonical: lattice.Triple{A: 1, B: 4, C: 0}, FracError: 0.0277, Error: 0.0553, Multiplicity: 2},
		},
		Nulls: []*run.NullDistribution{
			{Kind: battery.KindPermutation, StreamName: "permutation", Summary: summary(1), Degenerate: true,
				Caveat: "mean error is permutation invariant"},
			{Kind: battery.KindLogUniform, StreamName: "log_uniform", Summary: summary(0.25)},
			{Kind: battery.KindJitter, StreamName: "jitter:sigma=0.150000", Params: map[string]float64{"sigma": 0.15}, Summary: summary(0.5)},
			{Kind: battery.KindJitter, StreamName: "jitter:sigma=0.500000", Params: map[string]float64{"sigma": 0.5}, Summary: summary(0.125)},
		},
	}
}

func render(t *testing.T, e Emitter) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, e.Emit(&buf, sampleReport()))
	return buf.String()
}

func TestFormatSci(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		0.012345:  `1.234500\times 10^{-2}`,
		1:         `1.000000\times 10^{0}`,
		-250:      `-2.500000\times 10^{2}`,
		9.9999999: `1.000000\times 10^{1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatSci(in), "%v", in)
	}
}

func TestLaTeXEmitter(t *testing.T) {
	out := render(t, LaTeXEmitter{})

	assert.Contains(t, out, `\subsection{Null tests and empirical tail probabilities}`)
	assert.Contains(t, out, `\overline{\epsilon}_{\mathrm{obs}} = 2.765000\times 10^{-2}.`)
	assert.Contains(t, out, `$N_{\mathrm{null}}=2000$ trials (seed=1)`)
	assert.Contains(t, out, `a[-80,20], b[-40,40], c[-40,60]`)
	assert.Contains(t, out, `tau\_lepton & 68 & $(1,4,0)$`)
	assert.Contains(t, out, `$p_\mathrm{emp}$ & $0.25$ \\`)
	assert.Contains(t, out, `0.150 & $1.000000\times 10^{-2}$ & $6.000000\times 10^{-2}$ & $[4.000000\times 10^{-2},\,8.000000\times 10^{-2}]$ & $0.5$ \\`)
	assert.Contains(t, out, `0.500 &`)
	assert.Contains(t, out, `\paragraph{Permutation null.}`)
	assert.True(t, strings.HasSuffix(out, "% End of auto-generated block.\n"))
	assert.NotContains(t, out, "%!", "format verbs must all be consumed")
}

func TestMarkdownEmitter(t *testing.T) {
	out := render(t, MarkdownEmitter{})

	assert.Contains(t, out, "# Anchored lattice fit: null tests")
	assert.Contains(t, out, "| Search box | a[-80,20], b[-40,40], c[-40,60] |")
	assert.Contains(t, out, "| Dataset | `0123456789ab` (MeV) |")
	assert.Contains(t, out, "Mean error: **2.765000e-02**")
	assert.Contains(t, out, `| tau\_lepton | 1776.86 | 68 | (1,4,0) |`)
	assert.Contains(t, out, "multiple(q)")
	assert.Contains(t, out, "| log\\_uniform | - |")
	assert.Contains(t, out, "| jitter | 0.150 |")
	assert.Contains(t, out, "- **permutation**: mean error is permutation invariant")
	assert.NotContains(t, out, "%!")
}

func TestHTMLEmitter(t *testing.T) {
	out := render(t, HTMLEmitter{})

	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "Null distributions")
}

func TestJSONEmitter(t *testing.T) {
	out := render(t, JSONEmitter{})

	var decoded run.Report
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sampleReport().Observed, decoded.Observed)
	require.Len(t, decoded.Nulls, 4)
	assert.Equal(t, 0.5, decoded.Nulls[3].Sigma())
	assert.True(t, decoded.Nulls[0].Degenerate)
}

func TestNewEmitter(t *testing.T) {
	for _, f := range []string{"latex", "tex", "markdown", "md", "HTML", "json"} {
		_, err := NewEmitter(f)
		assert.NoError(t, err, f)
	}
	_, err := NewEmitter("pdf")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

func TestWriteReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	paths, err := WriteReports(dir, "null_tests", sampleReport(), []string{"latex", "markdown", "html", "json"})
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, ext := range []string{".tex", ".md", ".html", ".json"} {
		info, err := os.Stat(filepath.Join(dir, "null_tests"+ext))
		require.NoError(t, err, ext)
		assert.Greater(t, info.Size(), int64(0), ext)
	}

	_, err = WriteReports(dir, "x", sampleReport(), []string{"pdf"})
	assert.Error(t, err)
}
