// Package report renders a run report for papers, notes and browsers.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/drmlgentry/Golden-Unification/domain/run"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
)

// Output formats.
const (
	FormatLaTeX    = "latex"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// Emitter renders a report in one format. Emitters only present the report;
// they never recompute results.
type Emitter interface {
	Format() string
	Extension() string
	Emit(w io.Writer, r *run.Report) error
}

// NewEmitter returns the emitter for a format name
func NewEmitter(format string) (Emitter, error) {
	switch strings.ToLower(format) {
	case FormatLaTeX, "tex":
		return LaTeXEmitter{}, nil
	case FormatMarkdown, "md":
		return MarkdownEmitter{}, nil
	case FormatHTML:
		return HTMLEmitter{}, nil
	case FormatJSON:
		return JSONEmitter{}, nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown report format %q", format))
	}
}

// WriteReports writes one file per format into dir, named base plus the
// emitter's extension, and returns the paths written.
func WriteReports(dir, base string, r *run.Report, formats []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.IOError("failed to create report directory", err)
	}

	var paths []string
	for _, format := range formats {
		e, err := NewEmitter(format)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, base+e.Extension())
		if err := writeFile(path, e, r); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, e Emitter, r *run.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.IOError(fmt.Sprintf("failed to create %s", path), err)
	}
	if err := e.Emit(f, r); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to render %s report", e.Format())
	}
	if err := f.Close(); err != nil {
		return errors.IOError(fmt.Sprintf("failed to close %s", path), err)
	}
	return nil
}

// FormatSci renders x as a LaTeX mantissa times a power of ten with six
// decimals, e.g. 1.234500\times 10^{-2}.
func FormatSci(x float64) string {
	if x == 0 {
		return "0"
	}
	exp := int(math.Floor(math.Log10(math.Abs(x))))
	mant := x / math.Pow(10, float64(exp))
	if math.Abs(mant) >= 9.9999995 {
		mant /= 10
		exp++
	}
	return fmt.Sprintf("%.6f\\times 10^{%d}", mant, exp)
}

// formatP prints an empirical p-value the way %g does with six digits.
func formatP(p float64) string {
	return fmt.Sprintf("%.6g", p)
}

func joinSigmas(sigmas []float64) string {
	parts := make([]string, len(sigmas))
	for i, s := range sigmas {
		parts[i] = fmt.Sprintf("%.3f", s)
	}
	return strings.Join(parts, ", ")
}

// errWriter latches the first write error so renderers can write unchecked.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) line(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format+"\n", args...)
}
