package report

import (
	"bytes"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/drmlgentry/Golden-Unification/domain/run"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
)

// HTMLEmitter renders the Markdown report as a complete HTML page.
type HTMLEmitter struct{}

func (HTMLEmitter) Format() string { return FormatHTML }

func (HTMLEmitter) Extension() string { return ".html" }

func (HTMLEmitter) Emit(w io.Writer, r *run.Report) error {
	var md bytes.Buffer
	if err := (MarkdownEmitter{}).Emit(&md, r); err != nil {
		return err
	}

	// Parsers carry state and cannot be reused across documents.
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Anchored lattice fit " + r.Manifest.RunID.String(),
		Flags: html.CommonFlags | html.CompletePage,
	})

	if _, err := w.Write(markdown.ToHTML(md.Bytes(), p, renderer)); err != nil {
		return errors.IOError("failed to write HTML report", err)
	}
	return nil
}
