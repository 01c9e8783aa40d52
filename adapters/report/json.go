package report

import (
	"encoding/json"
	"io"

	"github.com/drmlgentry/Golden-Unification/domain/run"
)

// JSONEmitter writes the report contract itself, for downstream tooling.
type JSONEmitter struct{}

func (JSONEmitter) Format() string { return FormatJSON }

func (JSONEmitter) Extension() string { return ".json" }

func (JSONEmitter) Emit(w io.Writer, r *run.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
