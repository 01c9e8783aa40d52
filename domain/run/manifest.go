package run

import (
	"fmt"
	"strings"
	"time"

	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/drmlgentry/Golden-Unification/domain/lattice"
)

// RunManifest is everything needed to replay a run and audit its report.
// The search box is disclosed verbatim.
type RunManifest struct {
	RunID        core.RunID        `json:"run_id"`
	Box          lattice.SearchBox `json:"box"`
	FeasibleSize int               `json:"feasible_size"`
	Strategy     string            `json:"strategy"`
	Anchor       string            `json:"anchor"`
	Unit         string            `json:"unit"`
	DatasetHash  core.DatasetHash  `json:"dataset_hash"`
	Trials       int               `json:"trials"`
	Seed         int64             `json:"seed"`
	Sigmas       []float64         `json:"sigmas"`
	Tolerance    float64           `json:"tolerance"`
	CodeVersion  string            `json:"code_version"`
	Fingerprint  core.Hash         `json:"fingerprint"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewRunManifest fills in the run ID, timestamp and fingerprint.
func NewRunManifest(box lattice.SearchBox, feasibleSize int, strategy, anchor, unit string,
	datasetHash core.DatasetHash, trials int, seed int64, sigmas []float64, tolerance float64, codeVersion string) *RunManifest {

	m := &RunManifest{
		RunID:        core.NewRunID(),
		Box:          box,
		FeasibleSize: feasibleSize,
		Strategy:     strategy,
		Anchor:       anchor,
		Unit:         unit,
		DatasetHash:  datasetHash,
		Trials:       trials,
		Seed:         seed,
		Sigmas:       append([]float64(nil), sigmas...),
		Tolerance:    tolerance,
		CodeVersion:  codeVersion,
		CreatedAt:    time.Now().UTC(),
	}
	m.Fingerprint = m.ComputeFingerprint()
	return m
}

// ComputeFingerprint hashes the determinism parameters. Run ID, timestamp and
// search strategy are excluded: the strategies agree exactly.
func (m *RunManifest) ComputeFingerprint() core.Hash {
	sigmas := make([]string, len(m.Sigmas))
	for i, s := range m.Sigmas {
		sigmas[i] = fmt.Sprintf("%.17g", s)
	}
	data := fmt.Sprintf("box:%s|anchor:%s|unit:%s|dataset:%s|trials:%d|seed:%d|sigmas:%s|tol:%.17g|code:%s",
		m.Box, m.Anchor, m.Unit, m.DatasetHash, m.Trials, m.Seed, strings.Join(sigmas, ","), m.Tolerance, m.CodeVersion)
	return core.NewHash([]byte(data))
}

// Verify recomputes the fingerprint and reports a mismatch.
func (m *RunManifest) Verify() error {
	if got := m.ComputeFingerprint(); got != m.Fingerprint {
		return fmt.Errorf("%w: manifest fingerprint %s, recomputed %s", core.ErrHashMismatch, m.Fingerprint.Short(), got.Short())
	}
	return nil
}

// Validate checks if the manifest is complete
func (m *RunManifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("run_manifest", "run_id cannot be empty")
	}
	if err := m.Box.Validate(); err != nil {
		return err
	}
	if m.Anchor == "" {
		return core.NewValidationError("run_manifest", "anchor cannot be empty")
	}
	if m.Trials <= 0 {
		return core.ErrZeroTrials
	}
	if m.DatasetHash == "" {
		return core.NewValidationError("run_manifest", "dataset_hash cannot be empty")
	}
	return nil
}
