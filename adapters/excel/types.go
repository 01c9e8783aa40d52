package excel

import (
	"github.com/drmlgentry/Golden-Unification/domain/particle"
)

// Column headers recognised in tabular datasets (case-insensitive).
const (
	ColumnName = "name"
	ColumnMass = "mass"
	ColumnUnit = "unit"
)

// RawRowData represents a row of raw tabular data as header → cell pairs
type RawRowData map[string]string

// Dataset is a particle table as read from disk, with masses converted to MeV.
type Dataset struct {
	Source    string
	Anchor    string
	Unit      particle.Unit
	Particles []particle.Particle
}

// yamlDataset is the on-disk YAML layout.
type yamlDataset struct {
	Anchor    string         `yaml:"anchor,omitempty"`
	Unit      string         `yaml:"unit,omitempty"`
	Particles []yamlParticle `yaml:"particles"`
}

type yamlParticle struct {
	Name string  `yaml:"name"`
	Mass float64 `yaml:"mass"`
	Unit string  `yaml:"unit,omitempty"`
}
