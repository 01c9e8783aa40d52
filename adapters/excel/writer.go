package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/drmlgentry/Golden-Unification/internal/errors"
)

// WriteDataset writes ds to path in the format implied by its extension.
// Masses are written in MeV at full precision so a read back is exact.
func WriteDataset(path string, ds *Dataset) error {
	switch DetectFileType(path) {
	case FileTypeCSV:
		return writeCSV(path, ds)
	case FileTypeYAML:
		return writeYAML(path, ds)
	default:
		return writeExcel(path, ds)
	}
}

func header() []string {
	return []string{ColumnName, ColumnMass, ColumnUnit}
}

func formatMass(m float64) string {
	return strconv.FormatFloat(m, 'g', -1, 64)
}

func writeExcel(path string, ds *Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	head := header()
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return errors.IOError("failed to write Excel header", err)
	}
	for i, p := range ds.Particles {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.IOError("failed to address Excel row", err)
		}
		row := []interface{}{p.Name, p.Mass, "MeV"}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.IOError(fmt.Sprintf("failed to write Excel row %d", i+2), err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.IOError("failed to save Excel file", err)
	}
	return nil
}

func writeCSV(path string, ds *Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.IOError("failed to create CSV file", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header()); err != nil {
		return errors.IOError("failed to write CSV header", err)
	}
	for _, p := range ds.Particles {
		if err := w.Write([]string{p.Name, formatMass(p.Mass), "MeV"}); err != nil {
			return errors.IOError("failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.IOError("failed to flush CSV file", err)
	}
	return nil
}

func writeYAML(path string, ds *Dataset) error {
	out := yamlDataset{Anchor: ds.Anchor, Unit: "MeV"}
	for _, p := range ds.Particles {
		out.Particles = append(out.Particles, yamlParticle{Name: p.Name, Mass: p.Mass})
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return errors.IOError("failed to encode YAML dataset", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IOError("failed to write YAML file", err)
	}
	return nil
}
