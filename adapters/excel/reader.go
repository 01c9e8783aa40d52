package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
	"github.com/drmlgentry/Golden-Unification/internal"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
)

// File types understood by DataReader.
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
	FileTypeYAML = "yaml"
)

// DataReader handles reading particle tables from CSV, Excel and YAML files
type DataReader struct {
	filePath    string
	fileType    string
	defaultUnit particle.Unit
	logger      *internal.Logger
}

// NewDataReader creates a reader; the file type follows the extension.
// defaultUnit applies to rows that do not name their own unit.
func NewDataReader(filePath string, defaultUnit particle.Unit) *DataReader {
	if defaultUnit == "" {
		defaultUnit = particle.UnitMeV
	}
	return &DataReader{
		filePath:    filePath,
		fileType:    DetectFileType(filePath),
		defaultUnit: defaultUnit,
		logger:      internal.NewDefaultLogger().WithComponent("DataReader"),
	}
}

// DetectFileType maps an extension to a file type, defaulting to xlsx
func DetectFileType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FileTypeCSV
	case ".yaml", ".yml":
		return FileTypeYAML
	default:
		return FileTypeXLSX
	}
}

// ReadDataset reads the file into a Dataset
func (r *DataReader) ReadDataset() (*Dataset, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}

	var (
		ds  *Dataset
		err error
	)
	switch r.fileType {
	case FileTypeCSV:
		ds, err = r.readCSVData()
	case FileTypeYAML:
		ds, err = r.readYAMLData()
	default:
		ds, err = r.readExcelData()
	}
	if err != nil {
		return nil, err
	}
	ds.Source = r.filePath
	return ds, nil
}

// ReadSet reads the file and builds a particle set. A non-empty anchor
// overrides the one named in the file.
func (r *DataReader) ReadSet(anchor string) (*particle.Set, error) {
	ds, err := r.ReadDataset()
	if err != nil {
		return nil, err
	}
	return ds.Set(anchor)
}

// Set builds a validated particle set from the dataset
func (d *Dataset) Set(anchor string) (*particle.Set, error) {
	if anchor == "" {
		anchor = d.Anchor
	}
	set, err := particle.NewSet(d.Particles, anchor)
	if err != nil {
		if core.IsConfigError(err) {
			return nil, errors.Config(err)
		}
		return nil, errors.Data(err)
	}
	return set, nil
}

// readExcelData reads Sheet1 of an xlsx workbook
func (r *DataReader) readExcelData() (*Dataset, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open Excel file", err)
	}
	defer f.Close()

	// Always use Sheet1
	rows, err := f.GetRows("Sheet1", excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Data(fmt.Errorf("failed to read Sheet1: %w", err))
	}
	r.logger.Debug("Sheet1 read in %.2fms (%d rows)", float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readCSVData reads a CSV file with a header row
func (r *DataReader) readCSVData() (*Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Data(fmt.Errorf("failed to read CSV file: %w", err))
	}
	return r.processRows(rows)
}

func (r *DataReader) readYAMLData() (*Dataset, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to read YAML file", err)
	}
	var raw yamlDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Data(fmt.Errorf("failed to parse YAML dataset: %w", err))
	}

	fileUnit := r.defaultUnit
	if raw.Unit != "" {
		if fileUnit, err = particle.ParseUnit(raw.Unit); err != nil {
			return nil, errors.Data(err)
		}
	}

	ds := &Dataset{Anchor: raw.Anchor, Unit: particle.UnitMeV}
	for _, p := range raw.Particles {
		unit := fileUnit
		if p.Unit != "" {
			if unit, err = particle.ParseUnit(p.Unit); err != nil {
				return nil, errors.Data(fmt.Errorf("particle %s: %w", p.Name, err))
			}
		}
		ds.Particles = append(ds.Particles, particle.Particle{Name: p.Name, Mass: p.Mass * unit.ToMeV()})
	}
	if len(ds.Particles) == 0 {
		return nil, errors.Data(core.ErrEmptySet)
	}
	return ds, nil
}

// processRows converts a header row plus data rows into a Dataset
func (r *DataReader) processRows(rows [][]string) (*Dataset, error) {
	if len(rows) < 2 {
		return nil, errors.DataInvalid("dataset must have a header row and at least one data row")
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{ColumnName, ColumnMass} {
		if _, ok := columns[required]; !ok {
			return nil, errors.DataInvalid(fmt.Sprintf("dataset is missing the %q column", required))
		}
	}

	ds := &Dataset{Unit: particle.UnitMeV}
	for i := 1; i < len(rows); i++ {
		row := r.rowData(rows[0], rows[i])
		if row[ColumnName] == "" && row[ColumnMass] == "" {
			continue
		}

		mass, err := strconv.ParseFloat(row[ColumnMass], 64)
		if err != nil {
			return nil, errors.DataInvalid(fmt.Sprintf("row %d: mass %q is not a number", i+1, row[ColumnMass]))
		}
		unit := r.defaultUnit
		if u := row[ColumnUnit]; u != "" {
			if unit, err = particle.ParseUnit(u); err != nil {
				return nil, errors.Data(fmt.Errorf("row %d: %w", i+1, err))
			}
		}
		ds.Particles = append(ds.Particles, particle.Particle{Name: row[ColumnName], Mass: mass * unit.ToMeV()})
	}

	r.logger.Debug("%s file processed (%d particles)", strings.ToUpper(r.fileType), len(ds.Particles))
	if len(ds.Particles) == 0 {
		return nil, errors.Data(core.ErrEmptySet)
	}
	return ds, nil
}

func (r *DataReader) rowData(headers, cells []string) RawRowData {
	row := make(RawRowData, len(headers))
	for j, cell := range cells {
		if j < len(headers) {
			row[strings.ToLower(strings.TrimSpace(headers[j]))] = strings.TrimSpace(cell)
		}
	}
	return row
}
