// Package export writes stat table snapshots to disk, as CSV rows for
// spreadsheet analysis and as YAML documents for full-fidelity restore.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tally/stat"
)

// Row is one stat rendered for CSV output.
type Row struct {
	Step  int    `csv:"step"`
	Key   string `csv:"key"`
	Kind  string `csv:"kind"`
	Value string `csv:"value"`
}

// Snapshot renders t as rows in sorted key order, labeled with the given
// step. Unregistered kinds fall back to their Go type in the kind column.
func Snapshot(step int, t *stat.Table) []Row {
	rows := make([]Row, 0, t.Len())
	for _, key := range t.Keys() {
		v, ok := t.GetKey(key)
		if !ok {
			continue
		}
		kind, ok := stat.TagOf(v)
		if !ok {
			kind = fmt.Sprintf("%T", v)
		}
		rows = append(rows, Row{
			Step:  step,
			Key:   key,
			Kind:  kind,
			Value: fmt.Sprint(v),
		})
	}
	return rows
}

// OutputManager handles structured stat output for one run directory. A
// nil manager is valid and discards everything (output disabled).
type OutputManager struct {
	dir       string
	statsFile *os.File

	statsHeaderWritten bool
}

// NewOutputManager creates an output manager rooted at dir and opens
// stats.csv. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	statsPath := filepath.Join(dir, "stats.csv")
	f, err := os.Create(statsPath)
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}

	return &OutputManager{dir: dir, statsFile: f}, nil
}

// WriteSnapshot appends t's rows to stats.csv, labeled with step.
func (om *OutputManager) WriteSnapshot(step int, t *stat.Table) error {
	if om == nil {
		return nil
	}

	records := Snapshot(step, t)
	if len(records) == 0 {
		return nil
	}

	if !om.statsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return nil
}

// WriteTableYAML writes t as a YAML document named name under the output
// directory. Tables written this way restore with ReadTableYAML.
func (om *OutputManager) WriteTableYAML(name string, t *stat.Table) error {
	if om == nil {
		return nil
	}

	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling table: %w", err)
	}

	path := filepath.Join(om.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}

// ReadTableYAML loads a table written with WriteTableYAML.
func ReadTableYAML(path string) (*stat.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	t := stat.NewTable()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", path, err)
	}
	return t, nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes open output files.
func (om *OutputManager) Close() error {
	if om == nil || om.statsFile == nil {
		return nil
	}
	return om.statsFile.Close()
}
