package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "scout.dev/pkg/scout/internal/model"
)

// ReportFileName is the name of the report file inside the output
// directory.
const ReportFileName = "report.yaml"

// ReportStore persists and retrieves resolution reports.
type ReportStore interface {
	Save(dir m.Path, report m.Report) error
	Load(dir m.Path) (m.Report, error)
}

// LocalReportStore stores reports as YAML files on the local
// filesystem.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// Save writes the report to dir/report.yaml, creating dir if needed.
func (s *LocalReportStore) Save(dir m.Path, report m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	target := filepath.Join(string(dir), ReportFileName)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// Load reads the report from dir/report.yaml.
func (s *LocalReportStore) Load(dir m.Path) (m.Report, error) {
	target := filepath.Join(string(dir), ReportFileName)

	data, err := os.ReadFile(target)
	if err != nil {
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("parse report %s: %w", target, err)
	}

	return report, nil
}
