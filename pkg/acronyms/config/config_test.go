package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/acronyms/pkg/acronyms/internalerr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Store.Driver != DriverMemory {
		t.Errorf("Default driver should be memory, got %q", cfg.Store.Driver)
	}
	if cfg.Report.Top != 20 {
		t.Errorf("Default top should be 20, got %d", cfg.Report.Top)
	}
	if cfg.Workers != 1 {
		t.Errorf("Default workers should be 1, got %d", cfg.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acronyms.yaml")
	content := `inputs:
  - path: corpus.txt
  - path: docs.jsonl
    format: jsonl
  - path: page.html
    format: html
store:
  path: runs.db
report:
  top: 5
  json: true
workers: 4
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Inputs) != 3 {
		t.Fatalf("Expected 3 inputs, got %d", len(cfg.Inputs))
	}
	if cfg.Inputs[0].Format != FormatLines {
		t.Errorf("Missing format should default to lines, got %q", cfg.Inputs[0].Format)
	}
	if cfg.Inputs[1].Field != "text" {
		t.Errorf("JSONL field should default to text, got %q", cfg.Inputs[1].Field)
	}
	if cfg.Inputs[2].Field != "" {
		t.Errorf("HTML input should have no field, got %q", cfg.Inputs[2].Field)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("Store path should imply sqlite, got %q", cfg.Store.Driver)
	}
	if cfg.Report.Top != 5 || !cfg.Report.JSON {
		t.Errorf("Report config not loaded: %+v", cfg.Report)
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Loaded config should validate: %v", err)
	}
}

func TestLoadNonExistent(t *testing.T) {
	if _, err := Load("/nonexistent/acronyms.yaml"); err == nil {
		t.Error("Should error on nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("inputs: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Should error on invalid YAML")
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]*Config{
		"no path":         {Inputs: []Input{{Format: FormatLines}}},
		"bad format":      {Inputs: []Input{{Path: "x", Format: "pdf"}}},
		"bad driver":      {Store: StoreConfig{Driver: "postgres"}},
		"sqlite no path":  {Store: StoreConfig{Driver: DriverSQLite}},
		"negative top":    {Report: ReportConfig{Top: -1}},
		"negative worker": {Workers: -2},
	}

	for name, cfg := range cases {
		cfg.ApplyDefaults()
		err := cfg.Validate()
		if !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}
