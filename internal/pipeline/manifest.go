package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/KaramelBytes/agentreg-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// Manifest records what a run read and wrote.
type Manifest struct {
	RunID        string             `yaml:"run_id"`
	CreatedAt    time.Time          `yaml:"created_at"`
	Input        string             `yaml:"input"`
	Rows         int                `yaml:"rows"`
	Dropped      []string           `yaml:"dropped_columns,omitempty"`
	Response     string             `yaml:"response"`
	Coefficients map[string]float64 `yaml:"coefficients"`
	RSquared     float64            `yaml:"r_squared"`
	AdjRSquared  float64            `yaml:"adj_r_squared"`
	Artifacts    []Artifact         `yaml:"artifacts"`
}

// NewManifest summarizes a finished run.
func NewManifest(r *Result, input string, at time.Time) *Manifest {
	m := &Manifest{
		RunID:     r.RunID,
		CreatedAt: at,
		Input:     input,
		Artifacts: r.Artifacts,
	}
	if r.Table != nil {
		m.Rows = r.Table.Rows
		m.Dropped = r.Table.Dropped
	}
	if r.Fit != nil {
		m.Response = r.Fit.Response
		m.RSquared = r.Fit.RSquared
		m.AdjRSquared = r.Fit.AdjRSquared
		m.Coefficients = make(map[string]float64, len(r.Fit.Names))
		for _, n := range r.Fit.Names {
			if v, ok := r.Fit.Coefficient(n); ok {
				m.Coefficients[n] = v
			}
		}
	}
	return m
}

// WriteManifest stores m as YAML at path.
func WriteManifest(path string, m *Manifest) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
