package catalog

import (
	"fmt"
	"os"

	"github.com/avforge/configurator/pkg/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a component catalog.
type catalogFile struct {
	Components []models.Component `yaml:"components"`
}

// tablesFile is the on-disk shape of the feature and constraint tables.
type tablesFile struct {
	Features    map[string][]string `yaml:"features"`
	Constraints []Constraint        `yaml:"constraints"`
}

// Parse decodes a YAML catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return New(f.Components)
}

// LoadFile reads and validates a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("components", c.Count()).Msg("Catalog: loaded from file")
	return c, nil
}

// ParseTables decodes a YAML document holding the feature and constraint tables.
func ParseTables(data []byte) (*FeatureTable, *ConstraintTable, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("unmarshal tables: %w", err)
	}
	features, err := NewFeatureTable(f.Features)
	if err != nil {
		return nil, nil, err
	}
	constraints, err := NewConstraintTable(f.Constraints, features)
	if err != nil {
		return nil, nil, err
	}
	return features, constraints, nil
}

// LoadTablesFile reads the feature and constraint tables from a YAML file.
func LoadTablesFile(path string) (*FeatureTable, *ConstraintTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read tables: %w", err)
	}
	features, constraints, err := ParseTables(data)
	if err != nil {
		return nil, nil, err
	}
	log.Info().
		Str("path", path).
		Int("features", len(features.Names())).
		Int("constraints", len(constraints.All())).
		Msg("Catalog: loaded feature tables")
	return features, constraints, nil
}
