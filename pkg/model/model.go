// Package model loads and evaluates the externally trained acceptance
// classifier. Models are read once and never mutated.
package model

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/lexdate/pkg/features"
)

// ErrIncompatibleModel is returned when a model artifact cannot be used
// with the feature vectors this package produces.
var ErrIncompatibleModel = errors.New("incompatible classifier model")

// Classifier scores feature rows. Implementations must be safe for
// concurrent use.
type Classifier interface {
	// Columns lists the expected feature names in row order.
	Columns() []string

	// PredictProba returns the positive-class probability for a row laid
	// out in Columns order.
	PredictProba(row []float64) (float64, error)
}

// FeatureConfigurer is implemented by classifiers that were trained with
// specific feature options.
type FeatureConfigurer interface {
	FeatureOptions() features.Options
}

// OptionsFor returns the feature options a classifier expects, falling back
// to the defaults.
func OptionsFor(c Classifier) features.Options {
	if configurer, ok := c.(FeatureConfigurer); ok {
		return configurer.FeatureOptions()
	}
	return features.DefaultOptions()
}

// Logistic is a binary logistic regression over named features.
type Logistic struct {
	Name         string           `yaml:"name" json:"name"`
	Features     []string         `yaml:"columns" json:"columns"`
	Coefficients []float64        `yaml:"coefficients" json:"coefficients"`
	Intercept    float64          `yaml:"intercept" json:"intercept"`
	Options      features.Options `yaml:"feature_options" json:"feature_options"`
}

// Validate checks that the model can score rows.
func (m *Logistic) Validate() error {
	if len(m.Features) == 0 {
		return fmt.Errorf("%w: no columns", ErrIncompatibleModel)
	}
	if len(m.Features) != len(m.Coefficients) {
		return fmt.Errorf("%w: %d columns but %d coefficients",
			ErrIncompatibleModel, len(m.Features), len(m.Coefficients))
	}
	seen := make(map[string]bool, len(m.Features))
	for _, column := range m.Features {
		if seen[column] {
			return fmt.Errorf("%w: duplicate column %q", ErrIncompatibleModel, column)
		}
		seen[column] = true
	}
	if m.Options.Window < 0 {
		return fmt.Errorf("%w: negative window", ErrIncompatibleModel)
	}
	return nil
}

// Columns returns the feature names in row order.
func (m *Logistic) Columns() []string {
	return append([]string{}, m.Features...)
}

// FeatureOptions returns the options the model was trained with.
func (m *Logistic) FeatureOptions() features.Options {
	return m.Options
}

// PredictProba returns the sigmoid of the linear score.
func (m *Logistic) PredictProba(row []float64) (float64, error) {
	if len(row) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: row has %d values, want %d",
			ErrIncompatibleModel, len(row), len(m.Coefficients))
	}
	score := m.Intercept
	for i, value := range row {
		score += m.Coefficients[i] * value
	}
	return 1 / (1 + math.Exp(-score)), nil
}

// Load reads a logistic model from a YAML or JSON artifact.
func Load(path string) (*Logistic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)))
}

// Parse decodes a model artifact. JSON is accepted through the YAML decoder.
func Parse(data []byte, ext string) (*Logistic, error) {
	var model Logistic
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("%w: parsing %s model: %v", ErrIncompatibleModel, strings.TrimPrefix(ext, "."), err)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	if model.Options.Window == 0 {
		model.Options.Window = features.DefaultWindow
	}
	return &model, nil
}
