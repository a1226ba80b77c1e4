// SPDX-License-Identifier: MIT

// Package config loads the YAML run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/chokepoint/exposure"
	"github.com/katalvlaran/chokepoint/iotable"
	"github.com/katalvlaran/chokepoint/matrix"
	"github.com/katalvlaran/chokepoint/mrio"
	"github.com/katalvlaran/chokepoint/route"
	"github.com/katalvlaran/chokepoint/shipping"
)

// ErrInvalid wraps struct validation failures.
var ErrInvalid = errors.New("config: invalid")

var validate = validator.New()

// Config is the complete run configuration.
type Config struct {
	Table      TableConfig      `yaml:"table"`
	Network    NetworkConfig    `yaml:"network"`
	Canal      CanalConfig      `yaml:"canal"`
	Validation ValidationConfig `yaml:"validation"`
	Exposure   ExposureConfig   `yaml:"exposure"`
	Route      RouteConfig      `yaml:"route"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TableConfig locates the structural table and declares its layout.
type TableConfig struct {
	Path         string `yaml:"path" validate:"required"`
	Countries    int    `yaml:"countries" validate:"gt=0"`
	Industries   int    `yaml:"industries" validate:"gt=0"`
	FinalUse     int    `yaml:"final_use" validate:"gt=0"`
	ValueAdded   int    `yaml:"value_added" validate:"gt=0"`
	TaxRows      int    `yaml:"tax_rows" validate:"gte=0,ltfield=ValueAdded"`
	Separator    string `yaml:"separator"`
	CountryWidth int    `yaml:"country_width" validate:"gt=0"`
}

// Dims returns the declared table dimensions.
func (t TableConfig) Dims() iotable.Dims {
	return iotable.Dims{
		Countries:  t.Countries,
		Industries: t.Industries,
		FinalUse:   t.FinalUse,
		ValueAdded: t.ValueAdded,
		TaxRows:    t.TaxRows,
	}
}

// NetworkConfig locates the port registry and edge list.
type NetworkConfig struct {
	Ports           string `yaml:"ports" validate:"required"`
	Edges           string `yaml:"edges" validate:"required"`
	Chokepoint      string `yaml:"chokepoint" validate:"required"`
	Key             string `yaml:"key" validate:"oneof=export import throughput"`
	Workers         int    `yaml:"workers" validate:"gte=0"`
	MergeDuplicates bool   `yaml:"merge_duplicates"`
}

// ThroughputKey returns Key as a typed metric name.
func (n NetworkConfig) ThroughputKey() shipping.ThroughputKey {
	return shipping.ThroughputKey(n.Key)
}

// CanalConfig enables the canal flow-share report when Edges is set.
type CanalConfig struct {
	Name  string `yaml:"name" validate:"required_with=Edges"`
	Edges string `yaml:"edges"`
}

// ValidationConfig holds the numeric tolerances.
type ValidationConfig struct {
	ConsistencyTolerance float64 `yaml:"consistency_tolerance" validate:"gte=0"`
	IdentityTolerance    float64 `yaml:"identity_tolerance" validate:"gt=0"`
	PivotTolerance       float64 `yaml:"pivot_tolerance" validate:"gt=0"`
}

// ExposureConfig sets the disruption proration.
type ExposureConfig struct {
	DisruptionDays float64 `yaml:"disruption_days" validate:"gt=0"`
	YearDays       float64 `yaml:"year_days" validate:"gt=0"`
}

// Params converts to exposure.Params.
func (e ExposureConfig) Params() exposure.Params {
	return exposure.Params{DisruptionDays: e.DisruptionDays, YearDays: e.YearDays}
}

// RouteConfig enables the route projection when Origin is set.
// MaxDistance and ClosedAbove are off when zero.
type RouteConfig struct {
	Origin       string  `yaml:"origin"`
	SegmentLimit float64 `yaml:"segment_limit" validate:"gt=0"`
	MaxDistance  float64 `yaml:"max_distance" validate:"gte=0"`
	ClosedAbove  float64 `yaml:"closed_above" validate:"gte=0"`
}

// Options returns the route options for this section.
func (r RouteConfig) Options() []route.Option {
	return []route.Option{
		route.WithSegmentLimit(r.SegmentLimit),
		route.WithMaxDistance(r.MaxDistance),
		route.WithClosedAbove(r.ClosedAbove),
	}
}

// OutputConfig names where results go.
type OutputConfig struct {
	Dir         string `yaml:"dir" validate:"required"`
	MetricsFile string `yaml:"metrics_file"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns a configuration with every optional field filled in.
// Table.Path, the network files and the table dimensions must still be set.
func Default() *Config {
	p := exposure.DefaultParams()

	return &Config{
		Table: TableConfig{
			TaxRows:      1,
			Separator:    iotable.DefaultSeparator,
			CountryWidth: iotable.DefaultCountryWidth,
		},
		Network: NetworkConfig{
			Chokepoint:      "maritime2927",
			Key:             string(shipping.KeyImport),
			MergeDuplicates: true,
		},
		Validation: ValidationConfig{
			ConsistencyTolerance: mrio.DefaultConsistencyTolerance,
			IdentityTolerance:    1e-3,
			PivotTolerance:       matrix.DefaultPivotTolerance,
		},
		Exposure: ExposureConfig{DisruptionDays: p.DisruptionDays, YearDays: p.YearDays},
		Route:    RouteConfig{SegmentLimit: route.DefaultSegmentLimit},
		Output:   OutputConfig{Dir: "out"},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}
