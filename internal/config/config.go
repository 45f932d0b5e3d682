package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"bootcomp/internal/bootstrap"
	"bootcomp/internal/data"
	"bootcomp/internal/model"
	"bootcomp/internal/selection"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration shape (YAML).
type Config struct {
	Data      DataConfig       `yaml:"data"`
	Bootstrap BootstrapConfig  `yaml:"bootstrap"`
	Selection *SelectionConfig `yaml:"selection,omitempty" validate:"omitempty"`
}

type DataConfig struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format" validate:"omitempty,oneof=csv txt xlsx xlsm json"`
	Sheet       string `yaml:"sheet"`
	ExcludeReps int    `yaml:"exclude_reps" validate:"gte=0"`
	// Header forces header detection on or off; unset means auto-detect.
	Header *bool `yaml:"header"`
}

type BootstrapConfig struct {
	NBoots     int     `yaml:"nboots" validate:"gt=0"`
	Confidence float64 `yaml:"confidence" validate:"gt=0,lt=100"`
	Correction string  `yaml:"correction"`
	Design     string  `yaml:"design"`
	Estimator  string  `yaml:"estimator"`
	Summary    string  `yaml:"summary"`
	Resampling string  `yaml:"resampling"`
	Mode       string  `yaml:"mode"`
	Workers    int     `yaml:"workers" validate:"gte=0"`
	Seed       *int64  `yaml:"seed"`
	Decimals   *int    `yaml:"decimals" validate:"omitempty,gte=0,lte=12"`
}

type SelectionConfig struct {
	KPIs        []KPIConfig        `yaml:"kpis" validate:"required,min=1,dive"`
	Constraints []ConstraintConfig `yaml:"constraints" validate:"dive"`
	Quality     QualityConfig      `yaml:"quality"`
}

type KPIConfig struct {
	Name      string `yaml:"name" validate:"required"`
	Path      string `yaml:"path" validate:"required"`
	Format    string `yaml:"format" validate:"omitempty,oneof=csv txt xlsx xlsm json"`
	Sheet     string `yaml:"sheet"`
	Objective string `yaml:"objective" validate:"omitempty,oneof=min max"`
}

type ConstraintConfig struct {
	KPI       string  `yaml:"kpi" validate:"required"`
	Threshold float64 `yaml:"threshold"`
	Gamma     float64 `yaml:"gamma" validate:"gte=0,lte=1"`
	Direction string  `yaml:"direction" validate:"required,oneof=lower upper"`
}

type QualityConfig struct {
	KPI        string  `yaml:"kpi" validate:"required"`
	Tolerance  float64 `yaml:"tolerance" validate:"gte=0"`
	Confidence float64 `yaml:"confidence" validate:"gte=0,lte=1"`
	Objective  string  `yaml:"objective" validate:"omitempty,oneof=min max"`
}

const (
	DefaultNBoots     = 1000
	DefaultConfidence = 95.0
	DefaultDecimals   = 2
)

var validate = validator.New()

// Default returns a configuration with every default filled in and no data.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the config and resolves its data paths, but does not
// apply defaults or validate. Useful for merging CLI flags before checking.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	c.Data.Path = resolvePath(dir, c.Data.Path)
	if c.Selection != nil {
		for i := range c.Selection.KPIs {
			c.Selection.KPIs[i].Path = resolvePath(dir, c.Selection.KPIs[i].Path)
		}
	}
	return &c, nil
}

// resolvePath prefers interpreting a relative path against the config file
// directory, falling back to the path as given (relative to cwd).
func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(dir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

// ApplyDefaults fills unset bootstrap fields. Tag fields left empty take
// their defaults in bootstrap.NewConfig.
func (c *Config) ApplyDefaults() {
	if c.Bootstrap.NBoots == 0 {
		c.Bootstrap.NBoots = DefaultNBoots
	}
	if c.Bootstrap.Confidence == 0 {
		c.Bootstrap.Confidence = DefaultConfidence
	}
	if c.Bootstrap.Decimals == nil {
		d := DefaultDecimals
		c.Bootstrap.Decimals = &d
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	if c.Data.Path == "" && c.Selection == nil {
		return errors.New("config invalid: data.path is required")
	}
	// Tag fields accept aliases, so they are checked by the same parser the
	// engine uses rather than a oneof list.
	if _, err := bootstrap.NewConfig(c.Bootstrap.ToSettings(), 1); err != nil {
		return fmt.Errorf("config invalid: bootstrap: %w", err)
	}
	if c.Selection != nil {
		if _, err := c.Selection.pipeline(nil); err != nil {
			return fmt.Errorf("config invalid: selection: %w", err)
		}
	}
	return nil
}

// DecimalsOrDefault is the reporting precision.
func (b BootstrapConfig) DecimalsOrDefault() int {
	if b.Decimals == nil {
		return DefaultDecimals
	}
	return *b.Decimals
}

func (b BootstrapConfig) ToSettings() bootstrap.Settings {
	return bootstrap.Settings{
		NBoots:     b.NBoots,
		Confidence: b.Confidence,
		Correction: bootstrap.Correction(b.Correction),
		Design:     bootstrap.Design(b.Design),
		Estimator:  bootstrap.EstimatorKind(b.Estimator),
		Summary:    bootstrap.SummaryKind(b.Summary),
		Resampling: bootstrap.ResamplingKind(b.Resampling),
		Mode:       bootstrap.Mode(b.Mode),
		Workers:    b.Workers,
	}
}

// NewRand returns the run's random generator: seeded when seed is set,
// time-seeded otherwise.
func (b BootstrapConfig) NewRand() *rand.Rand {
	if b.Seed != nil {
		return rand.New(rand.NewSource(*b.Seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewResampler builds the immutable bootstrap.Config for nscenarios and
// binds it to the run's generator.
func (b BootstrapConfig) NewResampler(nscenarios int) (*bootstrap.Resampler, error) {
	cfg, err := bootstrap.NewConfig(b.ToSettings(), nscenarios)
	if err != nil {
		return nil, err
	}
	return bootstrap.NewResampler(cfg, b.NewRand()), nil
}

// MergeBootstrap overlays non-zero fields from override onto base.
// This is used to apply CLI flags on top of a config file.
func MergeBootstrap(base, override BootstrapConfig) BootstrapConfig {
	out := base
	if override.NBoots != 0 {
		out.NBoots = override.NBoots
	}
	if override.Confidence != 0 {
		out.Confidence = override.Confidence
	}
	if override.Correction != "" {
		out.Correction = override.Correction
	}
	if override.Design != "" {
		out.Design = override.Design
	}
	if override.Estimator != "" {
		out.Estimator = override.Estimator
	}
	if override.Summary != "" {
		out.Summary = override.Summary
	}
	if override.Resampling != "" {
		out.Resampling = override.Resampling
	}
	if override.Mode != "" {
		out.Mode = override.Mode
	}
	if override.Workers != 0 {
		out.Workers = override.Workers
	}
	if override.Seed != nil {
		out.Seed = override.Seed
	}
	if override.Decimals != nil {
		out.Decimals = override.Decimals
	}
	return out
}

func (d DataConfig) Options() data.Options {
	opts := data.Options{ExcludeReps: d.ExcludeReps, Sheet: d.Sheet}
	if d.Header != nil {
		if *d.Header {
			opts.Header = data.HeaderPresent
		} else {
			opts.Header = data.HeaderAbsent
		}
	}
	return opts
}

// LoadScenarios reads the configured data file.
func (c *Config) LoadScenarios() (model.Scenarios, error) {
	if c.Data.Path == "" {
		return nil, errors.New("data.path is required")
	}
	return data.Load(c.Data.Path, c.Data.Format, c.Data.Options())
}

// Pipeline loads every KPI file and assembles the selection pipeline.
// exclude_reps and header settings from the data section apply to every KPI.
func (c *Config) Pipeline() (*selection.Pipeline, error) {
	if c.Selection == nil {
		return nil, errors.New("config has no selection section")
	}
	opts := c.Data.Options()
	return c.Selection.pipeline(func(k KPIConfig) (model.Scenarios, error) {
		o := opts
		o.Sheet = k.Sheet
		return data.Load(k.Path, k.Format, o)
	})
}

// pipeline converts the section; a nil load leaves KPI data empty, which is
// enough to check tags and references.
func (s *SelectionConfig) pipeline(load func(KPIConfig) (model.Scenarios, error)) (*selection.Pipeline, error) {
	p := &selection.Pipeline{}
	names := map[string]bool{}
	for _, k := range s.KPIs {
		if names[k.Name] {
			return nil, fmt.Errorf("%w: duplicate KPI %q", model.ErrInvalidArgument, k.Name)
		}
		names[k.Name] = true
		obj, err := selection.ParseObjective(k.Objective)
		if err != nil {
			return nil, err
		}
		kpi := selection.KPI{Name: k.Name, Objective: obj}
		if load != nil {
			if kpi.Data, err = load(k); err != nil {
				return nil, fmt.Errorf("KPI %q: %w", k.Name, err)
			}
		}
		p.KPIs = append(p.KPIs, kpi)
	}
	for i, cc := range s.Constraints {
		if !names[cc.KPI] {
			return nil, fmt.Errorf("%w: constraint %d references unknown KPI %q", model.ErrInvalidArgument, i+1, cc.KPI)
		}
		dir, err := selection.ParseDirection(cc.Direction)
		if err != nil {
			return nil, err
		}
		p.Constraints = append(p.Constraints, selection.ConstraintStage{
			KPI:        cc.KPI,
			Constraint: selection.Constraint{Threshold: cc.Threshold, Gamma: cc.Gamma, Direction: dir},
		})
	}
	if !names[s.Quality.KPI] {
		return nil, fmt.Errorf("%w: quality references unknown KPI %q", model.ErrInvalidArgument, s.Quality.KPI)
	}
	obj, err := selection.ParseObjective(s.Quality.Objective)
	if err != nil {
		return nil, err
	}
	p.Quality = selection.QualityStage{
		KPI:        s.Quality.KPI,
		Tolerance:  s.Quality.Tolerance,
		Confidence: s.Quality.Confidence,
		Objective:  obj,
	}
	return p, nil
}
