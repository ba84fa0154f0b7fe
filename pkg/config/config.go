package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/statforge/gostan/pkg/errors"
	"github.com/statforge/gostan/pkg/stanargs"
)

// Settings is the YAML schema of a run settings file:
//
//	run:
//	  output_dir: ./out
//	  runs: 4
//	  data_file: d.json
//	optimize:
//	  algorithm: lbfgs
//	  iter: 2000
//	  tol_obj: 1e-8
//	logging:
//	  level: DEBUG
//
// The run and logging sections are statically typed and validated with
// struct tags. The optimize section stays dynamic: the engine wrapper's
// legality rules distinguish wrong-type from out-of-domain values, and that
// distinction only exists before the values are bound to Go types.
type Settings struct {
	Run      RunSettings            `yaml:"run" validate:"required"`
	Optimize map[string]interface{} `yaml:"optimize"`
	Logging  LoggingSettings        `yaml:"logging"`
}

// RunSettings carries the method-independent run parameters.
type RunSettings struct {
	OutputDir string `yaml:"output_dir" validate:"required"`
	Runs      int    `yaml:"runs" validate:"required,min=1"`
	DataFile  string `yaml:"data_file" validate:"omitempty"`
	InitFile  string `yaml:"init_file" validate:"omitempty"`
	Seed      *int   `yaml:"seed" validate:"omitempty"`
}

// LoggingSettings selects the log level for the run.
type LoggingSettings struct {
	Level string `yaml:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR FATAL"`
}

// Load reads and validates a settings file. The optimize section is only
// checked for shape here; OptimizeConfig performs the per-field legality
// checks when the caller asks for the typed configuration.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ConfigLoadFailed, "failed to read settings file"),
			errors.Fields{"path": path},
		)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ConfigLoadFailed, "failed to parse settings file"),
			errors.Fields{"path": path},
		)
	}

	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateSettings(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// OptimizeConfig converts the dynamic optimize section into a validated
// stanargs.OptimizeConfig. Values are type-checked against their declared
// kinds first; a non-numeric iter is a wrong-type error, not a domain error.
func (s *Settings) OptimizeConfig() (*stanargs.OptimizeConfig, error) {
	opts, err := optimizeOptions(s.Optimize)
	if err != nil {
		return nil, err
	}
	return stanargs.NewOptimizeConfig(opts...)
}
