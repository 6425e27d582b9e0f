package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/wdc/internal/validation"
)

// Config is the root configuration for wdc, stored in ~/.wdc/config.yaml.
type Config struct {
	// DataDir holds the monthly task files. Defaults to the config directory.
	DataDir string        `yaml:"data_dir"`
	Workday WorkdayConfig `yaml:"workday"`
	Output  OutputConfig  `yaml:"output"`
}

// WorkdayConfig holds the defaults of the workday calculator.
type WorkdayConfig struct {
	// Duration is the nominal working time as hhmm.
	Duration string `yaml:"duration" validate:"required,hhmm"`
	// BreakMinutes is added on top of Duration.
	BreakMinutes int `yaml:"break_minutes" validate:"gte=0,lte=720"`
}

// OutputConfig controls terminal rendering.
type OutputConfig struct {
	Color bool `yaml:"color"`
}

const (
	// DefaultWorkdayDuration is a standard eight hour day.
	DefaultWorkdayDuration = "0800"
	// DefaultBreakMinutes is the default lunch break.
	DefaultBreakMinutes = 30

	homeEnv    = "WDC_HOME"
	dataDirEnv = "WDC_DATA_DIR"
	fileName   = "config.yaml"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig(home string) Config {
	return Config{
		DataDir: home,
		Workday: WorkdayConfig{
			Duration:     DefaultWorkdayDuration,
			BreakMinutes: DefaultBreakMinutes,
		},
		Output: OutputConfig{Color: true},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# wdc configuration
#
# All settings are optional; the defaults shown below are used when a value
# is missing.

# Directory holding one <YYYYMM>.csv file per month.
# Leave empty to use the directory of this file.
# Can be overridden with the WDC_DATA_DIR environment variable.
data_dir: ""

workday:
  # Nominal working time per day as hhmm, used by: wdc calc
  duration: "0800"
  # Break in minutes added on top of the working time.
  break_minutes: 30

output:
  # Colour tables and messages. Set to false for plain output.
  color: true
`

// HomeDir returns the wdc directory: $WDC_HOME or ~/.wdc.
func HomeDir() (string, error) {
	if v := os.Getenv(homeEnv); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".wdc"), nil
}

// Load reads the configuration at path, or <HomeDir>/config.yaml when path is
// empty, creating it with annotated defaults on first run.
func Load(path string) (Config, error) {
	home, err := HomeDir()
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		path = filepath.Join(home, fileName)
	}
	cfg := defaultConfig(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return applyEnv(cfg), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}
	if cfg.Workday.Duration == "" {
		cfg.Workday.Duration = DefaultWorkdayDuration
	}
	cfg = applyEnv(cfg)

	if err := validation.Validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %s", path, validation.Describe(err))
	}
	return cfg, nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv(dataDirEnv); v != "" {
		cfg.DataDir = v
	}
	return cfg
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
