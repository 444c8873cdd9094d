package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DatasetPath       string  `mapstructure:"dataset_path" yaml:"dataset_path"`
	LabelColumn       string  `mapstructure:"label_column" yaml:"label_column"`
	SheetName         string  `mapstructure:"sheet_name" yaml:"sheet_name"`
	OutputPath        string  `mapstructure:"output_path" yaml:"output_path"`
	StaticChartsDir   string  `mapstructure:"static_charts_dir" yaml:"static_charts_dir"`
	TopVariance       int     `mapstructure:"top_variance" yaml:"top_variance"`
	TopLoadings       int     `mapstructure:"top_loadings" yaml:"top_loadings"`
	LoadingComponents int     `mapstructure:"loading_components" yaml:"loading_components"`
	VarianceThreshold float64 `mapstructure:"variance_threshold" yaml:"variance_threshold"`
	// Report text
	ReportTitle  string `mapstructure:"report_title" yaml:"report_title"`
	DatasetTitle string `mapstructure:"dataset_title" yaml:"dataset_title"`
	// Logging: text|json
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Defaults reproduce the fixed paths and constants of the report.
const (
	DefaultDatasetPath       = "data/train.csv"
	DefaultLabelColumn       = "Activity"
	DefaultOutputPath        = "report.html"
	DefaultTopVariance       = 50
	DefaultTopLoadings       = 10
	DefaultLoadingComponents = 3
	DefaultVarianceThreshold = 0.95
	DefaultReportTitle       = "Variance and Principal Component Analysis"
	DefaultDatasetTitle      = "Human Activity Recognition with Smartphones"
)

// ValidationError reports a configuration value that cannot be used.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s (%s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks that the effective configuration can drive a report run.
func (c *Global) Validate() error {
	switch {
	case c.DatasetPath == "":
		return &ValidationError{Field: "dataset_path", Message: "must not be empty"}
	case c.LabelColumn == "":
		return &ValidationError{Field: "label_column", Message: "must not be empty"}
	case c.OutputPath == "":
		return &ValidationError{Field: "output_path", Message: "must not be empty"}
	case c.TopVariance <= 0:
		return &ValidationError{Field: "top_variance", Value: fmt.Sprint(c.TopVariance), Message: "must be positive"}
	case c.TopLoadings <= 0:
		return &ValidationError{Field: "top_loadings", Value: fmt.Sprint(c.TopLoadings), Message: "must be positive"}
	case c.LoadingComponents <= 0:
		return &ValidationError{Field: "loading_components", Value: fmt.Sprint(c.LoadingComponents), Message: "must be positive"}
	case c.VarianceThreshold <= 0 || c.VarianceThreshold > 1:
		return &ValidationError{Field: "variance_threshold", Value: fmt.Sprint(c.VarianceThreshold), Message: "must be in (0, 1]"}
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return &ValidationError{Field: "log_format", Value: c.LogFormat, Message: "use text or json"}
	}
	return nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.pcareport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
// A .env file in the working directory is loaded into the environment first.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PCAREPORT")
	v.AutomaticEnv()

	v.SetDefault("dataset_path", DefaultDatasetPath)
	v.SetDefault("label_column", DefaultLabelColumn)
	v.SetDefault("sheet_name", "")
	v.SetDefault("output_path", DefaultOutputPath)
	v.SetDefault("static_charts_dir", "")
	v.SetDefault("top_variance", DefaultTopVariance)
	v.SetDefault("top_loadings", DefaultTopLoadings)
	v.SetDefault("loading_components", DefaultLoadingComponents)
	v.SetDefault("variance_threshold", DefaultVarianceThreshold)
	v.SetDefault("report_title", DefaultReportTitle)
	v.SetDefault("dataset_title", DefaultDatasetTitle)
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".pcareport"), nil
}
