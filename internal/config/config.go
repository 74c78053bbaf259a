package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/validation"
)

// Config represents the complete application configuration
type Config struct {
	API       APIConfig       `yaml:"api" envconfig:"API"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Chart     ChartConfig     `yaml:"chart" envconfig:"CHART"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// APIConfig configures the skater summary client
type APIConfig struct {
	BaseURL  string        `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	PageSize int           `yaml:"page_size" envconfig:"PAGE_SIZE" validate:"min=1,max=100"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	// RPS paces requests; zero leaves them unpaced.
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Seasons []int   `yaml:"seasons" envconfig:"SEASONS" validate:"required,min=1,dive,seasonid"`
}

// AnalysisConfig selects the team and metric sets of a report run
type AnalysisConfig struct {
	Team           string   `yaml:"team" envconfig:"TEAM" validate:"team"`
	TeamName       string   `yaml:"team_name" envconfig:"TEAM_NAME"`
	CountMetrics   []string `yaml:"count_metrics" envconfig:"COUNT_METRICS" validate:"required,min=1,dive,metric"`
	PercentMetrics []string `yaml:"percent_metrics" envconfig:"PERCENT_METRICS" validate:"required,min=1,dive,metric"`
	Positions      []string `yaml:"positions" envconfig:"POSITIONS" validate:"dive,oneof=C L R D"`
	Sign           string   `yaml:"sign" envconfig:"SIGN" validate:"oneof=team_minus_league league_minus_team"`
	Missing        string   `yaml:"missing" envconfig:"MISSING" validate:"oneof=per_metric complete_cases"`
	ScatterX       string   `yaml:"scatter_x" envconfig:"SCATTER_X" validate:"metric"`
	ScatterY       string   `yaml:"scatter_y" envconfig:"SCATTER_Y" validate:"metric"`
}

// ChartConfig controls raster output
type ChartConfig struct {
	DPI    int     `yaml:"dpi" envconfig:"DPI" validate:"min=72,max=600"`
	Width  float64 `yaml:"width" envconfig:"WIDTH" validate:"gt=0"`   // inches
	Height float64 `yaml:"height" envconfig:"HEIGHT" validate:"gt=0"` // inches
	Format string  `yaml:"format" envconfig:"FORMAT" validate:"oneof=png svg pdf"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// TelemetryConfig controls trace and metric export
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, then the YAML file if one
// is found, then NHLVIS_* environment variables.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit YAML path; an empty path skips the file
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("load config file %s", configFile), err)
		}
	}

	// Fields without a default tag are only touched when the variable is set
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct rules
func (c *Config) Validate() error {
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}
	return validation.Struct(c)
}

// GetPaths derives every file location from the data directory, made
// absolute against the working directory
func (c *Config) GetPaths() *Paths {
	return NewPaths(absPath(c.Paths.DataDir), absPath(c.Paths.LogsDir))
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return path
	}

	locations := []string{
		"nhlvis.yaml",
		"configs/nhlvis.yaml",
		"../configs/nhlvis.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  DefaultBaseURL,
			PageSize: DefaultPageSize,
			Timeout:  DefaultHTTPTimeout,
			RPS:      0,
			Seasons:  DefaultSeasons(),
		},
		Analysis: AnalysisConfig{
			Team:           DefaultTeam,
			TeamName:       DefaultTeamName,
			CountMetrics:   metricCodes(CountMetrics()),
			PercentMetrics: metricCodes(PercentMetrics()),
			Positions:      []string{"C", "L", "R", "D"},
			Sign:           "team_minus_league",
			Missing:        "per_metric",
			ScatterX:       "TOI/GP",
			ScatterY:       "P/GP",
		},
		Chart: ChartConfig{
			DPI:    DefaultDPI,
			Width:  10,
			Height: 6,
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			DataDir: DefaultDataDir,
			LogsDir: DefaultLogsDir,
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}
