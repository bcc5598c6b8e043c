package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging     LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
	Paths       PathsConfig       `yaml:"paths" envconfig:"PATHS"`
	Cleaning    CleaningConfig    `yaml:"cleaning" envconfig:"CLEANING"`
	Preparation PreparationConfig `yaml:"preparation" envconfig:"PREPARATION"`
	Analysis    AnalysisConfig    `yaml:"analysis" envconfig:"ANALYSIS"`
	Clustering  ClusteringConfig  `yaml:"clustering" envconfig:"CLUSTERING"`
	Export      ExportConfig      `yaml:"export" envconfig:"EXPORT"`
	Pipeline    PipelineConfig    `yaml:"pipeline" envconfig:"PIPELINE"`
	Telemetry   TelemetryConfig   `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains input and output locations
type PathsConfig struct {
	UsersFile   string `yaml:"users_file" envconfig:"USERS_FILE"`
	MatchesFile string `yaml:"matches_file" envconfig:"MATCHES_FILE"`
	ChatsFile   string `yaml:"chats_file" envconfig:"CHATS_FILE"`
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// CleaningConfig controls the cleaning stage
type CleaningConfig struct {
	// TestAccounts are user ids removed from every table before analysis.
	TestAccounts []int64 `yaml:"test_accounts" envconfig:"TEST_ACCOUNTS"`
}

// PreparationConfig controls the preparation stage
type PreparationConfig struct {
	// ReferenceDate anchors age calculation (YYYY-MM-DD). Empty means today.
	ReferenceDate    string `yaml:"reference_date" envconfig:"REFERENCE_DATE" validate:"omitempty,datetime=2006-01-02"`
	ResponseTimeUnit string `yaml:"response_time_unit" envconfig:"RESPONSE_TIME_UNIT" validate:"oneof=s m h"`
	DropIncomplete   bool   `yaml:"drop_incomplete" envconfig:"DROP_INCOMPLETE"`
}

// AnalysisConfig controls the exploratory analysis stage
type AnalysisConfig struct {
	Bins               int      `yaml:"bins" envconfig:"BINS" validate:"gte=1,lte=200"`
	TopN               int      `yaml:"top_n" envconfig:"TOP_N" validate:"gte=1"`
	NumericColumns     []string `yaml:"numeric_columns" envconfig:"NUMERIC_COLUMNS"`
	CategoricalColumns []string `yaml:"categorical_columns" envconfig:"CATEGORICAL_COLUMNS"`
	GroupBy            string   `yaml:"group_by" envconfig:"GROUP_BY"`
	GroupStat          string   `yaml:"group_stat" envconfig:"GROUP_STAT" validate:"oneof=mean median mode"`
	CorrelationColumns []string `yaml:"correlation_columns" envconfig:"CORRELATION_COLUMNS"`
	WorkbookFile       string   `yaml:"workbook_file" envconfig:"WORKBOOK_FILE"`
}

// ClusteringConfig contains cluster pre-processing settings
type ClusteringConfig struct {
	// CitiesFile is a CSV of city,lat,lng; empty uses the built-in UK list.
	CitiesFile     string   `yaml:"cities_file" envconfig:"CITIES_FILE"`
	Weight         float64  `yaml:"weight" envconfig:"WEIGHT" validate:"gt=0,lte=1"`
	CultureColumns []string `yaml:"culture_columns" envconfig:"CULTURE_COLUMNS"`
}

// ExportConfig contains CSV output settings
type ExportConfig struct {
	// BOM prefixes CSV files with a UTF-8 byte order mark for Excel.
	BOM          bool   `yaml:"bom" envconfig:"BOM"`
	ManifestFile string `yaml:"manifest_file" envconfig:"MANIFEST_FILE"`
}

// PipelineConfig contains step execution settings
type PipelineConfig struct {
	StepTimeout time.Duration `yaml:"step_timeout" envconfig:"STEP_TIMEOUT" validate:"gte=0"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TracingEnabled bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	TraceFile      string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	MetricsFile    string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, an optional YAML file and
// CANDID_* environment variables, in increasing order of precedence.
// An empty configFile falls back to the well-known locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a CANDID_* variable keep the file or default value.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
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

// Validate checks field constraints and normalises logging settings
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if _, err := c.Preparation.Reference(time.Now()); err != nil {
		return err
	}
	return nil
}

// Reference returns the date ages are computed against.
func (p PreparationConfig) Reference(now time.Time) (time.Time, error) {
	if p.ReferenceDate == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", p.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q: %w", p.ReferenceDate, err)
	}
	return t, nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"candid.yaml",
		"configs/candid.yaml",
		"../configs/candid.yaml",
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
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			DataDir:   DefaultDataDir,
			OutputDir: DefaultOutputDir,
			LogsDir:   DefaultLogsDir,
		},
		Preparation: PreparationConfig{
			ResponseTimeUnit: "m",
			DropIncomplete:   true,
		},
		Analysis: AnalysisConfig{
			Bins:               30,
			TopN:               10,
			NumericColumns:     []string{"age", "expected_salary", "score_overall"},
			CategoricalColumns: []string{"current_city", "department_name", "gender"},
			GroupBy:            "department_name",
			GroupStat:          "mean",
			CorrelationColumns: []string{
				"score_overall", "score_culture", "score_competencies",
				"score_compensation", "score_benefits", "age", "bio_sentiment_compound",
			},
			WorkbookFile: AnalysisWorkbook,
		},
		Clustering: ClusteringConfig{
			Weight: 0.2,
		},
		Export: ExportConfig{
			ManifestFile: ManifestFile,
		},
		Pipeline: PipelineConfig{
			StepTimeout: 30 * time.Minute,
		},
		Telemetry: TelemetryConfig{
			MetricsEnabled: true,
			MetricsFile:    MetricsTextfile,
		},
	}
}
