package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. Every value is a fixed
// constant for the life of the process; nothing here is mutated at runtime.
type Config struct {
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SourceConfig tunes one upstream source. Sources known to aggressively
// block automated clients get a stricter request-rate ceiling.
type SourceConfig struct {
	RPS         float64 `yaml:"rps" mapstructure:"rps"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// SourcesConfig holds per-source tuning, one entry per upstream.
type SourcesConfig struct {
	Indeed    SourceConfig `yaml:"indeed" mapstructure:"indeed"`
	Glassdoor SourceConfig `yaml:"glassdoor" mapstructure:"glassdoor"`
	Levels    SourceConfig `yaml:"levels" mapstructure:"levels"`
	Blind     SourceConfig `yaml:"blind" mapstructure:"blind"`
	LinkedIn  SourceConfig `yaml:"linkedin" mapstructure:"linkedin"`
}

// RateBySource returns the configured requests-per-second keyed by source
// ID, the shape the rate-limiter registry consumes.
func (s SourcesConfig) RateBySource() map[string]float64 {
	return map[string]float64{
		"indeed":    s.Indeed.RPS,
		"glassdoor": s.Glassdoor.RPS,
		"levels":    s.Levels.RPS,
		"blind":     s.Blind.RPS,
		"linkedin":  s.LinkedIn.RPS,
	}
}

// ReportConfig bounds result set sizes and rendered report length.
type ReportConfig struct {
	MaxResults    int `yaml:"max_results" mapstructure:"max_results"`
	MaxSalaryRows int `yaml:"max_salary_rows" mapstructure:"max_salary_rows"`
	CharBudget    int `yaml:"char_budget" mapstructure:"char_budget"`
}

// ServerConfig configures the tool HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("JOBLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Lenient sources get 1 rps; sources that block scrapers
	// hard (Glassdoor, Blind, LinkedIn) get half that.
	v.SetDefault("sources.indeed.rps", 1.0)
	v.SetDefault("sources.indeed.timeout_secs", 15)
	v.SetDefault("sources.glassdoor.rps", 0.5)
	v.SetDefault("sources.glassdoor.timeout_secs", 15)
	v.SetDefault("sources.levels.rps", 1.0)
	v.SetDefault("sources.levels.timeout_secs", 15)
	v.SetDefault("sources.blind.rps", 0.5)
	v.SetDefault("sources.blind.timeout_secs", 15)
	v.SetDefault("sources.linkedin.rps", 0.5)
	v.SetDefault("sources.linkedin.timeout_secs", 15)
	v.SetDefault("report.max_results", 25)
	v.SetDefault("report.max_salary_rows", 20)
	v.SetDefault("report.char_budget", 30000)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
