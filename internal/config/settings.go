package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings holds the application settings of the nratax CLI.
type Settings struct {
	Log       LogConfig    `yaml:"log" mapstructure:"log"`
	Output    OutputConfig `yaml:"output" mapstructure:"output"`
	Batch     BatchConfig  `yaml:"batch" mapstructure:"batch"`
	RulesFile string       `yaml:"rules_file" mapstructure:"rules_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// BatchConfig configures multi-case runs.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

const maxBatchConcurrency = 64

// Load reads settings from an optional nratax.yaml and the environment. When
// configFile is non-empty that file is read instead and must exist.
func Load(configFile string) (*Settings, error) {
	v := viper.New()

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nratax")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("NRATAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("output.format", "console")
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("rules_file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks settings bounds.
func (s *Settings) Validate() error {
	if s.Batch.Concurrency < 1 || s.Batch.Concurrency > maxBatchConcurrency {
		return eris.Errorf("config: batch.concurrency must be between 1 and %d, got %d", maxBatchConcurrency, s.Batch.Concurrency)
	}
	if strings.TrimSpace(s.Output.Format) == "" {
		return eris.New("config: output.format is required")
	}
	return nil
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
