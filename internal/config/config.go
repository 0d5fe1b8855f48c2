package config

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data DataConfig `yaml:"data" mapstructure:"data"`
	UI   UIConfig   `yaml:"ui" mapstructure:"ui"`
	Log  LogConfig  `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the reference dataset.
type DataConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	GDPPath string `yaml:"gdp_path" mapstructure:"gdp_path"`
	Seed    uint64 `yaml:"seed" mapstructure:"seed"`
}

// GDPFile returns the GDP table path, defaulting to dataPKB/pkb.csv under
// the data directory.
func (d DataConfig) GDPFile() string {
	if d.GDPPath != "" {
		return d.GDPPath
	}
	return filepath.Join(d.Dir, "dataPKB", "pkb.csv")
}

// UIConfig configures the terminal explorer.
type UIConfig struct {
	KeymapPath string  `yaml:"keymap_path" mapstructure:"keymap_path"`
	MapRatio   float64 `yaml:"map_ratio" mapstructure:"map_ratio"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.gdp_path", "")
	v.SetDefault("data.seed", 0)
	v.SetDefault("ui.keymap_path", "")
	v.SetDefault("ui.map_ratio", 0.6)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

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

	if cfg.UI.MapRatio <= 0 || cfg.UI.MapRatio >= 1 {
		return nil, eris.Errorf("config: ui.map_ratio must be in (0, 1), got %v", cfg.UI.MapRatio)
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger. When cfg.File is set, output
// goes there instead of stderr.
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

	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// SilenceLogger discards all log output. The explorer uses it when no log
// file is configured so nothing is written over the terminal UI.
func SilenceLogger() {
	zap.ReplaceGlobals(zap.NewNop())
}
