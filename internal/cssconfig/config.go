// Package cssconfig loads the optimiser configuration from a YAML file
// and CSSOPT_* environment variables, with live reload for long-running
// watch mode.
package cssconfig

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cssopt/cssopt/internal/cssoptimizer"
	"github.com/cssopt/cssopt/internal/cssprint"
)

// Config holds all application configuration.
type Config struct {
	OptimiseShorthands string `mapstructure:"optimise_shorthands"`
	CompressColors     bool   `mapstructure:"compress_colors"`
	CompressFontWeight bool   `mapstructure:"compress_font_weight"`

	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OutputConfig controls the printer.
type OutputConfig struct {
	Template string `mapstructure:"template"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OptimiserOptions translates the loaded configuration into the
// optimiser's option set.
func (c *Config) OptimiserOptions() (cssoptimizer.Options, error) {
	level, ok := cssoptimizer.ParseLevel(strings.ToUpper(c.OptimiseShorthands))
	if !ok {
		return cssoptimizer.Options{}, fmt.Errorf("unknown optimise_shorthands level %q", c.OptimiseShorthands)
	}
	return cssoptimizer.Options{
		OptimiseShorthands: level,
		CompressColors:     c.CompressColors,
		CompressFontWeight: c.CompressFontWeight,
	}, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	if _, ok := cssoptimizer.ParseLevel(strings.ToUpper(c.OptimiseShorthands)); !ok {
		return fmt.Errorf("unknown optimise_shorthands level %q", c.OptimiseShorthands)
	}
	if _, ok := cssprint.TemplateByName(c.Output.Template); !ok {
		return fmt.Errorf("unknown output template %q", c.Output.Template)
	}
	return nil
}

// Loader owns the viper instance so that a Load can later be followed by
// Watch on the same file.
type Loader struct {
	v   *viper.Viper
	log *zap.Logger
}

// NewLoader creates a Loader. A nil logger is replaced with a no-op one.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{v: viper.New(), log: log.Named("config")}
}

// Load reads configuration from path (or, when path is empty, from a
// cssopt.yaml found in the usual places), layered under CSSOPT_*
// environment variables. When path is empty and no cssopt.yaml is found,
// defaults apply; an explicitly named path that cannot be read is an
// error.
func (l *Loader) Load(path string) (*Config, error) {
	setDefaults(l.v)

	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("cssopt")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		l.v.AddConfigPath("/etc/cssopt")
	}

	l.v.SetEnvPrefix("CSSOPT")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := l.unmarshal()
	if err != nil {
		return nil, err
	}
	l.log.Debug("loaded configuration",
		zap.String("file", l.v.ConfigFileUsed()),
		zap.String("level", cfg.OptimiseShorthands),
	)
	return cfg, nil
}

// Watch re-reads the configuration whenever the backing file changes and
// hands the fresh Config to onChange. A change that fails to load or
// validate is logged and dropped; the previous configuration stays in
// effect.
func (l *Loader) Watch(onChange func(*Config)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := l.unmarshal()
		if err != nil {
			l.log.Warn("ignoring config change", zap.String("file", e.Name), zap.Error(err))
			return
		}
		l.log.Info("configuration reloaded", zap.String("file", e.Name))
		onChange(cfg)
	})
	l.v.WatchConfig()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("optimise_shorthands", "ALL")
	v.SetDefault("compress_colors", true)
	v.SetDefault("compress_font_weight", true)
	v.SetDefault("output.template", "pretty")
	v.SetDefault("logging.level", "info")
}
