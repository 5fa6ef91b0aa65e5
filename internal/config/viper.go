// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/pdf-order/internal/dateutils"
	"fjacquet/pdf-order/internal/layout"
	"fjacquet/pdf-order/internal/models"
	"fjacquet/pdf-order/internal/order"
	"fjacquet/pdf-order/internal/ordererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "PDFORDER"

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	CSV    CSVConfig    `mapstructure:"csv" yaml:"csv"`
	Order  OrderConfig  `mapstructure:"order" yaml:"order"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig configures the row diagnostics export.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// OrderConfig configures the order file.
type OrderConfig struct {
	CustomerCode string `mapstructure:"customer_code" yaml:"customer_code"`
	DeliveryDays int    `mapstructure:"delivery_days" yaml:"delivery_days"`
	// Sequence is the last part of the file name; empty derives the next free one.
	Sequence  string `mapstructure:"sequence" yaml:"sequence"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	RowPolicy string `mapstructure:"row_policy" yaml:"row_policy"`
	// Date pins the order date (YYYY-MM-DD); empty means today.
	Date string `mapstructure:"date" yaml:"date"`
}

// LayoutConfig is the geometry of the order document.
type LayoutConfig struct {
	Name            string    `mapstructure:"name" yaml:"name"`
	FirstPageTop    float64   `mapstructure:"first_page_top" yaml:"first_page_top"`
	ContinuationTop float64   `mapstructure:"continuation_top" yaml:"continuation_top"`
	Bottom          float64   `mapstructure:"bottom" yaml:"bottom"`
	Columns         []float64 `mapstructure:"columns" yaml:"columns,flow"`
	ArticleColumn   int       `mapstructure:"article_column" yaml:"article_column"`
	QuantityColumn  int       `mapstructure:"quantity_column" yaml:"quantity_column"`
	RowTolerance    float64   `mapstructure:"row_tolerance" yaml:"row_tolerance"`
	CharTolerance   float64   `mapstructure:"char_tolerance" yaml:"char_tolerance"`
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":     "log.level",
	"log-format":    "log.format",
	"customer":      "order.customer_code",
	"delivery-days": "order.delivery_days",
	"sequence":      "order.sequence",
	"output-dir":    "order.output_dir",
	"row-policy":    "order.row_policy",
	"order-date":    "order.date",
	"delimiter":     "csv.delimiter",
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, config file, environment, then the flags of flags that were set.
// configFile replaces the config file search when not empty; flags may be nil.
func InitializeConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pdf-order")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.pdf-order")
		v.AddConfigPath(".pdf-order")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, &ordererror.ConfigError{Key: "config", Reason: "cannot read config file", Err: err}
		}
	}

	// 5. Command-line flags
	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, &ordererror.ConfigError{Key: key, Reason: "cannot bind flag --" + name, Err: err}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &ordererror.ConfigError{Key: "config", Reason: "failed to unmarshal config", Err: err}
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Order defaults
	v.SetDefault("order.customer_code", models.DefaultCustomerCode)
	v.SetDefault("order.delivery_days", models.DefaultDeliveryDays)
	v.SetDefault("order.sequence", "")
	v.SetDefault("order.output_dir", ".")
	v.SetDefault("order.row_policy", string(order.DefaultRowPolicy))
	v.SetDefault("order.date", "")

	// Layout defaults
	p := layout.DefaultProfile()
	v.SetDefault("layout.name", p.Name)
	v.SetDefault("layout.first_page_top", p.FirstPageTop)
	v.SetDefault("layout.continuation_top", p.ContinuationTop)
	v.SetDefault("layout.bottom", p.Bottom)
	v.SetDefault("layout.columns", p.Columns)
	v.SetDefault("layout.article_column", p.ArticleColumn)
	v.SetDefault("layout.quantity_column", p.QuantityColumn)
	v.SetDefault("layout.row_tolerance", p.RowTolerance)
	v.SetDefault("layout.char_tolerance", p.CharTolerance)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &ordererror.ConfigError{Key: "log.level", Reason: "invalid log level: " + config.Log.Level}
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &ordererror.ConfigError{Key: "log.format", Reason: "invalid log format: " + config.Log.Format + " (must be 'text' or 'json')"}
	}

	// Validate CSV delimiter
	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return &ordererror.ConfigError{Key: "csv.delimiter", Reason: "CSV delimiter must be a single character, got: " + config.CSV.Delimiter}
	}

	// Validate order settings
	if err := checkNamePart(config.Order.CustomerCode, false); err != "" {
		return &ordererror.ConfigError{Key: "order.customer_code", Reason: err}
	}
	if err := checkNamePart(config.Order.Sequence, true); err != "" {
		return &ordererror.ConfigError{Key: "order.sequence", Reason: err}
	}
	if config.Order.DeliveryDays < 0 {
		return &ordererror.ConfigError{Key: "order.delivery_days", Reason: "must not be negative"}
	}
	if _, err := order.ParseRowPolicy(config.Order.RowPolicy); err != nil {
		return &ordererror.ConfigError{Key: "order.row_policy", Reason: "unknown row policy", Err: err}
	}
	if config.Order.Date != "" {
		if _, err := dateutils.ParseISODate(config.Order.Date); err != nil {
			return &ordererror.ConfigError{Key: "order.date", Reason: "expected YYYY-MM-DD", Err: err}
		}
	}

	// Validate layout
	if err := config.Profile().Validate(); err != nil {
		return &ordererror.ConfigError{Key: "layout", Reason: "invalid layout profile", Err: err}
	}

	return nil
}

// checkNamePart validates a value that becomes part of the order file name.
func checkNamePart(value string, allowEmpty bool) string {
	if value == "" {
		if allowEmpty {
			return ""
		}
		return "must not be empty"
	}
	if strings.ContainsAny(value, `/\`) || strings.ContainsFunc(value, func(r rune) bool { return r <= ' ' }) {
		return "must not contain path separators or whitespace: " + value
	}
	return ""
}

// Profile returns the layout profile described by the configuration.
func (c *Config) Profile() layout.Profile {
	columns := make([]float64, len(c.Layout.Columns))
	copy(columns, c.Layout.Columns)
	return layout.Profile{
		Name:            c.Layout.Name,
		FirstPageTop:    c.Layout.FirstPageTop,
		ContinuationTop: c.Layout.ContinuationTop,
		Bottom:          c.Layout.Bottom,
		Columns:         columns,
		ArticleColumn:   c.Layout.ArticleColumn,
		QuantityColumn:  c.Layout.QuantityColumn,
		RowTolerance:    c.Layout.RowTolerance,
		CharTolerance:   c.Layout.CharTolerance,
	}
}

// BuilderOptions returns the order builder options. Article and quantity
// columns come from the layout profile. The configuration must have been
// validated.
func (c *Config) BuilderOptions() order.Options {
	policy, err := order.ParseRowPolicy(c.Order.RowPolicy)
	if err != nil {
		policy = order.DefaultRowPolicy
	}
	profile := c.Profile()
	return order.Options{
		CustomerCode:   c.Order.CustomerCode,
		DeliveryDays:   c.Order.DeliveryDays,
		ArticleColumn:  profile.ArticleColumn,
		QuantityColumn: profile.QuantityColumn,
		Policy:         policy,
	}
}

// OrderDate returns the pinned order date, or the clock's current time.
func (c *Config) OrderDate(clock dateutils.Clock) time.Time {
	if c.Order.Date != "" {
		if d, err := dateutils.ParseISODate(c.Order.Date); err == nil {
			return d
		}
	}
	if clock == nil {
		clock = dateutils.SystemClock
	}
	return clock()
}

// CSVDelimiter returns the configured CSV delimiter.
func (c *Config) CSVDelimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
