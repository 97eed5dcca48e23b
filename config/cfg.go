package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mariia-hub/booking-reports/exportworker"
	"github.com/mariia-hub/booking-reports/log"
	"github.com/mariia-hub/booking-reports/report"
	"github.com/mariia-hub/booking-reports/store"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the module.
type Config struct {
	DB      store.Config        `mapstructure:"mysql"`
	Logger  log.Config          `mapstructure:"logger"`
	Reports report.Config       `mapstructure:"reports"`
	Export  exportworker.Config `mapstructure:"export"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/booking-reports")
		viper.AddConfigPath("/etc/booking-reports")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys so flat env names
// work alongside nested keys.
func bindEnvVars() {
	// MySQL
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// Reports
	viper.BindEnv("reports.base_currency", "REPORTS_BASE_CURRENCY")
	viper.BindEnv("reports.default_granularity", "REPORTS_DEFAULT_GRANULARITY")
	viper.BindEnv("reports.prediction_seed", "REPORTS_PREDICTION_SEED")

	// Scheduled export worker
	viper.BindEnv("export.worker_interval", "EXPORT_WORKER_INTERVAL")
	viper.BindEnv("export.window", "EXPORT_WINDOW")
	viper.BindEnv("export.output_dir", "EXPORT_OUTPUT_DIR")
	viper.BindEnv("export.report_name", "EXPORT_REPORT_NAME")
	viper.BindEnv("export.format", "EXPORT_FORMAT")
}
