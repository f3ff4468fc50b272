package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration of the shop portal.
type Config struct {
	Core struct {
		// SiteTitle is the brand title shown in rendered pages.
		SiteTitle string `yaml:"site_title"`
		// SiteCompanyName is the company name shown in the page footer.
		SiteCompanyName string `yaml:"site_company_name"`
	} `yaml:"core"`

	Advanced struct {
		// LogLevel controls the verbosity of the logger (trace, debug, info, warn, error).
		LogLevel string `yaml:"log_level"`
		// LogJson switches the log output to JSON format.
		LogJson bool `yaml:"log_json"`
	} `yaml:"advanced"`

	Backend BackendConfig `yaml:"backend"`

	Statistics StatisticsConfig `yaml:"statistics"`

	Web WebConfig `yaml:"web"`
}

func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Core.SiteTitle = "Baglio"
	cfg.Core.SiteCompanyName = "Baglio Bags"

	cfg.Advanced.LogLevel = "info"

	cfg.Backend = defaultBackendConfig()
	cfg.Statistics = defaultStatisticsConfig()
	cfg.Web = defaultWebConfig()

	return cfg
}

// GetConfig loads the configuration. Default values are overridden by the YAML
// config file (path taken from the SHOP_PORTAL_CONFIG environment variable,
// config.yaml by default). Environment variable references within the YAML
// file are substituted before parsing.
func GetConfig() (*Config, error) {
	cfg := defaultConfig()

	cfgFileName := "config.yaml"
	if envCfgFileName := os.Getenv("SHOP_PORTAL_CONFIG"); envCfgFileName != "" {
		cfgFileName = envCfgFileName
	}

	if err := loadConfigFile(cfg, cfgFileName); err != nil {
		return nil, fmt.Errorf("failed to load config from yaml: %w", err)
	}

	cfg.Web.Sanitize()

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(cfg any, filename string) error {
	data, err := envsubst.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // no config file, defaults apply
		}
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(cfg); err != nil {
		return err
	}

	return nil
}

func validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}

	return cfg.Backend.Validate()
}
