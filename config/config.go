package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyKimaiURL   = "kimai.url"
	KeyKimaiToken = "kimai.token"
	KeyOutputDir  = "output.dir"
	KeyLogLevel   = "log.level"
)

type Config struct {
	Kimai  KimaiConfig  `mapstructure:"kimai" validate:"required"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

type KimaiConfig struct {
	URL   string `mapstructure:"url" validate:"required,url"`
	Token string `mapstructure:"token" validate:"required"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SetDefaults sets default values and environment bindings. The API base
// URL and bearer token come from KIMAI_API_URL / KIMAI_API_TOKEN.
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// LoadAndValidateFrom loads and validates configuration from a dedicated
// Viper instance, applying the same defaults and env bindings.
func LoadAndValidateFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	return loadAndValidateFromViper(v)
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Empty defaults register the keys so Unmarshal picks up env-only values.
	v.SetDefault(KeyKimaiURL, "")
	v.SetDefault(KeyKimaiToken, "")
	v.SetDefault(KeyOutputDir, "./reports")
	v.SetDefault(KeyLogLevel, "info")

	_ = v.BindEnv(KeyKimaiURL, "KIMAI_API_URL")
	_ = v.BindEnv(KeyKimaiToken, "KIMAI_API_TOKEN")
	_ = v.BindEnv(KeyOutputDir, "KIMAI_REPORT_DIR")
	_ = v.BindEnv(KeyLogLevel, "KIMAI_REPORT_LOG_LEVEL")
}
