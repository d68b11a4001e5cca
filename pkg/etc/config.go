package etc

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Namespace and ConfigMap locate the ConfigMap that persists settings.
	Namespace            string        `env:"POLARIS_LENS_NAMESPACE" envDefault:"polaris-lens"`
	ConfigMap            string        `env:"POLARIS_LENS_CONFIGMAP" envDefault:"polaris-lens-settings"`
	HTTPTimeout          time.Duration `env:"POLARIS_LENS_HTTP_TIMEOUT" envDefault:"30s"`
	SettingsPollInterval time.Duration `env:"POLARIS_LENS_SETTINGS_POLL_INTERVAL" envDefault:"1s"`
	LogDevMode           bool          `env:"POLARIS_LENS_LOG_DEV_MODE" envDefault:"false"`
}

func GetConfig() (Config, error) {
	var config Config
	err := env.Parse(&config)
	return config, err
}
