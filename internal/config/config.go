// Package config loads the service configuration with viper: defaults,
// then configs/config.yml, then MCU_* environment variables, then flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mcu_control/internal/driver"
	"mcu_control/internal/fade"
	"mcu_control/internal/logger"
	"mcu_control/internal/notify"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MCU_FADE_STEP_COUNT.
const EnvPrefix = "MCU"

// Config is the resolved configuration.
type Config struct {
	Port           string
	LogLevel       string
	DBPath         string
	Fade           fade.Config
	Driver         driver.Options
	MQTT           notify.Options
	SampleInterval time.Duration
	SigningKey     string
	TokenTTL       time.Duration
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("db.path", "mcu.db")

	v.SetDefault("fade.step_count", fade.DefaultStepCount)
	v.SetDefault("fade.step_period", fade.DefaultStepPeriod)
	v.SetDefault("fade.pause", fade.DefaultPause)
	v.SetDefault("fade.max_duty", fade.DefaultMaxDuty)

	v.SetDefault("driver.kind", driver.KindSim)
	v.SetDefault("driver.pwm_path", "/sys/class/pwm/pwmchip0/pwm0")
	v.SetDefault("driver.pwm_period", 40*time.Microsecond) // 25 kHz
	v.SetDefault("driver.thermal_path", "/sys/class/thermal/thermal_zone0/temp")
	v.SetDefault("driver.gpio_chip", "gpiochip0")
	v.SetDefault("driver.gpio_line", 4)

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", notify.DefaultTopic)
	v.SetDefault("mqtt.client_id", "mcu-control")

	v.SetDefault("sensor.sample_interval", time.Duration(0))

	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", time.Hour)
}

// Load reads the config file into v and resolves it. An empty path searches
// ./configs for config.{yml,yaml,...}; a missing file there is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return Resolve(v)
}

// Resolve builds a Config from v and validates it.
func Resolve(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		DBPath:   v.GetString("db.path"),
		Fade: fade.Config{
			StepCount:  v.GetInt("fade.step_count"),
			StepPeriod: v.GetDuration("fade.step_period"),
			Pause:      v.GetDuration("fade.pause"),
			MaxDuty:    v.GetFloat64("fade.max_duty"),
		},
		Driver: driver.Options{
			Kind:        v.GetString("driver.kind"),
			PWMPath:     v.GetString("driver.pwm_path"),
			PWMPeriod:   v.GetDuration("driver.pwm_period"),
			ThermalPath: v.GetString("driver.thermal_path"),
			GPIOChip:    v.GetString("driver.gpio_chip"),
			GPIOLine:    v.GetInt("driver.gpio_line"),
		},
		MQTT: notify.Options{
			Broker:   v.GetString("mqtt.broker"),
			Topic:    v.GetString("mqtt.topic"),
			ClientID: v.GetString("mqtt.client_id"),
		},
		SampleInterval: v.GetDuration("sensor.sample_interval"),
		SigningKey:     v.GetString("auth.signing_key"),
		TokenTTL:       v.GetDuration("auth.token_ttl"),
	}

	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("log.level: %w", err)
	}
	if err := cfg.Fade.Validate(); err != nil {
		return Config{}, err
	}
	switch cfg.Driver.Kind {
	case driver.KindSim, driver.KindSysfs, driver.KindGPIO:
	default:
		return Config{}, fmt.Errorf("driver.kind: unknown backend %q", cfg.Driver.Kind)
	}
	if cfg.SampleInterval < 0 {
		return Config{}, fmt.Errorf("sensor.sample_interval must be >= 0, got %v", cfg.SampleInterval)
	}
	return cfg, nil
}

// Watch reloads the file on change and applies the new log level to log.
// Only log.level is hot; everything else needs a restart. onReload, if not
// nil, receives every successfully resolved config.
func Watch(v *viper.Viper, log *logger.Logger, onReload func(Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := Resolve(v)
		if err != nil {
			log.Warnw("config_reload_rejected", "file", e.Name, "err", err)
			return
		}
		if cfg.LogLevel != log.Level() {
			log.SetLevel(cfg.LogLevel)
			log.Infow("log_level_changed", "level", cfg.LogLevel)
		}
		if onReload != nil {
			onReload(cfg)
		}
	})
	v.WatchConfig()
}
