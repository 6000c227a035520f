package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "mcu_control/docs"
	"mcu_control/internal/actuator"
	"mcu_control/internal/config"
	"mcu_control/internal/driver"
	"mcu_control/internal/events"
	"mcu_control/internal/fade"
	"mcu_control/internal/handlers"
	"mcu_control/internal/logger"
	"mcu_control/internal/metrics"
	"mcu_control/internal/notify"
	"mcu_control/internal/repository"
	"mcu_control/internal/repository/db"
	"mcu_control/internal/sensor"
	"mcu_control/internal/server"
	"mcu_control/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	httpDrainTimeout = 10 * time.Second
	taskStopTimeout  = 5 * time.Second
)

// @title        mcu-control
// @version      1.0
// @description  LED fade actuator and chip temperature service.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:          "mcu-control",
		Short:        "LED fade and chip temperature HTTP service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			return run(v, configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yml)")
	cmd.Flags().StringP("port", "p", "", "HTTP listen port")
	cmd.Flags().String("log-level", "", "debug, info, warn or error")
	return cmd
}

// bindFlags maps CLI flags onto config keys. Unset flags leave the file
// and environment values in place.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	keys := map[string]string{
		"port":      "port",
		"log-level": "log.level",
	}
	for flag, key := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

func run(v *viper.Viper, configPath string) error {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()
	config.Watch(v, log, nil)

	// peripherals are acquired once and held for the life of the process
	periph, err := driver.Open(cfg.Driver)
	if err != nil {
		log.Errorw("driver_open_failed", "kind", cfg.Driver.Kind, "err", err)
		return err
	}
	defer func() {
		if cerr := periph.Close(); cerr != nil {
			log.Warnw("driver_close_failed", "err", cerr)
		}
	}()

	bus := events.New()
	defer func() { _ = bus.Close() }()

	ctl := actuator.New(fade.NewAnimator(cfg.Fade, periph.PWM, driver.SystemClock{}), bus, log)
	therm := sensor.New(periph.Thermometer, bus, log)

	sqlDB, err := openDB(cfg.DBPath, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Warnw("sqlite_close_failed", "err", cerr)
		}
	}()

	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Deps{
		Controller: ctl,
		Sensor:     therm,
		Auth:       service.AuthConfig{SigningKey: cfg.SigningKey, TokenTTL: cfg.TokenTTL},
		Log:        log,
	})

	defer service.NewJournal(repos.EventRepo, log).Attach(bus)()

	mtr := metrics.New(ctl)
	defer mtr.Attach(bus)()

	pub := openPublisher(cfg.MQTT, log)
	defer func() { _ = pub.Close() }()
	defer notify.NewNotifier(pub, log).Attach(bus)()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go services.Sampler.Run(ctx, cfg.SampleInterval)

	h := handlers.NewHandler(services, log, handlers.WithMetrics(mtr.Handler()))
	srv := server.New(cfg.Port, h.InitRoutes())

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("http_listening", "addr", srv.Addr(), "driver", cfg.Driver.Kind)
		serveErr <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		log.Infow("shutting_down", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			log.Errorw("http_server_failed", "err", err)
		}
		cancel()
		stopTask(ctl, log)
		return err
	}

	cancel()

	drainCtx, drainCancel := context.WithTimeout(context.Background(), httpDrainTimeout)
	defer drainCancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		log.Warnw("http_shutdown_forced", "err", err)
	}

	stopTask(ctl, log)
	return nil
}

// stopTask switches the LED off at the fade task's next safe point.
func stopTask(ctl *actuator.Controller, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), taskStopTimeout)
	defer cancel()
	if err := ctl.Close(ctx); err != nil {
		log.Warnw("fade_task_stop_timeout", "err", err)
	}
}

func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "mcu.db")
		path = "mcu.db"
	}
	conn, err := db.InitDB(path)
	if err != nil {
		log.Errorw("sqlite_init_failed", "path", path, "err", err)
		return nil, err
	}
	return conn, nil
}

// openPublisher connects to the broker, or returns a no-op publisher when
// none is configured or it cannot be reached.
func openPublisher(opts notify.Options, log *logger.Logger) notify.Publisher {
	if opts.Broker == "" {
		return notify.Nop{}
	}
	pub, err := notify.NewPahoPublisher(opts)
	if err != nil {
		log.Warnw("mqtt_unavailable", "broker", opts.Broker, "err", err)
		return notify.Nop{}
	}
	log.Infow("mqtt_connected", "broker", opts.Broker, "topic", opts.Topic)
	return pub
}
