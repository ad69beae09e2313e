package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/akvise/trends-checker/internal/config"
	"github.com/akvise/trends-checker/internal/handler"
	"github.com/akvise/trends-checker/pkg/logger"
)

type Application struct {
	listen     string
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.listen, "listen", ":8080", "Listen address")
	flag.StringVar(&app.configPath, "config", "", "Optional YAML config file path")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func (app *Application) Run() error {
	level := "info"
	if app.debug {
		level = "debug"
	}
	logger.SetLogger(logger.New(logger.Config{Level: level, Format: "json", Output: "stderr"}))
	log := logger.GetLogger().WithField("component", "server")

	v := config.NewViper()
	if err := config.LoadFile(v, app.configPath); err != nil {
		return err
	}
	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv := fiber.New(fiber.Config{
		AppName:               "trends-checker",
		DisableStartupMessage: true,
	})
	handler.NewController(cfg).Register(srv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(app.listen)
	}()
	log.WithField("listen", app.listen).Info("server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	return srv.ShutdownWithTimeout(5 * time.Second)
}
