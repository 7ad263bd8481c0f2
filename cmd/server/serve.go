package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the web server.

Configuration is read from the optional YAML file and then from the
environment. Set MOCK=true to run without Microsoft, Google or MongoDB.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configFile)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	return cmd
}

func run(ctx context.Context, configFile string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	setupLogging(cfg)
	displayAppname(cfg.GetAppName())

	app, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.close()

	handler, err := server.New(cfg, app.deps)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()
	app.alertMaintainer(fmt.Sprintf("%s started on %s", cfg.GetAppName(), cfg.GetBaseURL()))

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case sig := <-waitForStopSignal():
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}
	return shutdown(httpServer, app)
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.GetLogLevel()))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

// shutdown stops accepting requests, then gives background tasks what is
// left of the shutdown window to finish.
func shutdown(server *http.Server, app *app) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	if err := app.tasks.Wait(ctx); err != nil {
		log.Warn().Err(err).Msg("Abandoned unfinished background tasks")
	}
	log.Info().Msg("Server stopped")
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
