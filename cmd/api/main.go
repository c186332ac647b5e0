package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Gift-726/Bus-Routing/internal/appconf"
	"github.com/Gift-726/Bus-Routing/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(2)
	}

	cfg, err := loadConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, cfg.SlogLevel())

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the optional -config YAML file, BUSDIR_*
// variables and explicitly set flags, then validates the result.
func loadConfig(args []string, lookup func(string) (string, bool)) (appconf.Config, error) {
	cfg := appconf.Default()

	flags := flag.NewFlagSet("api", flag.ContinueOnError)
	configPath := flags.String("config", "", "Path to a YAML config file")
	port := flags.Int("port", cfg.Port, "API server port")
	env := flags.String("env", cfg.Env.String(), "Environment (development|test|production)")
	dataSource := flags.String("data-source", cfg.DataSource, "Path or http(s) URL of the bus data document")
	strict := flags.Bool("strict", cfg.StrictValidation, "Fail the load on the first malformed record")
	rateLimit := flags.Int("rate-limit", cfg.RateLimit, "Requests per second per client (0 disables)")
	origins := flags.String("allowed-origins", "*", "Comma separated CORS origins")
	sessionDB := flags.String("session-db", cfg.SessionDBPath, "SQLite path for the session store")
	logLevel := flags.String("log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if err := appconf.LoadFile(*configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := appconf.ApplyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "env":
			cfg.Env = appconf.EnvFlagToEnvironment(*env)
		case "data-source":
			cfg.DataSource = *dataSource
		case "strict":
			cfg.StrictValidation = *strict
		case "rate-limit":
			cfg.RateLimit = *rateLimit
		case "allowed-origins":
			cfg.AllowedOrigins = appconf.SplitList(*origins)
		case "session-db":
			cfg.SessionDBPath = *sessionDB
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	return cfg, cfg.Validate()
}

func run(cfg appconf.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
