package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"apiexplorer/internal/coinpaprika"
	"apiexplorer/internal/config"
	"apiexplorer/internal/console"
	"apiexplorer/internal/fetcher"
	"apiexplorer/internal/jsonplaceholder"
	"apiexplorer/internal/lesson"
	"apiexplorer/internal/logging"
	"apiexplorer/internal/openmeteo"
	"apiexplorer/internal/report"
)

const defaultLesson = "dashboard"

func main() {
	// A .env file is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, wires the clients and runs the chosen lesson
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := config.Flags()
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: apiexplorer [flags] [lesson]\n\nLessons:\n")
		for _, l := range lesson.All() {
			fmt.Fprintf(stderr, "  %-12s%s\n", l.Name, l.Title)
		}
		fmt.Fprintf(stderr, "\nFlags:\n%s", fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	name := defaultLesson
	if fs.NArg() > 0 {
		name = fs.Arg(0)
	}
	chosen, err := lesson.Lookup(name)
	if err != nil {
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(stderr, logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
	if cfg.OpenWeatherAPIKey != "" {
		logger.Debug().Msg("OpenWeatherMap API key configured")
	}

	f := fetcher.New(
		fetcher.WithTimeout(cfg.RequestTimeout),
		fetcher.WithMaxAttempts(cfg.MaxAttempts),
		fetcher.WithRetryDelay(cfg.RetryDelay),
		fetcher.WithLogger(logger),
	)

	env := &lesson.Env{
		Out:         report.New(stdout),
		In:          console.NewPrompter(stdin, stdout),
		Fetcher:     f,
		Placeholder: jsonplaceholder.NewClient(f, cfg.JSONPlaceholderBaseURL),
		Weather:     openmeteo.NewClient(f, cfg.OpenMeteoBaseURL),
		Crypto:      coinpaprika.NewClient(f, cfg.CoinPaprikaBaseURL),
		Cities:      openmeteo.DefaultCities(),
		Coins:       coinpaprika.DefaultCoins(),
		OutputFile:  cfg.OutputFile,
		Demo:        lesson.DefaultDemo(),
		Logger:      logger,
	}

	logger.Debug().
		Str("lesson", chosen.Name).
		Str("jsonplaceholder", cfg.JSONPlaceholderBaseURL).
		Str("openmeteo", cfg.OpenMeteoBaseURL).
		Str("coinpaprika", cfg.CoinPaprikaBaseURL).
		Msg("configuration loaded")

	if err := chosen.Exec(ctx, env); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stdout, "\nReceived interrupt signal, shutting down...")
			return nil
		}
		return fmt.Errorf("lesson %s: %w", chosen.Name, err)
	}
	return nil
}
