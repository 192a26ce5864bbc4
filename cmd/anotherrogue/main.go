// Package main is the entry point for anotherrogue.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/anotherrogue/internal/game"
	"github.com/samdwyer/anotherrogue/internal/telemetry"
)

// exitSignals end the game like an exit request, so the session is saved.
// SIGHUP arrives when the terminal window is closed.
var exitSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

func main() {
	os.Exit(run())
}

// run is separate from main so deferred cleanup happens before exiting.
func run() int {
	// Load .env file for local development
	// This makes HONEYCOMB_ANOTHERROGUE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Printf("parse config: %v", err)
		return 2
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		log.Printf("open log file: %v", err)
		return 2
	}
	defer closeLog()

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), exitSignals...)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			// The run context may already be cancelled by a signal
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	err = game.New(cfg).Run(ctx)
	return exitCode(err)
}

// exitCode maps how the game ended to the process status.
func exitCode(err error) int {
	switch game.Classify(err) {
	case game.OutcomeContinue, game.OutcomeExit:
		return 0
	case game.OutcomeQuitWithoutSaving:
		return 1
	default:
		log.Printf("Game error: %v", err)
		var p *game.PanicError
		if errors.As(err, &p) {
			log.Printf("%s", p.Stack)
		}
		return 1
	}
}

// setupLogging sends the standard logger to path, appending. With no path
// it stays on stderr, which the terminal screen hides while the game runs.
func setupLogging(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	flags := log.Flags()
	log.SetOutput(f)
	log.SetFlags(flags | log.Lmicroseconds)
	return func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
		f.Close()
	}, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_ANOTHERROGUE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_ANOTHERROGUE_DATASET")
	if dataset == "" {
		dataset = "anotherrogue" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
