package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skillswap/skillswap/internal/common/logtrace"
	"github.com/skillswap/skillswap/internal/fakeapi"
)

type cmdoptions struct {
	port     string
	logLevel string
	noSeed   bool
	noCORS   bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opt := parseFlags()
	logtrace.InitLogger(opt.logLevel)

	if err := run(ctx, opt); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, opt cmdoptions) error {
	slog := log.With().Str("state", "init").Logger()

	api := fakeapi.New(fakeapi.Options{HandleCORS: !opt.noCORS})
	if !opt.noSeed {
		api.Seed()
		slog.Info().Int("profile_id", fakeapi.DemoProfileID).Msg("demo data loaded")
	}

	serverErrors, shutdownServer := startServer(ctx, opt.port, api)

	// Channel to listen for an interrupt or terminate signal from the OS.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		shutdownServer()
	}

	slog.Info().Msg("server stopped")
	return nil
}

func startServer(ctx context.Context, port string, handler http.Handler) (chan error, func()) {
	slog := log.With().Str("state", "init").Logger()

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info().Str("port", port).Msg("server started")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := func() {
		// Give outstanding requests 5 seconds to complete and initiate the shutdown.
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error().Err(err).Msg("could not stop server gracefully")
			if err := srv.Close(); err != nil {
				slog.Error().Err(err).Msg("could not stop server")
			}
		}
	}

	return serverErrors, shutdown
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	flag.StringVar(&opt.port, "port", "8000", "Port to listen on")
	flag.StringVar(&opt.logLevel, "log-level", "info", "Log level")
	flag.BoolVar(&opt.noSeed, "empty", false, "Start without the demo data")
	flag.BoolVar(&opt.noCORS, "no-cors", false, "Do not answer CORS preflight requests")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Serves an in-memory SkillSwap API for local development.")
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
