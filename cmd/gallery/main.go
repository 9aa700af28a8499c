package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"photo-gallery/internal/cli"
	"photo-gallery/internal/config"
	"photo-gallery/internal/observability"
)

func main() {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	cfg, err := config.LoadClient()
	if err != nil {
		observability.NewLogger(observability.Config{ServiceName: "gallery", LogFormat: "text", LogOutput: "stderr"}).
			Fatal(context.Background()).Err(err).Msg("Failed to load configuration")
	}

	logger := observability.NewLogger(observability.Config{
		ServiceName: "gallery",
		LogLevel:    cfg.Logging.Level,
		LogFormat:   cfg.Logging.Format,
		LogOutput:   cfg.Logging.Output,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, *logger.GetZerolog(), os.Stdin, os.Stdout)
	app.Run(ctx)
}
