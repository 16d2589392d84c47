package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/reactsynth/internal/app"
	"github.com/vk/reactsynth/internal/cli"
)

// main is the entrypoint for the reactsynth application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitRuntime)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics when problems cannot be loaded.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{Code: cli.ExitRuntime, Message: fmt.Sprintf("application startup panicked: %v", r)}
		}
	}()

	synthApp := app.NewApp(outW, appConfig, app.DefaultLoader())

	_, err = synthApp.Run(ctx)
	return cli.FromRunError(err)
}
