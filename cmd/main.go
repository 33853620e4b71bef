package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quicksearch.dev/qsbp/internal/interfaces/cli"
	"quicksearch.dev/qsbp/internal/interfaces/di"
)

func main() {
	container, err := di.NewContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		container.Logger.Info("received shutdown signal, shutting down")
		cancel()

		if err := container.Shutdown(ctx); err != nil {
			container.Logger.Error("error during shutdown", "error", err)
		}
		os.Exit(130)
	}()

	cli.Execute(ctx, container.GetCLIContainer())
}
