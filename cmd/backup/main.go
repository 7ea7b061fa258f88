// cmd/backup/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/semmidev/stackvault/internal/app"
	"github.com/semmidev/stackvault/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	schedule := flag.String("schedule", "", "optional cron spec for recurring runs")
	flag.Parse()

	if flag.NArg() != 3 {
		return fmt.Errorf("usage: %s [-schedule <cron spec>] <backup-root> <config-file> <label>", os.Args[0])
	}
	root, configPath, label := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg, root, label, *schedule)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return application.Run(ctx)
}

// exitCode propagates the status of the first fatal subprocess when one
// is buried in the error chain.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
