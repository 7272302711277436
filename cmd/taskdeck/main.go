// Package main is the entry point for the taskdeck CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskdeck/internal/backend/resthttp"
	"taskdeck/internal/cli"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/state"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create engine factory
	factory := func(ctx context.Context, cfg *config.Config) (*state.Store, error) {
		var st *state.Store
		gw := resthttp.New(cfg.ServerURL, func() string {
			if st == nil {
				return ""
			}
			return st.Token()
		})
		if cfg.Debug {
			gw.SetDebug(os.Stderr)
		}

		confirm := cli.StdinConfirmer(os.Stdin, os.Stderr)
		if cfg.Force {
			confirm = func(string) bool { return true }
		}

		st = state.New(gw,
			&state.FileCredentialStore{Path: cfg.TokenPath()},
			&state.FileSnapshotStore{Path: cfg.StatePath()},
			confirm,
		)
		return st, nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
