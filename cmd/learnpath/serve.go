// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/learnpath/internal/api"
	"github.com/pdiddy/learnpath/internal/engine"
	"github.com/pdiddy/learnpath/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the research engine over HTTP",
	Long: `Serve exposes the research pipeline as a small JSON API:

  POST /api/research          run a screened, verified research request
  POST /api/safety            screen a request only
  GET  /api/runs              list stored runs
  GET  /api/runs/{id}         fetch one stored run
  POST /api/runs/{id}/verify  recompute a stored run's report
  GET  /healthz               liveness check

All runs made through the API are persisted to the run store.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Serve.Addr = addr
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	e := engine.New(cfg, st, os.Stderr)
	srv := api.NewServer(e, cfg.Serve)

	fmt.Fprintf(os.Stderr, "learnpath listening on %s\n", cfg.Serve.Addr)
	return srv.ListenAndServe()
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
