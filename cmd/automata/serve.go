package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersincine/automata"
	"github.com/ersincine/automata/internal/presentation/tui"
	httpAdapter "github.com/ersincine/automata/pkg/adapters/http"
	"github.com/ersincine/automata/pkg/adapters/memory"
	redisAdapter "github.com/ersincine/automata/pkg/adapters/redis"
	"github.com/ersincine/automata/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Starts the workbench in server mode, exposing membership queries as a
JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		queryTimeout, _ := cmd.Flags().GetDuration("query-timeout")
		cacheSpec, _ := cmd.Flags().GetString("cache")
		dir, _ := cmd.Flags().GetString("dir")

		// Server mode wants request logs unless told otherwise.
		levelText, _ := cmd.Flags().GetString("log-level")
		if !cmd.Flags().Changed("log-level") {
			levelText = "info"
		}
		logger, err := createLogger(levelText)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		w, err := automata.Open(dir, automata.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error initializing workbench: %v\n", err)
			os.Exit(1)
		}

		cache, err := buildCache(cacheSpec)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if closer, ok := cache.(interface{ Close() error }); ok {
			defer closer.Close()
		}

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithTimeout(queryTimeout),
		}
		if cache != nil {
			opts = append(opts, httpAdapter.WithCache(cache))
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: httpAdapter.NewHandler(w, opts...),
		}

		if tui.IsInteractive() {
			tui.PrintBanner()
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Automata Server on %s\n", srv.Addr)
			fmt.Printf("Serving systems from: %s\n", dir)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Automata Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Duration("query-timeout", 10*time.Second, "Deadline for a single query; an expired query answers 504 (0 disables)")
	serveCmd.Flags().String("cache", "memory", "Verdict cache: 'memory', 'none' or a redis:// URL")
}

// buildCache interprets the --cache flag. A nil cache disables caching.
func buildCache(spec string) (ports.QueryCache, error) {
	switch {
	case spec == "none":
		return nil, nil
	case spec == "memory":
		return memory.NewCache(), nil
	case strings.HasPrefix(spec, "redis://"), strings.HasPrefix(spec, "rediss://"):
		return redisAdapter.NewFromURL(spec)
	}
	return nil, fmt.Errorf("unknown cache %q (want 'memory', 'none' or a redis:// URL)", spec)
}
