package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/promptshare/api"
	"github.com/jrsteele09/promptshare/internal/config"
	"github.com/jrsteele09/promptshare/server"
	"github.com/jrsteele09/promptshare/server/authflowrepo"
	"github.com/jrsteele09/promptshare/sessions/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Set by -ldflags at build time
var (
	version = "dev"
	commit  = "none"
)

const janitorInterval = 5 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var port, env string

	rootCmd := &cobra.Command{
		Use:           "promptshare",
		Short:         "Prompt sharing web front-end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.New(config.WithPort(port), config.WithEnv(env))
			if err != nil {
				return err
			}
			return run(c)
		},
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	serveCmd.Flags().StringVar(&env, "env", "", "environment, DEV enables the route table and console logs (overrides ENV)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "promptshare %s (commit %s)\n", version, commit)
		},
	}

	rootCmd.AddCommand(serveCmd, versionCmd)
	return rootCmd
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Bytes("stack", debug.Stack()).Msgf("Recovered from panic: %v", r)
			returnError = errors.New("panic recovered")
		}
	}()

	setupLogging(c)
	displayAppname(c.GetAppName())

	sessionStorage, closeStorage, err := openStorage(c)
	if err != nil {
		return err
	}
	defer closeStorage()

	handler, err := server.New(
		c,
		api.New(c.GetAPIBaseURL(), c.GetAPITimeout()),
		sessionStorage,
		authflowrepo.NewInMemoryRepo(c.GetAuthStateTimeout()),
	)
	if err != nil {
		return err
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go runJanitor(janitorCtx, handler, sessionStorage, c)

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(srv) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}

	returnError = shutdown(srv)
	log.Info().Msg("Server stopped")
	return returnError
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

// openStorage opens the repository browser sessions are persisted in
func openStorage(c config.Config) (storage.Repo, func(), error) {
	switch c.GetStorageDriver() {
	case config.StorageDriverMemory, "":
		log.Warn().Msg("Sessions are kept in memory and lost on restart")
		return storage.NewInMemoryRepo(), func() {}, nil

	case config.StorageDriverSQLite:
		repo, err := storage.OpenSQLite(c.GetStoragePath())
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", c.GetStoragePath()).Msg("Sessions are persisted in SQLite")

		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Err(err).Msg("Failed to close session storage")
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", c.GetStorageDriver())
}

// sessionPruner drops sessions from the in-memory cache
type sessionPruner interface {
	PruneSessions(idle time.Duration) int
}

// expiringStorage drops stored sessions not written since cutoff
type expiringStorage interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// pruneSessions evicts idle browsers from the session cache and then, when the
// storage supports it, deletes sessions of browsers whose cookie has expired.
// Cache eviction runs first so a cached store never writes a pruned row back.
func pruneSessions(cache sessionPruner, repo storage.Repo, c config.SessionConfig) {
	if evicted := cache.PruneSessions(c.GetSessionIdleTimeout()); evicted > 0 {
		log.Debug().Int("evicted", evicted).Msg("Evicted idle browser sessions")
	}

	expiring, ok := repo.(expiringStorage)
	if !ok {
		return
	}
	removed, err := expiring.DeleteOlderThan(time.Now().Add(-c.GetBrowserCookieMaxAge()))
	if err != nil {
		log.Err(err).Msg("Failed to prune session storage")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Pruned expired browser sessions")
	}
}

func runJanitor(ctx context.Context, cache sessionPruner, repo storage.Repo, c config.SessionConfig) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruneSessions(cache, repo, c)
		}
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
