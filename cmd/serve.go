package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/live"
	"github.com/ziadkadry99/splatdocs/internal/nav"
	"github.com/ziadkadry99/splatdocs/internal/server"
	"github.com/ziadkadry99/splatdocs/internal/session"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bilingual documentation server",
	Long: `Starts the HTTP server: course pages in the visitor's language, the
collapsible sidebar, live widget demos over websocket and the JSON API.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to the config port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}

	catalog := content.Course()
	if err := checkParity(catalog, cfg.StrictParity, os.Stderr); err != nil {
		return err
	}

	sessions, closeSessions, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := loadVectorStore(ctx, cfg, false)
	if err != nil {
		return err
	}

	defaults := nav.DefaultState(catalog.Tree(cfg.Language()).PartIDs(), cfg.ExpandedParts)
	defaults.Lang = cfg.Language()

	host := live.NewHost(live.Config{
		ActionsPerSecond: cfg.Live.ActionsPerSecond,
		Burst:            cfg.Live.Burst,
		MaxWidgets:       cfg.Live.MaxWidgets,
	})
	deps := server.Deps{
		Catalog:  catalog,
		Sessions: sessions,
		Cookies:  session.NewCookies(cfg.Session.Secret, cfg.Session.MaxAgeDays),
		Nav:      nav.NewController(sessions, defaults),
		Live:     host,
		Store:    store,
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		DefaultID:      cfg.DefaultSubsection,
		AllowAll:       cfg.AllowAllOrigins,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		SessionMaxAge:  time.Duration(cfg.Session.MaxAgeDays) * 24 * time.Hour,
	}, deps)
	if err != nil {
		return err
	}

	if cfg.Session.Secret == "" {
		fmt.Fprintln(os.Stderr, "Warning: session.secret is empty; visitor cookies will not survive a restart")
	}
	fmt.Fprintf(os.Stderr, "splatdocs %s starting on port %d\n", Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Default language: %s\n", cfg.Language())
	fmt.Fprintf(os.Stderr, "  Sessions: %s\n", cfg.Session.Store)
	if store != nil {
		fmt.Fprintf(os.Stderr, "  Documents indexed: %d\n", store.Count())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	fmt.Fprintln(os.Stderr, "\nShutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}
