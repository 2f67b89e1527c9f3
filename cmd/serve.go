package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve ranked leads over HTTP",
	Long: `Scores both lead variants once at startup and serves the ranked results
read-only under /api/v1/funding and /api/v1/person.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c := *cfg
		c.Server.Port = resolvePort(servePort, cfg.Server.Port)
		if err := c.Validate("serve"); err != nil {
			return err
		}

		srv, err := buildServer(ctx, &c, time.Now())
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// resolvePort prefers the --port flag over the configured port.
func resolvePort(flag, configured int) int {
	if flag != 0 {
		return flag
	}
	return configured
}

// buildServer ranks both variants and wraps them as immutable collections.
func buildServer(ctx context.Context, c *config.Config, now time.Time) (*server.Server, error) {
	fr, funding, err := rankFunding(ctx, c, "")
	if err != nil {
		return nil, eris.Wrap(err, "serve")
	}
	pr, people, err := rankPeople(ctx, c, "", now)
	if err != nil {
		return nil, eris.Wrap(err, "serve")
	}

	zap.L().Info("serve: collections ready",
		zap.Int("funding_leads", len(funding)),
		zap.Int("person_leads", len(people)),
	)

	return server.New(c.Server,
		server.FundingCollection(fr, funding, c.Export),
		server.PersonCollection(pr, people, c.Export),
	), nil
}
