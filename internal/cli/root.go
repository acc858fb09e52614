// Package cli defines the cobra command tree for visits.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/liamgriffiths/visits/internal/db"
	"github.com/liamgriffiths/visits/internal/logging"
	"github.com/liamgriffiths/visits/internal/postgres"
	"github.com/liamgriffiths/visits/internal/session"
	"github.com/liamgriffiths/visits/internal/user"
	"github.com/liamgriffiths/visits/internal/visit"
)

var (
	flagFormat      string
	flagDB          string
	flagDatabaseURL string
	flagVerbose     bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "visits",
		Short: "Count days in a rolling window",
		Long: `Track entry and exit dates and check them against a rolling-window
allowance such as 90 days in any 180-day period.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), flagVerbose)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/visits/visits.db)")
	root.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL connection URL; overrides --db")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newSummaryCmd(),
		newNextCmd(),
		newVersionCmd(),
	)

	return root
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// stores holds the backends a command talks to and how to release them.
type stores struct {
	users  user.Store
	visits visit.Store
	close  func()
}

// openStores opens PostgreSQL when a database URL is configured and the
// SQLite database otherwise.
func openStores(ctx context.Context, cfg CLIConfig) (*stores, error) {
	if url := getDatabaseURL(cfg); url != "" {
		slog.Debug("opening postgres store")
		pool, err := postgres.Open(ctx, url)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		return &stores{
			users:  postgres.NewUserRepository(pool),
			visits: postgres.NewVisitRepository(pool),
			close:  pool.Close,
		}, nil
	}

	path, err := getDBPath(cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("opening sqlite store", "path", path)
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return &stores{
		users:  user.NewRepository(database),
		visits: visit.NewRepository(database),
		close: func() {
			if err := database.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
			}
		},
	}, nil
}

// openSession opens the stores and resolves the user named by --username or
// its fallbacks. The returned func releases the stores.
func openSession(cmd *cobra.Command, cfg CLIConfig, username string) (*session.Session, func(), error) {
	username = getUsername(username, cfg)
	if username == "" {
		return nil, nil, fmt.Errorf("username is required (use --username or VISITS_USERNAME)")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	s, err := session.New(ctx, st.users, st.visits, username)
	if err != nil {
		st.close()
		return nil, nil, err
	}
	slog.Debug("session opened", "username", s.User().Username, "user_id", s.User().ID)

	return s, st.close, nil
}
