package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/emptrack/emptrack/internal/config"
	"github.com/emptrack/emptrack/internal/database"
	"github.com/emptrack/emptrack/internal/logging"
	"github.com/emptrack/emptrack/internal/menu"
	"github.com/emptrack/emptrack/internal/prompt"
	"github.com/emptrack/emptrack/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	driver    string
	dbPath    string
	logFile   string
	bind      string
	port      int
	verbosity int
	vacuum    bool
)

// cfg is resolved once per invocation by the root PersistentPreRunE.
var cfg config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:   "emptrack",
		Short: "Employee tracker",
		Long:  `emptrack manages departments, roles and employees through an interactive menu.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE:          runMenu,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flags
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Database driver: postgres, pgx or sqlite (or set DB_DRIVER env var)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (or set DB_PATH env var)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Rotating log file path (or set LOG_FILE env var)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or upgrade the database schema",
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load a sample organisation into an empty database",
			RunE:  runSeed,
		},
		newMaintainCmd(),
		newServeCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			// Skip config and logging so version works without a database.
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("emptrack %s (commit: %s, built: %s)\n", version, commit, date)
			},
		},
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newMaintainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintain",
		Short: "Refresh planner statistics and optionally reclaim space",
		RunE:  runMaintain,
	}
	cmd.Flags().BoolVar(&vacuum, "vacuum", false, "Also run VACUUM")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only JSON view of the catalog",
		RunE:  runServe,
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (or set PORT env var)")
	cmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1)")
	return cmd
}

// setup resolves configuration from the environment and flags, then
// configures logging. The interactive menu keeps the console to errors
// only: it reports store failures to the operator itself.
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.FromEnv()
	if err != nil {
		return err
	}

	if driver != "" {
		cfg.Driver = driver
	}
	if dbPath != "" {
		cfg.SQLitePath = dbPath
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	switch {
	case verbosity == 1:
		cfg.LogLevel = "debug"
	case verbosity >= 2:
		cfg.LogLevel = "trace"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	path := cfg.LogFile
	if path == "" && cfg.Driver == config.DriverSQLite {
		path = logging.FilePathForDB(cfg.SQLitePath)
	}

	consoleLevel := zerolog.TraceLevel
	if cmd.Root() == cmd {
		consoleLevel = logging.InteractiveConsoleLevel
	}

	logging.Apply(logging.Options{
		Level:        cfg.LogLevel,
		ConsoleLevel: consoleLevel,
		FilePath:     path,
		Rotation:     cfg.Log,
	})

	if !cfg.DotEnvLoaded {
		log.Debug().Msg("No .env file found, using process environment")
	}
	log.Debug().
		Str("version", version).
		Str("command", cmd.Name()).
		Str("driver", cfg.Driver).
		Msg("Starting emptrack")
	return nil
}

// connect opens the store. A failed connection is fatal.
func connect(ctx context.Context) *database.DB {
	db, err := database.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", cfg.Redacted()).Msg("Failed to connect to the database")
	}
	return db
}

func runMenu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db := connect(ctx)
	defer db.Close()

	fmt.Println("Connected to the database.")

	return menu.New(db, prompt.NewTerminal(), os.Stdout).Run(ctx)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db := connect(ctx)
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	log.Info().Msg("Database schema is up to date")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db := connect(ctx)
	defer db.Close()

	seeded, err := db.Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	if !seeded {
		log.Info().Msg("Database already has departments, nothing seeded")
		return nil
	}
	if err := db.Optimize(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to refresh planner statistics after seeding")
	}
	return nil
}

func runMaintain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db := connect(ctx)
	defer db.Close()

	if err := db.Optimize(ctx); err != nil {
		return err
	}
	if vacuum {
		if err := db.Vacuum(ctx); err != nil {
			return err
		}
	}
	log.Info().Bool("vacuum", vacuum).Msg("Database maintenance complete")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if port == 0 {
		port = cfg.HTTPPort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := connect(ctx)
	defer db.Close()

	log.Info().
		Str("version", version).
		Int("port", port).
		Str("bind", bind).
		Msg("Starting emptrack HTTP view")

	server := web.NewServer(db, port, bind, version)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info().Msg("emptrack stopped")
	return nil
}
