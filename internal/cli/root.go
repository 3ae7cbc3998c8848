// Package cli implements the uklc-lessons CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uklc/lessons/internal/auth"
	"github.com/uklc/lessons/internal/catalog"
	"github.com/uklc/lessons/internal/config"
	"github.com/uklc/lessons/internal/logger"
	"github.com/uklc/lessons/internal/store"
)

// app carries global flags and the state built from them.
type app struct {
	configPath string
	backend    string
	dbPath     string
	secret     string
	verbose    bool

	cfg config.Config
	log *logger.Logger
}

// NewRootCmd builds the top-level command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Nop()}

	root := &cobra.Command{
		Use:           "uklc-lessons",
		Short:         "Browse and manage the UKLC lesson catalog",
		Long:          "A small CLI for the UKLC lesson catalog. Search and filter lessons; admins can add, edit, delete, import and export them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: $UKLC_CONFIG)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend: sqlite, postgres, redis, memory")
	root.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", "SQLite database path (default: $UKLC_DB or ~/.uklc-lessons/lessons.db)")
	root.PersistentFlags().StringVar(&a.secret, "secret", "", "Admin secret for changes (default: $UKLC_ADMIN_SECRET)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newRmCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newDocCmd(a),
		newValuesCmd(),
		newStatsCmd(a),
		newHashSecretCmd(),
		newServeCmd(a),
	)
	return root
}

// Execute runs the CLI and reports any error on stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func (a *app) init() error {
	cfg, err := config.Read(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.backend != "" {
		cfg.Backend = a.backend
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg

	log, err := logger.New(cfg.LogMode, a.verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log
	return nil
}

func (a *app) storeOptions() store.Options {
	return store.Options{
		Backend:     a.cfg.Backend,
		SQLitePath:  a.cfg.DBPath,
		PostgresDSN: a.cfg.PostgresDSN,
		Redis: store.RedisOptions{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
			Prefix:   a.cfg.Redis.Prefix,
		},
	}
}

// openCatalog opens the configured store and loads the collection. The
// caller closes the returned record store.
func (a *app) openCatalog(ctx context.Context) (*catalog.Manager, *store.RecordStore, error) {
	blobs, err := store.Open(ctx, a.storeOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	rec := store.NewRecordStore(blobs)
	return catalog.Open(ctx, rec, catalog.WithLogger(a.log)), rec, nil
}

// requireAdmin verifies the admin secret from --secret or $UKLC_ADMIN_SECRET.
func (a *app) requireAdmin() error {
	secret := a.secret
	if secret == "" {
		secret = os.Getenv("UKLC_ADMIN_SECRET")
	}
	if err := auth.NewBcryptVerifier(a.cfg.AdminHash).Verify(secret); err != nil {
		return fmt.Errorf("admin: %w", err)
	}
	return nil
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
