package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/questlog/internal/config"
	"github.com/abhisek/questlog/internal/content"
	"github.com/abhisek/questlog/internal/logger"
	"github.com/abhisek/questlog/internal/progress"
	"github.com/abhisek/questlog/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "questlog",
	Short: "Exploration and discovery tracking for content sites",
	Long: "Questlog — tracks how much of each content node a reader has explored,\n" +
		"which topics they have discovered, and derives a quest status per node.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the progress data file/database (overrides QUESTLOG_DATA)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: file or sqlite (overrides config)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to the content catalog JSON (overrides config)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(visitCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// engine bundles everything a command needs against the persisted state.
type engine struct {
	cfg     *config.Config
	store   *progress.Store
	catalog *content.Catalog
	close   func()
}

// openEngine resolves config and flags, opens the storage backend, and
// loads the content catalog.
func openEngine(cmd *cobra.Command) (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Backend = b
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	eng := &engine{cfg: cfg, close: func() {}}

	switch cfg.Backend {
	case config.BackendSQLite:
		path, err := resolveDataPath(cmd, "questlog.db")
		if err != nil {
			return nil, err
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		eng.store = progress.NewStore(db, progress.WithLogger(log))
		eng.close = func() { db.Close() }
	default:
		path, err := resolveDataPath(cmd, storage.StateFile)
		if err != nil {
			return nil, err
		}
		eng.store = progress.NewStore(storage.NewFile(path), progress.WithLogger(log))
	}

	catalogPath, _ := cmd.Flags().GetString("catalog")
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	if catalogPath == "" {
		eng.catalog = content.Empty()
		return eng, nil
	}
	eng.catalog, err = content.Load(catalogPath)
	if err != nil {
		eng.close()
		return nil, err
	}
	return eng, nil
}

// resolveDataPath returns the data path using --data (highest priority),
// then QUESTLOG_DATA, then the default XDG path.
func resolveDataPath(cmd *cobra.Command, file string) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, storage.EnsureDir(p)
	}
	return storage.DefaultDataPath(file)
}
