package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zqp2013/blockly/internal/config"
	"github.com/zqp2013/blockly/internal/printer"
	"github.com/zqp2013/blockly/internal/resolver"
	"github.com/zqp2013/blockly/pkg/slots"
	"github.com/zqp2013/blockly/pkg/workspace"
)

const (
	defaultConfigPath    = "slots.yml"
	defaultWorkspacePath = "workspace.yml"
)

// app holds the global flags and the logger shared by all subcommands
type app struct {
	configPath    string
	workspacePath string
	verbose       bool

	logger *zap.Logger
}

// NewRootCmd builds the slots command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "slots",
		Short: "Slots - slot registry for voice intent workspaces",
		Long: `Slots manages the named slots declared in a block-based voice intent
workspace: it lists them, checks and renames them (updating every block
that reads the slot), builds the "Slots" palette and finds references.

Workspaces can be shared between editors through Redis, where renames are
broadcast as events.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			printer.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

			logger, err := newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath, "Path to slots.yml (built-in defaults if the default file is absent)")
	rootCmd.PersistentFlags().StringVarP(&a.workspacePath, "workspace", "w", defaultWorkspacePath, "Path to the workspace document")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newListCmd(a),
		newCheckCmd(a),
		newRenameCmd(a),
		newFlyoutCmd(a),
		newRefsCmd(a),
		newInitCmd(a),
		newPushCmd(a),
		newPullCmd(a),
		newWatchCmd(a),
		newHistoryCmd(a),
	)

	return rootCmd
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(rootCmd *cobra.Command, v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// newLogger builds a console logger on stderr, at debug level when verbose
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

// loadConfig loads slots.yml, falling back to built-in defaults when the
// default path does not exist
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(a.configPath); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		a.logger.Debug("No slots.yml found, using defaults", zap.String("path", a.configPath))
		return config.Default(), nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			map[string]string{"Config": a.configPath},
			[]string{"Run 'slots init' to create a valid slots.yml"},
		)
	}
	return cfg, nil
}

// loadWorkspace reads the workspace document
func (a *app) loadWorkspace() (*workspace.Workspace, error) {
	ws, err := workspace.LoadFile(a.workspacePath)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"failed to load workspace",
			err.Error(),
			map[string]string{"Workspace": a.workspacePath},
			[]string{
				"Run 'slots init' to create an example workspace",
				"Run 'slots pull' to fetch the shared workspace from Redis",
			},
		)
	}
	a.logger.Debug("Loaded workspace", zap.String("path", a.workspacePath), zap.Int("blocks", ws.Len()))
	return ws, nil
}

// registry builds a slot registry from the configuration
func (a *app) registry(cfg *config.Config) *slots.Registry {
	opts := append(cfg.RegistryOptions(), slots.WithLogger(a.logger.Named("registry")))
	return slots.New(opts...)
}

// openStore connects to the configured Redis store and checks it is reachable
func (a *app) openStore(ctx context.Context, cfg *config.Config) (*workspace.Store, error) {
	redisOpts, err := redis.ParseURL(cfg.Store.RedisURL)
	if err != nil {
		return nil, printer.Error(
			"invalid Redis URL",
			fmt.Sprintf("store.redis_url '%s' could not be parsed: %v", cfg.Store.RedisURL, err),
			[]string{"Use the form redis://host:port/db in slots.yml"},
		)
	}

	store, err := workspace.NewStore(redisOpts, cfg.Store.Instance)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, printer.ErrorWithContext(
			"Redis unavailable",
			fmt.Sprintf("Could not connect to Redis at %s", cfg.Store.RedisURL),
			map[string]string{
				"Instance": cfg.Store.Instance,
				"Error":    err.Error(),
			},
			[]string{"Check that Redis is running and store.redis_url in slots.yml is correct"},
		)
	}

	a.logger.Debug("Connected to store",
		zap.String("redis_url", cfg.Store.RedisURL),
		zap.String("instance", cfg.Store.Instance))
	return store, nil
}

// resolveBlock resolves a block ID or prefix, printing a friendly error
func resolveBlock(ws *workspace.Workspace, shortID string) (workspace.Block, error) {
	b, err := resolver.ResolveBlock(ws, shortID)
	if err == nil {
		return b, nil
	}

	var ambiguous *resolver.AmbiguousError
	switch {
	case errors.As(err, &ambiguous):
		return nil, printer.Error("ambiguous block ID", resolver.FormatAmbiguousError(ambiguous), nil)
	case resolver.IsNotFoundError(err):
		return nil, printer.Error(
			"block not found",
			err.Error(),
			[]string{"Run 'slots refs NAME' to find block IDs"},
		)
	default:
		return nil, printer.Error("invalid block ID", err.Error(), nil)
	}
}
