// Package cli implements the tilery command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tilery/tilery/internal/config"
	"github.com/tilery/tilery/pkg/buildinfo"
	"github.com/tilery/tilery/pkg/errors"
	"github.com/tilery/tilery/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tilery"

	// defaultBoardFile is the board file used when --board is not given.
	defaultBoardFile = "board.tiles"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and loaded config.
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := config.Load()
	c := &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warn("config ignored", "error", err)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running tilery with no subcommand starts the interactive board.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tilery",
		Short:        "Tilery is an interactive letter-tile board in your terminal",
		Long:         `Tilery turns your terminal into a fridge door: type letters onto tiles, drag them around, shuffle and arrange them, and share the result with a short URL.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), playOpts{board: boardFlag(cmd)})
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringP("board", "b", "", "board file (default: the shared board in the data directory)")

	// Register all subcommands
	root.AddCommand(c.playCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.shuffleCommand())
	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.shareCommand())
	root.AddCommand(c.openCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.boardsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// newStore builds the configured store backend, instrumented for
// observability.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Server.Store {
	case "memory":
		return store.Instrument(store.NewMemory(), "memory"), nil
	case "null":
		return store.Instrument(store.NewNull(), "null"), nil
	case "file":
		s, err := store.NewFile(c.Config.Server.Dir)
		if err != nil {
			return nil, err
		}
		return store.Instrument(s, "file"), nil
	case "redis":
		r := c.Config.Server.Redis
		s, err := store.NewRedis(ctx, store.RedisConfig{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			TTL:      r.TTL.Duration,
		})
		if err != nil {
			return nil, err
		}
		return store.Instrument(s, "redis"), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Config.Server.Store)
}

// =============================================================================
// Paths
// =============================================================================

// boardFlag resolves the --board flag, falling back to the default board
// file in the data directory.
func boardFlag(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("board"); path != "" {
		return path
	}
	path, err := defaultBoardPath()
	if err != nil {
		return defaultBoardFile
	}
	return path
}

// defaultBoardPath returns the shared board file using the XDG data layout
// (~/.local/share/tilery/board.tiles).
func defaultBoardPath() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, defaultBoardFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, defaultBoardFile), nil
}
