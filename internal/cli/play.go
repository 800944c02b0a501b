package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tilery/tilery/internal/tui"
	"github.com/tilery/tilery/pkg/boardio"
	"github.com/tilery/tilery/pkg/share"
	"github.com/tilery/tilery/pkg/store"
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	board string // board file path
	touch bool   // enlarged hit targets
}

// playCommand creates the play command, the interactive board session.
// It is also what the bare `tilery` invocation runs.
func (c *CLI) playCommand() *cobra.Command {
	opts := playOpts{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.board = boardFlag(cmd)
			return c.runPlay(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.touch, "touch", false, "enlarge hit targets for coarse pointers")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, opts playOpts) error {
	// A broken or missing board file degrades to an empty canvas; play must
	// always start.
	tiles, err := boardio.Read(opts.board)
	if err != nil {
		printWarning("Ignoring unreadable board %s", opts.board)
		c.Logger.Debug("board read failed", "path", opts.board, "error", err)
		tiles = nil
	}

	var autosave *store.Debouncer
	if c.Config.Autosave.Enabled && opts.board != boardio.Stdio {
		path := opts.board
		autosave = store.NewDebouncer(c.Config.Autosave.Delay.Duration, func(data []byte) error {
			tiles, err := share.Decode(string(data))
			if err != nil {
				return err
			}
			return boardio.Write(path, tiles)
		})
		defer autosave.Close()
	}

	return tui.Run(ctx, tui.Options{
		Tiles:    tiles,
		TouchUI:  opts.touch || c.Config.Board.TouchUI,
		Autosave: autosave,
	})
}
