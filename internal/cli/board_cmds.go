package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tilery/tilery/internal/tui"
	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/boardio"
	"github.com/tilery/tilery/pkg/errors"
	"github.com/tilery/tilery/pkg/geom"
)

// batchWindow is the board size assumed for headless commands: a standard
// terminal, matching what play would use.
var batchWindow = geom.Dims{W: 80, H: 24}

// withBoard runs fn against an engine loaded from the board file, then
// writes the result back. Batch commands share the TUI's cell metrics so
// boards stay interchangeable between play and the one-shot commands.
func (c *CLI) withBoard(cmd *cobra.Command, fn func(e *board.Engine)) error {
	path := boardFlag(cmd)
	if err := errors.ValidateBoardPath(path); err != nil {
		return err
	}

	tiles, err := boardio.Read(path)
	if err != nil {
		return err
	}

	e := board.NewEngine(tui.CellConfig(), batchWindow)
	e.Load(tiles)
	fn(e)
	return boardio.Write(path, e.State().Tiles)
}

// addCommand creates the add command, which lays new letter tiles onto the
// board without opening the TUI.
func (c *CLI) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [text]",
		Short: "Add letter tiles to a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added int
			err := c.withBoard(cmd, func(e *board.Engine) {
				before := len(e.State().Tiles)
				e.Dispatch(board.AddFromPrompt{Text: args[0]})
				added = len(e.State().Tiles) - before
			})
			if err != nil {
				return err
			}
			printSuccess("Added %d tiles", added)
			return nil
		},
	}
}

// shuffleCommand creates the shuffle command.
func (c *CLI) shuffleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shuffle",
		Short: "Shuffle tile positions on a board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var count int
			err := c.withBoard(cmd, func(e *board.Engine) {
				e.Dispatch(board.Shuffle{})
				count = len(e.State().Tiles)
			})
			if err != nil {
				return err
			}
			printSuccess("Shuffled %d tiles", count)
			return nil
		},
	}
}

// arrangeCommand creates the arrange command. A plain arrange packs the
// tiles into centered rows; --circle places them on a ring instead.
func (c *CLI) arrangeCommand() *cobra.Command {
	var circle bool

	cmd := &cobra.Command{
		Use:   "arrange",
		Short: "Arrange board tiles into rows or a circle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.withBoard(cmd, func(e *board.Engine) {
				e.Dispatch(board.Arrange{})
				if circle {
					// Arranging the same set again toggles to the circle.
					e.Dispatch(board.Arrange{})
				}
			})
			if err != nil {
				return err
			}
			shape := "rows"
			if circle {
				shape = "a circle"
			}
			printSuccess("Arranged tiles into %s", shape)
			return nil
		},
	}

	cmd.Flags().BoolVar(&circle, "circle", false, "arrange into a circle instead of rows")

	return cmd
}

// showCommand creates the show command: a static render of a board file.
func (c *CLI) showCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a board without opening the interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := boardFlag(cmd)
			tiles, err := boardio.Read(path)
			if err != nil {
				return err
			}
			if len(tiles) == 0 {
				printInfo("Board is empty")
				return nil
			}

			fmt.Println(tui.RenderBoard(tiles, width, height))
			printDetail("%d tiles · %s", len(tiles), path)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", int(batchWindow.W), "render width in cells")
	cmd.Flags().IntVar(&height, "height", int(batchWindow.H), "render height in cells")

	return cmd
}
