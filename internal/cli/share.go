package cli

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tilery/tilery/pkg/boardio"
	"github.com/tilery/tilery/pkg/share"
)

// shareCommand creates the share command: upload the board and print (and
// copy) its URL.
func (c *CLI) shareCommand() *cobra.Command {
	var noCopy bool

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Upload a board to the share server and print its URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles, err := boardio.Read(boardFlag(cmd))
			if err != nil {
				return err
			}

			client, err := newShareClient(c.Config.Share.BaseURL)
			if err != nil {
				return err
			}

			spin := newSpinnerWithContext(cmd.Context(), "uploading board")
			spin.Start()
			result, err := client.Create(cmd.Context(), share.Encode(tiles))
			spin.Stop()
			if err != nil {
				return err
			}

			printSuccess("Board shared as %s", StyleHighlight.Render(result.Code))
			printFile(result.URL)

			if !noCopy {
				// Clipboard access fails in headless environments; the URL
				// is printed either way.
				if err := clipboard.WriteAll(result.URL); err != nil {
					c.Logger.Debug("clipboard unavailable", "error", err)
				} else {
					printDetail("URL copied to clipboard")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "do not copy the URL to the clipboard")

	return cmd
}

// openCommand creates the open command: download a shared board into a
// local board file.
func (c *CLI) openCommand() *cobra.Command {
	var play bool

	cmd := &cobra.Command{
		Use:   "open [code|url]",
		Short: "Download a shared board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseShareRef(args[0])
			if err != nil {
				return err
			}

			client, err := newShareClient(c.Config.Share.BaseURL)
			if err != nil {
				return err
			}

			spin := newSpinnerWithContext(cmd.Context(), "fetching board")
			spin.Start()
			payload, err := client.Fetch(cmd.Context(), code)
			spin.Stop()
			if err != nil {
				return err
			}

			tiles, err := share.Decode(payload)
			if err != nil {
				return err
			}

			path := boardFlag(cmd)
			if err := boardio.Write(path, tiles); err != nil {
				return err
			}
			printSuccess("Opened board %s (%d tiles)", StyleHighlight.Render(code), len(tiles))
			printFile(path)

			if play {
				return c.runPlay(cmd.Context(), playOpts{board: path})
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&play, "play", false, "open the board interactively after downloading")

	return cmd
}
