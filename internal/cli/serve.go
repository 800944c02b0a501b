package cli

import (
	"github.com/spf13/cobra"

	"github.com/tilery/tilery/internal/server"
)

// serveCommand creates the serve command: run the share server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the share server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(server.Config{
				Addr:    addr,
				BaseURL: c.Config.Share.BaseURL,
				Store:   st,
				Logger:  loggerFromContext(cmd.Context()),
			})
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
