package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tilery/tilery/pkg/errors"
)

// boardsCommand creates the boards command group for managing the local
// board store used by the share server.
func (c *CLI) boardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage stored boards",
	}

	cmd.AddCommand(c.boardsListCommand())
	cmd.AddCommand(c.boardsDeleteCommand())

	return cmd
}

// boardsListCommand creates the "boards list" subcommand.
func (c *CLI) boardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored board codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			codes, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(codes) == 0 {
				printInfo("No boards stored")
				return nil
			}
			for _, code := range codes {
				fmt.Println(code)
			}
			printDetail("%d boards", len(codes))
			return nil
		},
	}
}

// boardsDeleteCommand creates the "boards delete" subcommand.
func (c *CLI) boardsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [code]",
		Short: "Delete a stored board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			if err := errors.ValidateBoardCode(code); err != nil {
				return err
			}

			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), code); err != nil {
				return err
			}
			printSuccess("Deleted board %s", code)
			return nil
		},
	}
}
