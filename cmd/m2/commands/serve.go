package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/m2/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var so app.ServeOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local repository over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Serve(cmd.Context(), c.opts, so)
		},
	}
	cmd.Flags().StringVar(&so.Addr, "addr", app.DefaultServeAddr, "Listen address")
	cmd.Flags().BoolVar(&so.Writable, "writable", false, "Accept uploads (PUT) into the repository")
	return cmd
}
