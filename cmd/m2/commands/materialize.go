package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/ui/output"
	"go.trai.ch/m2/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newDownloadCmd() *cobra.Command {
	return c.newMaterializeCmd(
		"download",
		"Download artifacts and copy them into the build output tree",
		false,
	)
}

func (c *CLI) newLocalizeCmd() *cobra.Command {
	return c.newMaterializeCmd(
		"localize",
		"Download artifacts into the local repository and print their paths",
		true,
	)
}

func (c *CLI) newMaterializeCmd(name, short string, localize bool) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   name + " coordinates...",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			coords := make([]domain.ArtifactCoordinates, 0, len(args))
			for _, arg := range args {
				co, err := domain.ParseArtifactCoordinates(arg)
				if err != nil {
					return err
				}
				coords = append(coords, co)
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			if watch {
				r := output.NewRenderer(errOut)
				return c.app.Watch(cmd.Context(), c.opts, localize, coords, func(results *domain.ArtifactResults) {
					_ = printResults(out, errOut, results)
					_, _ = fmt.Fprintln(errOut, r.NewStyle().Foreground(style.Slate).Render(style.Tilde+" watching for changes"))
				})
			}

			run := c.app.Download
			if localize {
				run = c.app.Localize
			}
			results, err := run(cmd.Context(), c.opts, coords)
			if err != nil {
				return err
			}
			return printResults(out, errOut, results)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Run again whenever a resolved file changes")
	return cmd
}

// printResults writes one line per artifact and fails when any artifact failed.
// Failures and the summary go to errOut so out stays machine readable.
func printResults(out, errOut io.Writer, results *domain.ArtifactResults) error {
	r := output.NewRenderer(errOut)
	red := r.NewStyle().Foreground(style.Red)
	failed := 0
	for c, res := range results.All() {
		outcome, err := res.Get()
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(errOut, "%s %s\t%s: %v\n", red.Render(style.Cross), c, red.Render("FAILED"), err)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s\t%s\n", c, outcome.Path)
	}
	if failed > 0 {
		return zerr.With(zerr.Wrap(domain.ErrResolution, fmt.Sprintf("%d of %d artifacts failed", failed, results.Len())), "failed", failed)
	}
	_, _ = fmt.Fprintf(errOut, "%s %d artifacts\n", r.NewStyle().Foreground(style.Green).Render(style.Check), results.Len())
	return nil
}
