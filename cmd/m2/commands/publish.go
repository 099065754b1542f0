package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	var (
		file      string
		specifier string
	)
	cmd := &cobra.Command{
		Use:   "install group:artifact:version",
		Short: "Install a file into the local repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := domain.ParseBareCoordinates(args[0])
			if err != nil {
				return err
			}
			spec, err := domain.ParseDeploySpecifier(specifier)
			if err != nil {
				return err
			}
			req, err := domain.NewInstallRequest(coords, spec, file)
			if err != nil {
				return err
			}
			outcome, err := c.app.Install(cmd.Context(), c.opts, req)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", outcome.Coordinates, outcome.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "File to install")
	cmd.Flags().StringVarP(&specifier, "type", "t", domain.DefaultExtension, "Classifier and extension as [classifier:]extension")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *CLI) newDeployCmd() *cobra.Command {
	var (
		repository string
		artifacts  []string
	)
	cmd := &cobra.Command{
		Use:   "deploy group:artifact:version",
		Short: "Upload files to a configured remote repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := domain.ParseBareCoordinates(args[0])
			if err != nil {
				return err
			}
			files, err := parseArtifactFlags(artifacts)
			if err != nil {
				return err
			}
			req, err := domain.NewDeployRequest(coords, files)
			if err != nil {
				return err
			}
			if err := c.app.Deploy(cmd.Context(), c.opts, repository, req); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deployed %s to %s\n", coords, repository)
			return nil
		},
	}
	cmd.Flags().StringVarP(&repository, "repository", "r", "", "Id of the configured target repository")
	cmd.Flags().StringArrayVarP(&artifacts, "artifact", "a", nil, "File to deploy as [classifier:]extension=PATH")
	_ = cmd.MarkFlagRequired("repository")
	_ = cmd.MarkFlagRequired("artifact")
	return cmd
}

func parseArtifactFlags(values []string) (map[domain.DeploySpecifier]string, error) {
	files := make(map[domain.DeploySpecifier]string, len(values))
	for _, v := range values {
		spec, path, ok := strings.Cut(v, "=")
		if !ok || path == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidDeploySpecifier, "expected [classifier:]extension=PATH"), "input", v)
		}
		s, err := domain.ParseDeploySpecifier(spec)
		if err != nil {
			return nil, err
		}
		if _, dup := files[s]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidDeploySpecifier, "specifier given twice"), "input", v)
		}
		files[s] = path
	}
	return files, nil
}
