package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/m2/internal/app"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	var (
		pom        string
		scope      string
		extension  string
		exclusions []string
		optional   bool
	)
	cmd := &cobra.Command{
		Use:   "resolve [coordinates...]",
		Short: "Resolve the transitive dependencies of artifacts or of a POM",
		Long: "Resolve the transitive dependencies of artifacts or of a POM.\n\n" +
			"Coordinates are group:artifact[:extension[:classifier]]:version. When the extension\n" +
			"is omitted it is inferred from the packaging of the artifact's POM.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && pom == "" {
				_ = cmd.Help()
				return nil
			}

			option := domain.DependencyOption{Scope: scope}
			if cmd.Flags().Changed("optional") {
				option.Optional = &optional
			}
			for _, s := range exclusions {
				e, err := domain.ParseExclusion(s)
				if err != nil {
					return err
				}
				option.Exclusions = append(option.Exclusions, e)
			}

			reqs := make([]domain.DependencyRequest, 0, len(args))
			for _, arg := range args {
				coords, err := parseResolveCoordinates(arg, extension, cmd.Flags().Changed("extension"))
				if err != nil {
					return err
				}
				reqs = append(reqs, domain.DependencyRequest{Coordinates: coords, Option: option})
			}

			deps, err := c.app.Resolve(cmd.Context(), c.opts, app.ResolveOptions{Requests: reqs, POM: pom})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, a := range deps.Artifacts() {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", a.Coordinates, a.Scope)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pom, "pom", "", "Resolve the dependencies declared in this POM file")
	cmd.Flags().StringVarP(&scope, "scope", "s", "", "Scope of the requested artifacts (default: compile)")
	cmd.Flags().StringVarP(&extension, "extension", "e", "", "Extension of the requested artifacts")
	cmd.Flags().StringArrayVarP(&exclusions, "exclude", "x", nil, "Exclude group:artifact[:classifier[:extension]], * matches anything")
	cmd.Flags().BoolVar(&optional, "optional", false, "Mark the requested artifacts optional")
	return cmd
}

// parseResolveCoordinates parses s. Coordinates without an extension segment get the
// flag extension when one was given and an empty extension otherwise, which asks for
// inference from the POM packaging.
func parseResolveCoordinates(s, extension string, extensionSet bool) (domain.ArtifactCoordinates, error) {
	c, err := domain.ParseArtifactCoordinates(s)
	if err != nil {
		return domain.ArtifactCoordinates{}, err
	}
	if extensionSet {
		if extension == "" {
			return domain.ArtifactCoordinates{}, zerr.With(zerr.Wrap(domain.ErrInvalidCoordinates, "empty extension"), "input", s)
		}
		return c.WithExtension(extension), nil
	}
	if strings.Count(s, ":") == 2 {
		return c.WithExtension(""), nil
	}
	return c, nil
}
