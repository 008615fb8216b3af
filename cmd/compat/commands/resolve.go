package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/compat/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [id@version...]",
		Short: "Resolve compatibility details for packages",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			if len(args) == 0 && file == "" {
				_ = cmd.Help()
				return nil
			}

			packages, err := ParsePackageSpecs(args)
			if err != nil {
				return err
			}
			if file != "" {
				fromFile, err := LoadRequestFile(file)
				if err != nil {
					return err
				}
				packages = append(packages, fromFile...)
			}

			solution, _ := cmd.Flags().GetString("solution")
			persist, _ := cmd.Flags().GetBool("persist")
			strict, _ := cmd.Flags().GetBool("strict")
			asJSON, _ := cmd.Flags().GetBool("json")

			format := app.FormatText
			if asJSON {
				format = app.FormatJSON
			}

			return c.app.Resolve(cmd.Context(), app.ResolveOptions{
				Packages:                 packages,
				ContextPath:              solution,
				Persist:                  persist,
				ContinueOnPartialFailure: !strict,
				Output:                   cmd.OutOrStdout(),
				Format:                   format,
			})
		},
	}
	cmd.Flags().StringP("solution", "s", "", "Solution or project the packages belong to")
	cmd.Flags().BoolP("persist", "p", false, "Cache package documents on disk, namespaced by solution")
	cmd.Flags().Bool("strict", false, "Stop the checker fallback on malformed documents and fatal feed errors")
	cmd.Flags().StringP("file", "f", "", "Read requests from a YAML or JSON file")
	cmd.Flags().Bool("json", false, "Write the report as JSON")
	return cmd
}
