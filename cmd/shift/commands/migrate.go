package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shift/internal/app"
)

func (c *CLI) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [package@version]",
		Short: "Update package.json and collect the migrations owed by an upgrade",
		Long: `Resolve the upgrade of a package and every package it pulls along.

The target is "package@version", a bare package (upgraded to latest),
a bare version or a dist-tag (applied to the default package).`,
		Example: `  shift migrate 12.3
  shift migrate @nrwl/workspace@next
  shift migrate mypackage@2.0.0 --from="mypackage@1.4.0" --to="typescript@4.1.2"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "latest"
			if len(args) == 1 {
				target = args[0]
			}
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			registry, _ := cmd.Flags().GetString("registry")

			plan, err := c.app.Migrate(cmd.Context(), app.MigrateOptions{
				Target:      target,
				From:        from,
				To:          to,
				DryRun:      dryRun,
				NoCache:     noCache,
				Concurrency: concurrency,
				Registry:    registry,
			})
			if err != nil {
				return err
			}

			renderPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	cmd.Flags().String("from", "", `Use the provided versions as installed, e.g. "@nrwl/angular@12.0.0,rxjs@6.5.0"`)
	cmd.Flags().String("to", "", `Use the provided versions as targets, e.g. "@nrwl/angular@12.0.0,typescript@4.1.2"`)
	cmd.Flags().BoolP("dry-run", "d", false, "Print the plan without writing package.json or migrations.json")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the metadata cache")
	cmd.Flags().IntP("concurrency", "j", 0, "Maximum number of concurrent registry requests (defaults to the configured value)")
	cmd.Flags().String("registry", "", "Registry URL overriding the configured one")
	return cmd
}
