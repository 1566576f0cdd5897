package cmd

import (
	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Fetch or refresh artifacts without launching",
		Long: `Bring the launcher jar and its first-run artifacts up to date.

Artifacts already on disk with a matching SHA-256 digest are not downloaded
again. First-run artifacts (the debugger agent) are only fetched when the
launcher jar was missing.

Examples:
  celestial update
  celestial update -o json
  celestial update --manifest ./manifest.yaml --base-dir /tmp/celestial`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := a.manifest()
			if err != nil {
				return err
			}

			report, err := a.orchestrator(manifest).CheckUpdate(cmd.Context(), a.settings.BaseDir, a.primaryPath(manifest))
			if err != nil {
				return err
			}
			return a.writer().Write(report)
		},
	}
}
