package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/earthsworth/celestial-bootstrap/internal/config"
)

type artifactView struct {
	config.Artifact `yaml:",inline"`
	Destination     string `json:"destination" yaml:"destination"`
	Present         bool   `json:"present" yaml:"present"`
}

type manifestView struct {
	BaseDir   string         `json:"base_dir" yaml:"base_dir"`
	Artifacts []artifactView `json:"artifacts" yaml:"artifacts"`
}

func (m manifestView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "base dir: %s", m.BaseDir)
	for _, a := range m.Artifacts {
		mark := "-"
		if a.Present {
			mark = "✓"
		}
		fmt.Fprintf(&b, "\n  %s %s (%s) -> %s", mark, a.DisplayName(), a.Policy, a.Destination)
	}
	return b.String()
}

func newManifestCmd(a *app) *cobra.Command {
	var resolved bool

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Show the artifacts an update keeps in place",
		Long: `Print the active manifest.

Text output lists each artifact's resolved destination and whether it is
already on disk. With -o yaml or -o json the manifest itself is printed, which
can be saved and passed back with --manifest. Add --resolved to get the
destination listing in those formats instead.

Without --manifest the built-in manifest is shown.

Examples:
  celestial manifest
  celestial manifest -o yaml > manifest.yaml
  celestial manifest -o json --resolved`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manifest()
			if err != nil {
				return err
			}
			w := a.writer()
			if w.Format().IsText() || resolved {
				return w.Write(newManifestView(a.settings.BaseDir, m))
			}
			return w.Write(m)
		},
	}

	cmd.Flags().BoolVar(&resolved, "resolved", false, "Print resolved destinations instead of the manifest")

	return cmd
}

func newManifestView(baseDir string, m *config.Manifest) manifestView {
	all := append([]config.Artifact{m.Primary}, m.Artifacts...)
	view := manifestView{BaseDir: baseDir, Artifacts: make([]artifactView, 0, len(all))}
	for _, artifact := range all {
		dst := artifact.Resolve(baseDir)
		view.Artifacts = append(view.Artifacts, artifactView{
			Artifact:    artifact,
			Destination: dst,
			Present:     fileExists(dst),
		})
	}
	return view
}
