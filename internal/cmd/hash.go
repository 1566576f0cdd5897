package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/earthsworth/celestial-bootstrap/internal/update"
)

type fileDigest struct {
	Path   string `json:"path" yaml:"path"`
	SHA256 string `json:"sha256" yaml:"sha256"`
}

type digestList []fileDigest

// String matches sha256sum output.
func (l digestList) String() string {
	lines := make([]string, len(l))
	for i, d := range l {
		lines[i] = d.SHA256 + "  " + d.Path
	}
	return strings.Join(lines, "\n")
}

func newHashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>...",
		Short: "Print SHA-256 digests in manifest format",
		Long: `Compute the SHA-256 digest of each file, as used in the sha256 field of a
manifest artifact.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digests := make(digestList, 0, len(args))
			for _, path := range args {
				sum, err := update.SHA256File(path)
				if err != nil {
					return fmt.Errorf("hash: %w", err)
				}
				digests = append(digests, fileDigest{Path: path, SHA256: sum})
			}
			return a.writer().Write(digests)
		},
	}
}
