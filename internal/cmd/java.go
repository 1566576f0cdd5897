package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/earthsworth/celestial-bootstrap/internal/java"
)

type javaResult struct {
	Runtime    *java.Runtime `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Candidates []string      `json:"candidates" yaml:"candidates"`
}

func (r javaResult) String() string {
	return r.Runtime.String()
}

func newJavaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "java",
		Short: "Show the Java 21 runtime that would be used",
		Long: `Search JAVA_HOME and then PATH for a Java 21 runtime and print it.

Exits nonzero with install instructions when none is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locator := a.locator()

			rt, err := locator.Locate(cmd.Context())
			if err != nil {
				if errors.Is(err, java.ErrRuntimeNotFound) {
					return fmt.Errorf("%w\n%s", err, java.Detect().InstallHint())
				}
				return err
			}
			return a.writer().Write(javaResult{Runtime: rt, Candidates: locator.Candidates()})
		},
	}
}
