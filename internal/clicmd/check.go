package clicmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adamtc007/pegspec/internal/builtin"
	"github.com/adamtc007/pegspec/internal/spec"
)

// CheckCommand builds "pegspec check <grammar-file>".
func CheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <grammar-file>",
		Short: "Load and seal a specification, reporting structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, grammarFile string) error {
	source, err := os.ReadFile(grammarFile)
	if err != nil {
		return fmt.Errorf("failed to read grammar file %q: %w", grammarFile, err)
	}

	s, err := spec.Parse(string(source))
	if err != nil {
		return fmt.Errorf("specification is invalid: %w", err)
	}
	if err := builtin.Merge(s); err != nil {
		return fmt.Errorf("failed to load standard library: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rule(s) defined\n", s.Len())
	for _, name := range s.Names() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
	return nil
}
