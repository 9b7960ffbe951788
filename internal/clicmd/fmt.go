package clicmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adamtc007/pegspec/internal/grammar"
	"github.com/adamtc007/pegspec/internal/spec"
)

// FmtCommand builds "pegspec fmt <grammar-file>".
func FmtCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <grammar-file>",
		Short: "Round-trip a specification through the reader and canonical printer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args[0])
		},
	}
}

func runFmt(cmd *cobra.Command, grammarFile string) error {
	source, err := os.ReadFile(grammarFile)
	if err != nil {
		return fmt.Errorf("failed to read grammar file %q: %w", grammarFile, err)
	}

	s, err := spec.Parse(string(source))
	if err != nil {
		return fmt.Errorf("specification is invalid: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), grammar.FormatDefinitions(s.Definitions()))
	return nil
}
