// Package clicmd wires pegspec's Cobra commands, one constructor per
// file in the teacher's internal/cli command-per-file layout
// (migrate_vocabulary.go, grammar_commands.go).
package clicmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adamtc007/pegspec/internal/action"
	"github.com/adamtc007/pegspec/internal/builtin"
	"github.com/adamtc007/pegspec/internal/peg"
	"github.com/adamtc007/pegspec/internal/spec"
	"github.com/adamtc007/pegspec/internal/trace"
)

// ParseCommand builds "pegspec parse <grammar-file> <start-rule> <input-file>".
func ParseCommand() *cobra.Command {
	var (
		closed    bool
		withTrace bool
	)

	cmd := &cobra.Command{
		Use:   "parse <grammar-file> <start-rule> <input-file>",
		Short: "Parse an input file against a rule in a specification",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], args[1], args[2], closed, withTrace)
		},
	}

	cmd.Flags().BoolVar(&closed, "closed", true, "require the entire input to be consumed")
	cmd.Flags().BoolVar(&withTrace, "trace", false, "print rule enter/exit/backtrack events")

	return cmd
}

func runParse(cmd *cobra.Command, grammarFile, startRule, inputFile string, closed, withTrace bool) error {
	source, err := os.ReadFile(grammarFile)
	if err != nil {
		return fmt.Errorf("failed to read grammar file %q: %w", grammarFile, err)
	}
	input, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file %q: %w", inputFile, err)
	}

	s, err := spec.Parse(string(source))
	if err != nil {
		return fmt.Errorf("failed to load specification: %w", err)
	}
	if err := builtin.Merge(s); err != nil {
		return fmt.Errorf("failed to load standard library: %w", err)
	}

	p := peg.NewParser(string(input), s, builtin.Context(), action.NewEvaluator())
	var rec *trace.Recorder
	if withTrace {
		rec = trace.NewRecorder()
		p.SetTracer(rec)
	}

	result, err := p.Parse(startRule, closed)

	if withTrace {
		for _, ev := range rec.Events {
			fmt.Fprintln(cmd.ErrOrStderr(), ev.String())
		}
	}

	if err != nil {
		if pf, ok := err.(*peg.ParseFail); ok {
			return fmt.Errorf("parse failed at position %d: %s", pf.Position, pf.Error())
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%v\n", result)
	return nil
}
