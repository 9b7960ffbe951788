// Command pegspec is the CLI surface over the grammar reader, the
// parse engine, and specification persistence (internal/specrepo).
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/adamtc007/pegspec/internal/clicmd"
	"github.com/adamtc007/pegspec/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:   "pegspec",
		Short: "Interpreter for a parameterised, PEG-like grammar description language",
	}

	root.AddCommand(
		clicmd.ParseCommand(),
		clicmd.CheckCommand(),
		clicmd.FmtCommand(),
		clicmd.RepoCommand(),
	)

	if config.IsMockMode() {
		log.SetPrefix("pegspec(mock): ")
	}

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
