package clicmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/adamtc007/pegspec/internal/config"
	"github.com/adamtc007/pegspec/internal/specrepo"
)

// RepoCommand builds "pegspec repo save|load|list", dispatched against
// whichever specrepo.Repository PEGSPEC_STORE_TYPE selects, mirroring
// the teacher's migrate-vocabulary command's config-driven connection
// setup.
func RepoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Save, load or list stored specifications",
	}
	cmd.AddCommand(repoSaveCommand(), repoLoadCommand(), repoListCommand())
	return cmd
}

func openRepository() (specrepo.Repository, error) {
	cfg := config.GetStoreConfig()
	switch cfg.Type {
	case config.MockStore:
		return specrepo.NewMockRepository(cfg.MockDataPath)
	default:
		db, err := sqlx.Open("postgres", cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return specrepo.NewPostgresRepository(db), nil
	}
}

func repoSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <grammar-file>",
		Short: "Save a specification's source text under name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepository()
			if err != nil {
				return err
			}
			source, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read grammar file %q: %w", args[1], err)
			}
			rec, err := repo.Save(context.Background(), args[0], string(source))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s version %d\n", rec.Name, rec.Version)
			return nil
		},
	}
}

func repoLoadCommand() *cobra.Command {
	var version int
	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Print the latest (or a specific) stored version of a specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepository()
			if err != nil {
				return err
			}
			var rec *specrepo.Record
			if version > 0 {
				rec, err = repo.Load(context.Background(), args[0], version)
			} else {
				rec, err = repo.LoadLatest(context.Background(), args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec.Source)
			return nil
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "a specific version; defaults to the latest")
	return cmd
}

func repoListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <name>",
		Short: "List stored versions of a specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepository()
			if err != nil {
				return err
			}
			recs, err := repo.ListVersions(context.Background(), args[0])
			if err != nil {
				return err
			}
			for _, rec := range recs {
				fmt.Fprintf(cmd.OutOrStdout(), "v%d\t%s\n", rec.Version, rec.CreatedAt.Format("2006-01-02T15:04:05Z"))
			}
			return nil
		},
	}
}
