package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show raw tables and their row counts",
	Long: `Lists every raw_<resource> table in the database with its row count.
A raw_<resource>__staging table is left behind by a swap load that did not
finish; the live table next to it is unchanged.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	settings, err := currentSettings()
	if err != nil {
		return err
	}

	release, err := openServices(*settings)
	if err != nil {
		return err
	}
	defer release()

	if inventory == nil {
		return errors.New("inventory service not configured")
	}

	tables, err := inventory.Tables(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Database: %s\n", settings.Store.Path)
	if len(tables) == 0 {
		cmd.Println("No raw tables yet. Run 'pokeelt ingest' to load some.")
		return nil
	}
	renderTables(cmd.OutOrStdout(), tables)

	// Latest outcome per resource that has a live or staging table.
	var latest []domain.IngestRun
	seen := make(map[string]bool)
	for _, info := range tables {
		resource := domain.ResourceOfTable(info.Name)
		if seen[resource] {
			continue
		}
		seen[resource] = true

		run, err := inventory.LatestRun(cmd.Context(), resource)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		latest = append(latest, *run)
	}
	if len(latest) > 0 {
		cmd.Println(styles.Title.Render("Latest runs"))
		renderRuns(cmd.OutOrStdout(), latest)
	}
	return nil
}
