package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

var idsQuiet bool

var idsCmd = &cobra.Command{
	Use:   "ids <resource>",
	Short: "List the identifiers of a resource",
	Long: `Walks the paginated listing endpoint of a resource and prints every
identifier in the order the API returned them, without loading anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runIDs,
}

func init() {
	idsCmd.Flags().BoolVarP(&idsQuiet, "quiet", "q", false, "Print only the totals")
	rootCmd.AddCommand(idsCmd)
}

func runIDs(cmd *cobra.Command, args []string) error {
	resource := args[0]
	if err := domain.ValidateResourceName(resource); err != nil {
		return err
	}

	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}

	release, err := openServices(*settings)
	if err != nil {
		return err
	}
	defer release()

	if ingestor == nil {
		return errors.New("ingest service not configured")
	}

	ids, count, err := ingestor.ListResourceIDs(cmd.Context(), resource)
	if err != nil {
		return err
	}

	if !idsQuiet {
		for _, id := range ids {
			cmd.Println(id.String())
		}
	}
	cmd.Printf("%s: %d identifiers (API reports %d)\n", resource, len(ids), count)
	return nil
}
