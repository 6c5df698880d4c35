package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [resource]",
	Short: "Show ingestion history",
	Long: `Lists recorded ingestion runs, newest first. Each run records the load
mode, how many identifiers the API reported and discovered, how many rows
were loaded, and the error that stopped it if it failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum runs to show (0 for all)")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	resource := ""
	if len(args) > 0 {
		resource = args[0]
	}

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

	runs, err := inventory.Runs(cmd.Context(), resource)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}
	if runsLimit > 0 && len(runs) > runsLimit {
		runs = runs[:runsLimit]
	}

	renderRuns(cmd.OutOrStdout(), runs)
	return nil
}
