package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/logger"
)

var (
	ingestMode     string
	ingestPageSize int
	ingestRate     float64
	ingestTimeout  time.Duration
	ingestContinue bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [resource...]",
	Short: "Load resources into raw tables",
	Long: `Discovers every record of each resource through the paginated listing
endpoint, then fetches the records one by one into raw_<resource>.

With no arguments the resources from ingest.resources are loaded in order.
The first failure stops the batch unless --continue-on-error is set.

In swap mode (the default) records are written to raw_<resource>__staging
and replace the live table only when every record has loaded. In direct
mode the live table is recreated up front and a failure leaves the rows
loaded so far.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestMode, "mode", "", "Load mode: swap or direct")
	ingestCmd.Flags().IntVar(&ingestPageSize, "page-size", 0, "Identifiers requested per listing page")
	ingestCmd.Flags().Float64Var(&ingestRate, "rate", 0, "Maximum requests per second")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 0, "Per-request timeout")
	ingestCmd.Flags().BoolVar(&ingestContinue, "continue-on-error", false, "Keep going after a resource fails")
	rootCmd.AddCommand(ingestCmd)
}

// applyIngestFlags copies every flag the user set onto settings. Zero values
// such as --rate 0 or --continue-on-error=false replace the stored setting.
func applyIngestFlags(cmd *cobra.Command, settings *domain.IngestSettings) {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		settings.Ingest.Mode = domain.LoadMode(ingestMode)
	}
	if flags.Changed("page-size") {
		settings.API.PageSize = ingestPageSize
	}
	if flags.Changed("rate") {
		settings.API.RequestsPerSecond = ingestRate
	}
	if flags.Changed("timeout") {
		settings.API.Timeout = ingestTimeout
	}
	if flags.Changed("continue-on-error") {
		settings.Ingest.ContinueOnError = ingestContinue
	}
}

// effectiveSettings applies flag overrides to the stored settings.
func effectiveSettings(cmd *cobra.Command) (*domain.IngestSettings, error) {
	settings, err := currentSettings()
	if err != nil {
		return nil, err
	}
	applyIngestFlags(cmd, settings)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}
	for _, resource := range args {
		if err := domain.ValidateResourceName(resource); err != nil {
			return err
		}
	}

	release, err := openServices(*settings)
	if err != nil {
		return err
	}
	defer release()

	if ingestor == nil {
		return errors.New("ingest service not configured")
	}

	resources := args
	if len(resources) == 0 {
		resources = settings.Ingest.Resources
	}

	ctx := cmd.Context()
	if err := checkResources(cmd, settings, resources); err != nil {
		return err
	}
	cmd.Printf("Ingesting %d resource(s) in %s mode...\n", len(resources), settings.Ingest.Mode)

	var runs []domain.IngestRun
	if isTerminal(cmd.OutOrStdout()) {
		runs, err = ingestEach(cmd, resources, settings.Ingest.ContinueOnError)
	} else {
		runs, err = ingestor.IngestAll(ctx, resources, settings.Ingest.ContinueOnError)
	}

	if len(runs) > 0 {
		renderRuns(cmd.OutOrStdout(), runs)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Println(styles.Success.Render("All resources loaded."))
	return nil
}

// checkResources loads the API description, downloading it on first use, and
// warns about resources it does not list. Unlisted resources are still
// ingested.
func checkResources(cmd *cobra.Command, settings *domain.IngestSettings, resources []string) error {
	if specLoader == nil {
		return errors.New("spec service not configured")
	}

	spec, err := specLoader.Load(cmd.Context(), settings.Spec.URL, settings.Spec.Path)
	if err != nil {
		return fmt.Errorf("load API description: %w", err)
	}
	if spec == nil {
		return nil
	}

	for _, resource := range resources {
		if !spec.HasResource(settings.API.PathPrefix, resource) {
			logger.Warn("%s is not listed in %s", resource, settings.Spec.Path)
		}
	}
	return nil
}

// ingestEach loads resources one at a time with a progress bar, following the
// same stop-or-continue rule as a batch ingestion.
func ingestEach(cmd *cobra.Command, resources []string, continueOnError bool) ([]domain.IngestRun, error) {
	var runs []domain.IngestRun
	var errs []error
	for _, resource := range resources {
		run, err := ingestWithProgress(cmd.Context(), cmd.OutOrStdout(), ingestor, resource)
		if run != nil {
			runs = append(runs, *run)
		}
		if err != nil {
			err = fmt.Errorf("ingest %s: %w", resource, err)
			if !continueOnError {
				return runs, err
			}
			errs = append(errs, err)
		}
	}
	return runs, errors.Join(errs...)
}
