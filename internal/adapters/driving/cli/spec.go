package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var specListResources bool

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Show the cached API description",
	Long: `Loads the OpenAPI description of the API. The document is downloaded
from spec.url the first time and cached at spec.path; later runs read the
cached file and never download it again. Delete the file to refresh it.`,
	Args: cobra.NoArgs,
	RunE: runSpec,
}

func init() {
	specCmd.Flags().BoolVar(&specListResources, "resources", false, "List every resource the API describes")
	rootCmd.AddCommand(specCmd)
}

func runSpec(cmd *cobra.Command, _ []string) error {
	settings, err := currentSettings()
	if err != nil {
		return err
	}

	release, err := openServices(*settings)
	if err != nil {
		return err
	}
	defer release()

	if specLoader == nil {
		return errors.New("spec service not configured")
	}

	spec, err := specLoader.Load(cmd.Context(), settings.Spec.URL, settings.Spec.Path)
	if err != nil {
		return err
	}

	names := spec.ResourceNames(settings.API.PathPrefix)
	cmd.Println(styles.Title.Render(spec.Title) + " " + styles.Muted.Render(spec.Version))
	cmd.Printf("OpenAPI %s, %d paths, %d resources\n", spec.OpenAPI, len(spec.Paths), len(names))
	cmd.Printf("Cached at %s\n", settings.Spec.Path)

	if specListResources {
		cmd.Println(strings.Join(names, "\n"))
	}
	return nil
}
