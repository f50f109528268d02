package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqdiff/infrastructure/source"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var extractFormat string

//nolint:gochecknoglobals // required by cobra CLI pattern
var extractCmd = &cobra.Command{
	Use:   "extract [diff-file]",
	Short: "Extract package changes from a unified diff",
	Long: `Extract package change records from unified-diff text.

Reads the diff from the given file, or from stdin when no file is given
or the file is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	extractCmd.Flags().StringVar(&extractFormat, "format", "table",
		"Output format (table, yaml)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}

	records, advisories, err := extract(ctx, cfg, source.NewFileSource(path))
	if err != nil {
		return err
	}
	return render(extractFormat, records, advisories)
}
