package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqdiff/infrastructure/source"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	snapshotOldDir string
	snapshotNewDir string
	snapshotFormat string
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Extract package changes between two manifest snapshots",
	Long: `Compare two directory snapshots of manifest files and extract the
package change records between them.`,
	RunE: runSnapshot,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	snapshotCmd.Flags().StringVar(&snapshotOldDir, "old", "", "Directory with the old manifest snapshot")
	snapshotCmd.Flags().StringVar(&snapshotNewDir, "new", "", "Directory with the new manifest snapshot")
	snapshotCmd.Flags().StringVar(&snapshotFormat, "format", "table", "Output format (table, yaml)")
	_ = snapshotCmd.MarkFlagRequired("old")
	_ = snapshotCmd.MarkFlagRequired("new")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, advisories, err := extract(ctx, cfg,
		source.NewSnapshotSource(snapshotOldDir, snapshotNewDir))
	if err != nil {
		return err
	}
	return render(snapshotFormat, records, advisories)
}
