package cmd

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqdiff/infrastructure/report"
	"github.com/rios0rios0/reqdiff/infrastructure/source"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var ticketsOutDir string

//nolint:gochecknoglobals // required by cobra CLI pattern
var ticketsCmd = &cobra.Command{
	Use:   "tickets [diff-file]",
	Short: "Write per-package ticket files from a unified diff",
	Long: `Extract package change records from a diff and write one ticket
YAML file per package, ready for the downstream ticketing workflow.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTickets,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	ticketsCmd.Flags().StringVar(&ticketsOutDir, "out", "ticket_text",
		"Directory to write ticket files into")
	rootCmd.AddCommand(ticketsCmd)
}

func runTickets(_ *cobra.Command, args []string) error {
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

	written, err := report.WriteTicketFiles(ticketsOutDir, records, ticketMeta(cfg))
	if err != nil {
		return err
	}

	for _, adv := range advisories {
		logger.Warnf("%s: %s", adv.Kind, adv.Detail)
	}
	fmt.Printf("Generated %d ticket file(s) in %s\n", len(written), ticketsOutDir)
	return nil
}
