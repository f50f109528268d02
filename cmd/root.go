package cmd

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqdiff/application"
	"github.com/rios0rios0/reqdiff/config"
	"github.com/rios0rios0/reqdiff/domain"
	"github.com/rios0rios0/reqdiff/infrastructure/report"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	configPath      string
	verbose         bool
	includeRemovals bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "reqdiff",
	Short: "Extract package change records from dependency-manifest diffs",
	Long: `A CLI tool that extracts structured per-package version-change records
from unified diffs of pip-style requirement files.

Diffs can come from a literal diff file (or stdin), from two directory
snapshots of manifest files, or from two refs of a local Git repository.
The extracted records feed ticket previews and per-package ticket files.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
		logger.SetFormatter(&logger.TextFormatter{
			ForceColors:   true,
			FullTimestamp: true,
		})
		logger.SetOutput(os.Stderr)
		if verbose || os.Getenv("DEBUG") == "true" {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&includeRemovals, "include-removals", false,
		"Include REMOVE records in the output")
}

// loadConfig loads the configured or auto-detected config file, falling back
// to built-in defaults when none exists.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults")
			return config.Default(), nil
		}
		path = found
	}
	logger.Infof("Using config file: %s", path)
	return config.Load(path)
}

// extract runs the extraction service for one diff source.
func extract(
	ctx context.Context,
	cfg *config.Config,
	src domain.DiffSource,
) ([]domain.PackageChange, []domain.Advisory, error) {
	svc, err := application.BuildExtractService(cfg)
	if err != nil {
		return nil, nil, err
	}

	set, advisories, err := svc.Extract(ctx, src, application.ExtractOptions{
		IncludeRemovals: includeRemovals || cfg.IncludeRemovals,
		Verbose:         verbose,
	})
	if err != nil {
		return nil, nil, err
	}
	return set.Records(), advisories, nil
}

// render writes records to stdout in the requested format.
func render(format string, records []domain.PackageChange, advisories []domain.Advisory) error {
	if format == "yaml" {
		return report.RenderYAML(os.Stdout, records)
	}
	report.RenderPreview(os.Stdout, records, advisories)
	return nil
}

func ticketMeta(cfg *config.Config) report.TicketMeta {
	return report.TicketMeta{
		Release:     cfg.Ticket.Release,
		UpstreamURL: cfg.Ticket.UpstreamURL,
		Project:     cfg.Ticket.Project,
		Assignee:    cfg.Ticket.Assignee,
		Components:  cfg.Ticket.Components,
		Label:       cfg.Ticket.Label,
	}
}
