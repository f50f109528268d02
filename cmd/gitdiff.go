package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/reqdiff/domain"
	"github.com/rios0rios0/reqdiff/infrastructure/source"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	gitFromRef string
	gitToRef   string
	gitFormat  string
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var gitCmd = &cobra.Command{
	Use:   "git [repo-path]",
	Short: "Extract package changes between two refs of a local repository",
	Long: `Diff the manifest files between two refs of a local Git repository
(in-process, no git binary required) and extract the package change records.

Defaults to the current directory and the refs configured under "git" in the
config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGit,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	gitCmd.Flags().StringVar(&gitFromRef, "from", "", "Old ref (default: config git.old_ref)")
	gitCmd.Flags().StringVar(&gitToRef, "to", "", "New ref (default: config git.new_ref)")
	gitCmd.Flags().StringVar(&gitFormat, "format", "table", "Output format (table, yaml)")
	rootCmd.AddCommand(gitCmd)
}

func runGit(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}
	oldRef := gitFromRef
	if oldRef == "" {
		oldRef = cfg.Git.OldRef
	}
	newRef := gitToRef
	if newRef == "" {
		newRef = cfg.Git.NewRef
	}

	classifier := domain.NewPathClassifier(cfg.AllowedManifests, cfg.ExcludedPrefixes)
	src := source.NewGitSource(repoPath, oldRef, newRef, classifier)

	records, advisories, err := extract(ctx, cfg, src)
	if err != nil {
		return err
	}
	return render(gitFormat, records, advisories)
}
