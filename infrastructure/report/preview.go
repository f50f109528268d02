// Package report renders reconciled package changes for humans and for the
// ticket tooling: a fixed-width preview table, a YAML record dump, and
// per-package ticket files.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/reqdiff/domain"
)

const maxFilesShown = 2

// RenderPreview writes the change table to w, one row per package in
// first-observed diff order, followed by any advisories.
func RenderPreview(w io.Writer, records []domain.PackageChange, advisories []domain.Advisory) {
	fmt.Fprintf(w, "%-25s %-15s %-15s %-12s %s\n",
		"Package", "Old Version", "New Version", "Change Type", "Files")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, rec := range records {
		note := ""
		if isDowngrade(rec) {
			note = " (downgrade)"
		}
		fmt.Fprintf(w, "%-25s %-15s %-15s %-12s %s%s\n",
			rec.Name, rec.OldVersion, rec.NewVersion, rec.Type,
			formatFiles(rec.Files), note)
	}

	fmt.Fprintf(w, "\nTotal changes: %d\n", len(records))

	for _, adv := range advisories {
		fmt.Fprintf(w, "advisory: %s\n", formatAdvisory(adv))
	}
}

// RenderYAML writes the record set as a YAML document list, the minimum
// stable serialization consumers may rely on.
func RenderYAML(w io.Writer, records []domain.PackageChange) error {
	type recordDoc struct {
		Name       string   `yaml:"name"`
		OldVersion string   `yaml:"old_version"`
		NewVersion string   `yaml:"new_version"`
		ChangeType string   `yaml:"change_type"`
		Files      []string `yaml:"files"`
	}

	docs := make([]recordDoc, 0, len(records))
	for _, rec := range records {
		docs = append(docs, recordDoc{
			Name:       rec.Name,
			OldVersion: rec.OldVersion,
			NewVersion: rec.NewVersion,
			ChangeType: string(rec.Type),
			Files:      rec.Files,
		})
	}

	data, err := yaml.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if _, writeErr := w.Write(data); writeErr != nil {
		return fmt.Errorf("failed to write records: %w", writeErr)
	}
	return nil
}

// formatFiles shows the first files of a record and summarizes the rest.
func formatFiles(files []string) string {
	if len(files) <= maxFilesShown {
		return strings.Join(files, ", ")
	}
	return fmt.Sprintf("%s (+%d more)",
		strings.Join(files[:maxFilesShown], ", "), len(files)-maxFilesShown)
}

// isDowngrade reports whether an update moves to a lower version. Only
// well-formed semantic versions are compared; anything else is not flagged.
func isDowngrade(rec domain.PackageChange) bool {
	if rec.Type != domain.ChangeUpdate {
		return false
	}
	oldVer, newVer := "v"+rec.OldVersion, "v"+rec.NewVersion
	if !semver.IsValid(oldVer) || !semver.IsValid(newVer) {
		return false
	}
	return semver.Compare(oldVer, newVer) > 0
}

func formatAdvisory(adv domain.Advisory) string {
	var parts []string
	if adv.Package != "" {
		parts = append(parts, adv.Package)
	}
	if adv.Path != "" {
		parts = append(parts, adv.Path)
	}
	prefix := string(adv.Kind)
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, " "))
	}
	return fmt.Sprintf("%s: %s", prefix, adv.Detail)
}
