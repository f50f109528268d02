package report

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/reqdiff/domain"
)

// TicketMeta carries the release metadata embedded in ticket bodies.
type TicketMeta struct {
	Release     string
	UpstreamURL string
	Project     string
	Assignee    string
	Components  []string
	Label       string
}

// Ticket is the serialized form of one package change, written as one YAML
// file per package for the downstream ticketing workflow. The project,
// assignee, components and labels fields are the routing metadata that
// workflow consumes when it submits the ticket.
type Ticket struct {
	PackageName     string   `yaml:"package_name"`
	OldVersion      string   `yaml:"old_version"`
	NewVersion      string   `yaml:"new_version"`
	ChangeType      string   `yaml:"change_type"`
	Files           []string `yaml:"files"`
	Title           string   `yaml:"title"`
	Project         string   `yaml:"project,omitempty"`
	Assignee        string   `yaml:"assignee,omitempty"`
	Components      []string `yaml:"components,omitempty"`
	Labels          []string `yaml:"labels,omitempty"`
	BodyDescription string   `yaml:"body_description"`
}

// NewTicket builds the ticket for one package change.
func NewTicket(rec domain.PackageChange, meta TicketMeta) Ticket {
	var labels []string
	if meta.Label != "" {
		labels = []string{meta.Label}
	}
	return Ticket{
		PackageName:     rec.Name,
		OldVersion:      rec.OldVersion,
		NewVersion:      rec.NewVersion,
		ChangeType:      string(rec.Type),
		Files:           rec.Files,
		Title:           TicketTitle(rec),
		Project:         meta.Project,
		Assignee:        meta.Assignee,
		Components:      meta.Components,
		Labels:          labels,
		BodyDescription: ticketBody(rec, meta),
	}
}

// TicketTitle returns the epic title for a package change.
func TicketTitle(rec domain.PackageChange) string {
	return fmt.Sprintf("builder: %s package update request", rec.Name)
}

// ticketBody renders the ticket description prose for one change record.
func ticketBody(rec domain.PackageChange, meta TicketMeta) string {
	var changeWord, versionInfo, requested string
	switch rec.Type {
	case domain.ChangeNew:
		changeWord = "addition"
		versionInfo = fmt.Sprintf("New package: %s >= %s", rec.Name, rec.NewVersion)
		requested = fmt.Sprintf("%s>=%s", rec.Name, rec.NewVersion)
	case domain.ChangeRemove:
		changeWord = "removal"
		versionInfo = fmt.Sprintf("Removed package: %s %s", rec.Name, rec.OldVersion)
		requested = fmt.Sprintf("%s>=%s", rec.Name, rec.OldVersion)
	default:
		changeWord = "update"
		versionInfo = fmt.Sprintf("Update: %s from %s to %s",
			rec.Name, rec.OldVersion, rec.NewVersion)
		requested = fmt.Sprintf("%s>=%s", rec.Name, rec.NewVersion)
	}

	release := meta.Release
	if release == "" {
		release = "the next release"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Requested Package Name and Version:\n\n%s\n\n", requested)
	fmt.Fprintf(&b, "Brief Explanation for request:\n\n")
	fmt.Fprintf(&b, "This package %s is required for %s compatibility.\n\n", changeWord, release)
	fmt.Fprintf(&b, "%s\n\n", versionInfo)
	fmt.Fprintf(&b, "This change appears in the following requirement files: %s\n",
		strings.Join(rec.Files, ", "))
	if meta.UpstreamURL != "" {
		fmt.Fprintf(&b, "\nFor upstream reference, see: %s\n", meta.UpstreamURL)
	}
	return b.String()
}
