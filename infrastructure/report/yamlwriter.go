package report

import (
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/reqdiff/domain"
)

const (
	ticketDirMode  = 0o755
	ticketFileMode = 0o644
)

// WriteTicketFiles writes one <package>.yaml per record into dir, creating
// the directory if needed. It returns the paths written, in record order.
func WriteTicketFiles(dir string, records []domain.PackageChange, meta TicketMeta) ([]string, error) {
	if err := os.MkdirAll(dir, ticketDirMode); err != nil {
		return nil, fmt.Errorf("failed to create ticket directory %q: %w", dir, err)
	}

	written := make([]string, 0, len(records))
	for _, rec := range records {
		data, err := yaml.Marshal(NewTicket(rec, meta))
		if err != nil {
			return written, fmt.Errorf("failed to marshal ticket for %q: %w", rec.Name, err)
		}

		path := filepath.Join(dir, rec.Name+".yaml")
		if writeErr := os.WriteFile(path, data, ticketFileMode); writeErr != nil {
			return written, fmt.Errorf("failed to write ticket file %q: %w", path, writeErr)
		}
		logger.Debugf("Wrote ticket file %s", path)
		written = append(written, path)
	}
	return written, nil
}
