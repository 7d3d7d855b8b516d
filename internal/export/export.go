package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/repotablo/internal/models"
)

// Formats lists the supported export formats
var Formats = []string{"markdown", "yaml"}

// Exporter writes the visible table rows to a file and returns its path
type Exporter interface {
	Export(repos []models.Repo) (string, error)
}

// New returns the exporter for format, writing into dir
func New(format, dir string) (Exporter, error) {
	if dir == "" {
		dir = "."
	}
	switch strings.ToLower(format) {
	case "", "markdown", "md":
		return &Markdown{Dir: dir, Now: time.Now}, nil
	case "yaml", "yml":
		return &YAML{Dir: dir, Now: time.Now}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q: must be one of %s", format, strings.Join(Formats, ", "))
	}
}

// fileName returns the dated export file name
func fileName(now time.Time, ext string) string {
	return fmt.Sprintf("repotablo-%s.%s", now.Format("20060102-150405"), ext)
}

// writeFile writes content into dir, creating it if needed
func writeFile(dir, name string, content []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
