package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thesavant42/repotablo/internal/models"
	"gopkg.in/yaml.v2"
)

var fixedNow = time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)

func testRepos() []models.Repo {
	return []models.Repo{
		{
			Owner: "charmbracelet", Name: "bubbletea", Stars: 27000, Forks: 800, License: "mit",
			CreatedAt: time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC),
			PushedAt:  fixedNow.Add(-50 * time.Hour),
			Topics:    []string{"tui"},
		},
		{
			Owner: "odd", Name: "pipe|name", Stars: 3, Forks: 0, License: models.NoLicense,
			CreatedAt: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			PushedAt:  fixedNow.AddDate(-1, 0, 0),
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"", "*export.Markdown", false},
		{"markdown", "*export.Markdown", false},
		{"MD", "*export.Markdown", false},
		{"yaml", "*export.YAML", false},
		{"yml", "*export.YAML", false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := New(tt.format, t.TempDir())
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if typ := typeName(got); typ != tt.want {
				t.Errorf("New(%q) = %s, want %s", tt.format, typ, tt.want)
			}
		})
	}
}

func typeName(e Exporter) string {
	switch e.(type) {
	case *Markdown:
		return "*export.Markdown"
	case *YAML:
		return "*export.YAML"
	}
	return "unknown"
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(testRepos(), fixedNow)

	wantLines := []string{
		"# Repository Ranking",
		"**Repositories:** 2",
		"**Generated:** 2024-06-01 15:04:05",
		"| # | Repository | Stars | Forks | License | Created | Updated |",
		"| 1 | [charmbracelet/bubbletea](https://github.com/charmbracelet/bubbletea) | 27000 | 800 | mit | 2020-01-10 | 2 days ago |",
		`| 2 | [odd/pipe\|name](https://github.com/odd/pipe|name) | 3 | 0 | None | 2023-02-01 | 1 year ago |`,
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("markdown missing line %q\n%s", want, out)
		}
	}
}

func TestMarkdownExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	m := &Markdown{Dir: dir, Now: func() time.Time { return fixedNow }}

	path, err := m.Export(testRepos())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if want := filepath.Join(dir, "repotablo-20240601-150405.md"); path != want {
		t.Errorf("Export() path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != RenderMarkdown(testRepos(), fixedNow) {
		t.Error("file content differs from RenderMarkdown()")
	}
}

func TestYAMLExport(t *testing.T) {
	dir := t.TempDir()
	y := &YAML{Dir: dir, Now: func() time.Time { return fixedNow }}

	path, err := y.Export(testRepos())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if filepath.Base(path) != "repotablo-20240601-150405.yaml" {
		t.Errorf("Export() path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, data)
	}
	if doc.Count != 2 || len(doc.Repositories) != 2 {
		t.Fatalf("count = %d, repos = %d, want 2", doc.Count, len(doc.Repositories))
	}
	first := doc.Repositories[0]
	if first.FullName() != "charmbracelet/bubbletea" || first.Stars != 27000 || first.License != "mit" {
		t.Errorf("first repo = %+v", first)
	}
	if len(first.Topics) != 1 || first.Topics[0] != "tui" {
		t.Errorf("Topics = %v, want [tui]", first.Topics)
	}
	if !strings.Contains(string(data), "owner: charmbracelet") {
		t.Errorf("yaml output missing owner key:\n%s", data)
	}
}
