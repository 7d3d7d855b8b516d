package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/thesavant42/repotablo/internal/models"
)

// Markdown exports the table as a markdown document
type Markdown struct {
	Dir string
	Now func() time.Time
}

// Export writes repos, in the given order, to a dated markdown file
func (m *Markdown) Export(repos []models.Repo) (string, error) {
	now := m.Now()
	return writeFile(m.Dir, fileName(now, "md"), []byte(RenderMarkdown(repos, now)))
}

// RenderMarkdown builds the markdown document for repos
func RenderMarkdown(repos []models.Repo, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Repository Ranking\n\n")

	sb.WriteString(fmt.Sprintf("**Repositories:** %d\n", len(repos)))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", now.Format("2006-01-02 15:04:05")))

	sb.WriteString("| # | Repository | Stars | Forks | License | Created | Updated |\n")
	sb.WriteString("|---|------------|-------|-------|---------|---------|---------|\n")

	for i, r := range repos {
		sb.WriteString(fmt.Sprintf("| %d | [%s](%s) | %d | %d | %s | %s | %s |\n",
			i+1,
			escapeCell(r.FullName()),
			r.URL(),
			r.Stars,
			r.Forks,
			escapeCell(r.License),
			r.CreatedAt.Format("2006-01-02"),
			models.Humanize(r.PushedAt, now)))
	}

	return sb.String()
}

// escapeCell keeps a value from breaking the table
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
