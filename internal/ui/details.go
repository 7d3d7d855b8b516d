package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/dustin/go-humanize"
	"github.com/thesavant42/repotablo/internal/models"
)

// markdownCache keeps one glamour renderer per wrap width. A fixed style is
// used because auto style queries the terminal, which the table already owns.
type markdownCache struct {
	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

func newMarkdownCache() *markdownCache {
	return &markdownCache{renderers: map[int]*glamour.TermRenderer{}}
}

// render returns md rendered for width, or md itself if glamour fails
func (c *markdownCache) render(md string, width int) string {
	width = max(width, 10)

	c.mu.Lock()
	r, ok := c.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(styles.DarkStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			c.mu.Unlock()
			return md
		}
		c.renderers[width] = r
	}
	c.mu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// detailsMarkdown describes one repository
func detailsMarkdown(r models.Repo, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.FullName())
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Description)
	}
	if r.Archived {
		b.WriteString("**Archived**\n\n")
	}

	fmt.Fprintf(&b, "- Stars: %s\n", humanize.Comma(int64(r.Stars)))
	fmt.Fprintf(&b, "- Forks: %s\n", humanize.Comma(int64(r.Forks)))
	fmt.Fprintf(&b, "- Open issues: %s\n", humanize.Comma(int64(r.OpenIssues)))
	fmt.Fprintf(&b, "- License: %s\n", r.License)
	if r.Language != "" {
		fmt.Fprintf(&b, "- Language: %s\n", r.Language)
	}
	fmt.Fprintf(&b, "- Created: %s (%s)\n", r.CreatedAt.Format(time.DateOnly), models.Humanize(r.CreatedAt, now))
	fmt.Fprintf(&b, "- Last push: %s (%s)\n", r.PushedAt.Format(time.DateOnly), models.Humanize(r.PushedAt, now))
	if len(r.Topics) > 0 {
		fmt.Fprintf(&b, "- Topics: %s\n", strings.Join(r.Topics, ", "))
	}
	if r.Homepage != "" {
		fmt.Fprintf(&b, "- Homepage: %s\n", r.Homepage)
	}
	fmt.Fprintf(&b, "\n%s\n", r.URL())
	return b.String()
}
