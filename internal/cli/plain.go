package cli

import (
	"io"
	"strconv"
	"time"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/thesavant42/repotablo/internal/models"
)

// printPlain writes repos sorted by sortBy and filtered by name. Terminals get
// aligned columns with compact numbers; pipes get tab-separated raw values.
func printPlain(w io.Writer, repos []models.Repo, sortBy models.SortBy, filter string, isTTY bool, width int) error {
	repos = models.FilterRepos(repos, filter)
	models.SortRepos(repos, sortBy)

	now := time.Now()
	tp := tableprinter.New(w, isTTY, width)
	if isTTY {
		tp.AddHeader([]string{"NAME", "STARS", "FORKS", "LICENSE", "AGE", "UPDATED"})
	}
	for _, r := range repos {
		tp.AddField(r.FullName())
		if isTTY {
			cells := models.RowCells(r, now)
			for _, c := range cells[1:] {
				tp.AddField(c)
			}
		} else {
			tp.AddField(strconv.FormatUint(uint64(r.Stars), 10))
			tp.AddField(strconv.FormatUint(uint64(r.Forks), 10))
			tp.AddField(r.License)
			tp.AddField(r.CreatedAt.Format(time.RFC3339))
			tp.AddField(r.PushedAt.Format(time.RFC3339))
		}
		tp.EndRow()
	}
	return tp.Render()
}
