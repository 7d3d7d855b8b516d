package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Compact renders a count with a magnitude suffix: 1.2M, 3.4k, 999
func Compact(n uint32) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return strconv.FormatUint(uint64(n), 10)
	}
}

// Humanize renders t relative to now: "3 months ago", "in 2 days", "now"
func Humanize(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Second && d > -time.Second {
		return "now"
	}
	if d > 0 {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return "in " + strings.TrimSpace(humanize.RelTime(now, t, "", ""))
}

// RowCells returns the six display cells of a table row:
// name, stars, forks, license, age, updated
func RowCells(r Repo, now time.Time) [6]string {
	return [6]string{
		r.Name,
		Compact(r.Stars),
		Compact(r.Forks),
		r.License,
		Humanize(r.CreatedAt, now),
		Humanize(r.PushedAt, now),
	}
}
