package api

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/thesavant42/repotablo/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultJobs is the default number of concurrent requests
const DefaultJobs = 8

// FetchStats fetches every reference with at most jobs requests in flight.
// The result keeps the order of refs. Missing repositories are skipped and
// listed in Stats.Missing; any other failure cancels the remaining requests.
// After each reference completes a Progress event is sent on progress (may be nil).
func (c *Client) FetchStats(ctx context.Context, refs []models.RepoRef, jobs int, progress chan<- models.Progress) (models.Stats, error) {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]*models.Repo, len(refs))
	missing := make([]bool, len(refs))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			repo, err := c.GetRepo(gctx, ref)
			switch {
			case errors.Is(err, ErrNotFound):
				c.logger.Warn("Skipping repository", "repo", ref.String(), "error", err)
				missing[i] = true
			case err != nil:
				return fmt.Errorf("%s: %w", ref, err)
			default:
				results[i] = &repo
			}

			n := int(done.Add(1))
			if progress == nil {
				return nil
			}
			select {
			case progress <- models.Progress{Done: n, Total: len(refs)}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return models.Stats{}, err
	}

	stats := models.Stats{Repos: make([]models.Repo, 0, len(refs))}
	for i, r := range results {
		switch {
		case r != nil:
			stats.Repos = append(stats.Repos, *r)
		case missing[i]:
			stats.Missing = append(stats.Missing, refs[i])
		}
	}

	c.logger.Info("Fetch complete", "repos", len(stats.Repos), "missing", len(stats.Missing))
	return stats, nil
}
