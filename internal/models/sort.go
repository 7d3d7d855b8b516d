package models

import (
	"cmp"
	"slices"
	"strings"
)

// SortRepos stably sorts repos in place.
// Name and Created ascend; Stars, Forks and Updated descend.
func SortRepos(repos []Repo, by SortBy) {
	slices.SortStableFunc(repos, compareFunc(by))
}

func compareFunc(by SortBy) func(a, b Repo) int {
	switch by {
	case SortByStars:
		return func(a, b Repo) int { return cmp.Compare(b.Stars, a.Stars) }
	case SortByForks:
		return func(a, b Repo) int { return cmp.Compare(b.Forks, a.Forks) }
	case SortByCreated:
		return func(a, b Repo) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortByUpdated:
		return func(a, b Repo) int { return b.PushedAt.Compare(a.PushedAt) }
	default:
		return func(a, b Repo) int { return strings.Compare(a.Name, b.Name) }
	}
}

// IsSorted reports whether repos already follow the order of by
func IsSorted(repos []Repo, by SortBy) bool {
	return slices.IsSortedFunc(repos, compareFunc(by))
}

// MatchesFilter reports whether the repo name contains query, ignoring case.
// An empty query matches everything.
func MatchesFilter(r Repo, query string) bool {
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(query))
}

// FilterRepos returns the repos matching query, keeping their order
func FilterRepos(repos []Repo, query string) []Repo {
	out := make([]Repo, 0, len(repos))
	for _, r := range repos {
		if MatchesFilter(r, query) {
			out = append(out, r)
		}
	}
	return out
}
