package models

import (
	"fmt"
	"strings"
	"time"
)

// RepositoryOwner is the owner block of a GitHub repository response
type RepositoryOwner struct {
	Login string `json:"login"`
}

// RepositoryLicense is the license block of a GitHub repository response (null when unlicensed)
type RepositoryLicense struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
}

// Repository represents a GitHub API repository response
type Repository struct {
	Name            string             `json:"name"`
	FullName        string             `json:"full_name"`
	Owner           RepositoryOwner    `json:"owner"`
	Description     *string            `json:"description"`
	Homepage        *string            `json:"homepage"`
	HTMLURL         string             `json:"html_url"`
	Language        *string            `json:"language"`
	StargazersCount uint32             `json:"stargazers_count"`
	ForksCount      uint32             `json:"forks_count"`
	OpenIssuesCount uint32             `json:"open_issues_count"`
	License         *RepositoryLicense `json:"license"`
	Topics          []string           `json:"topics"`
	Archived        bool               `json:"archived"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	PushedAt        time.Time          `json:"pushed_at"` // null for empty repositories
}

// NoLicense is shown when a repository declares no license
const NoLicense = "None"

// Repo is one row of the ranking table
type Repo struct {
	Owner       string    `yaml:"owner"`
	Name        string    `yaml:"name"`
	Stars       uint32    `yaml:"stars"`
	Forks       uint32    `yaml:"forks"`
	License     string    `yaml:"license"`
	CreatedAt   time.Time `yaml:"created_at"`
	PushedAt    time.Time `yaml:"pushed_at"`
	Description string    `yaml:"description,omitempty"`
	Homepage    string    `yaml:"homepage,omitempty"`
	Language    string    `yaml:"language,omitempty"`
	OpenIssues  uint32    `yaml:"open_issues"`
	Archived    bool      `yaml:"archived,omitempty"`
	Topics      []string  `yaml:"topics,omitempty"`
}

// URL returns the web URL of the repository
func (r Repo) URL() string {
	return "https://github.com/" + r.Owner + "/" + r.Name
}

// FullName returns "owner/name"
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// Stats is the fetcher output, in resolved input order
type Stats struct {
	Repos   []Repo
	Missing []RepoRef // references GitHub answered 404 for
}

// RepoRef is one repository reference extracted from the user's input
type RepoRef struct {
	Owner string
	Name  string
}

// URL returns the web URL of the referenced repository
func (r RepoRef) URL() string {
	return "https://github.com/" + r.Owner + "/" + r.Name
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// Key returns a case-insensitive identity, GitHub treats owner and name that way
func (r RepoRef) Key() string {
	return strings.ToLower(r.String())
}

// Progress reports how many of the total references have been fetched
type Progress struct {
	Done  int
	Total int
}

// ToRepo flattens an API response into a table row.
// ref fills in owner/name if the response is missing them.
func (r Repository) ToRepo(ref RepoRef) Repo {
	repo := Repo{
		Owner:      r.Owner.Login,
		Name:       r.Name,
		Stars:      r.StargazersCount,
		Forks:      r.ForksCount,
		License:    NoLicense,
		CreatedAt:  r.CreatedAt.UTC(),
		PushedAt:   r.PushedAt.UTC(),
		OpenIssues: r.OpenIssuesCount,
		Archived:   r.Archived,
		Topics:     r.Topics,
	}
	if repo.Owner == "" {
		repo.Owner = ref.Owner
	}
	if repo.Name == "" {
		repo.Name = ref.Name
	}
	if r.License != nil && r.License.Key != "" {
		repo.License = r.License.Key
	}
	if r.PushedAt.IsZero() {
		repo.PushedAt = r.UpdatedAt.UTC()
	}
	if r.Description != nil {
		repo.Description = *r.Description
	}
	if r.Homepage != nil {
		repo.Homepage = *r.Homepage
	}
	if r.Language != nil {
		repo.Language = *r.Language
	}
	return repo
}

// SortBy selects the ordering of the table
type SortBy int

const (
	SortByName SortBy = iota
	SortByStars
	SortByForks
	SortByCreated
	SortByUpdated
)

// SortKeys lists the accepted names for ParseSortBy, in column order
var SortKeys = []string{"name", "stars", "forks", "created", "updated"}

func (s SortBy) String() string {
	if s < SortByName || s > SortByUpdated {
		return fmt.Sprintf("SortBy(%d)", int(s))
	}
	return SortKeys[s]
}

// ParseSortBy parses a column name. "age" is accepted for created.
func ParseSortBy(s string) (SortBy, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "age" {
		return SortByCreated, nil
	}
	for i, k := range SortKeys {
		if k == key {
			return SortBy(i), nil
		}
	}
	return SortByName, fmt.Errorf("invalid sort column %q: must be one of %s", s, strings.Join(SortKeys, ", "))
}
