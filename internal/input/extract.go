package input

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/thesavant42/repotablo/internal/models"
	"golang.org/x/net/html"
)

var (
	// linkPattern matches repository links anywhere in free text
	linkPattern = regexp.MustCompile(`https?://(?:www\.)?github\.com/([A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)/([A-Za-z0-9_.-]+)`)
	// shorthandPattern matches a line that is exactly owner/name
	shorthandPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?/[A-Za-z0-9_.-]+$`)
)

// reservedOwners are first path segments on github.com that are not accounts
var reservedOwners = map[string]bool{
	"about":         true,
	"apps":          true,
	"collections":   true,
	"contact":       true,
	"enterprise":    true,
	"events":        true,
	"explore":       true,
	"features":      true,
	"login":         true,
	"marketplace":   true,
	"new":           true,
	"notifications": true,
	"orgs":          true,
	"organizations": true,
	"pricing":       true,
	"pulls":         true,
	"issues":        true,
	"search":        true,
	"security":      true,
	"settings":      true,
	"site":          true,
	"sponsors":      true,
	"topics":        true,
	"trending":      true,
	"users":         true,
}

// refSet collects references, dropping case-insensitive duplicates
type refSet struct {
	seen map[string]bool
	refs []models.RepoRef
}

func newRefSet() *refSet {
	return &refSet{seen: make(map[string]bool)}
}

func (s *refSet) add(ref models.RepoRef) {
	key := ref.Key()
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.refs = append(s.refs, ref)
}

func (s *refSet) addAll(refs []models.RepoRef) {
	for _, r := range refs {
		s.add(r)
	}
}

// normalize cleans up a captured owner/name pair. ok is false for non-repository paths.
func normalize(owner, name string) (models.RepoRef, bool) {
	if reservedOwners[strings.ToLower(owner)] {
		return models.RepoRef{}, false
	}
	name = strings.TrimRight(name, ".")
	name = strings.TrimSuffix(name, ".git")
	if name == "" || name == "." || name == ".." {
		return models.RepoRef{}, false
	}
	return models.RepoRef{Owner: owner, Name: name}, true
}

// ExtractText returns the repositories referenced in free text: github.com
// links anywhere, and lines consisting of just owner/name.
// Lines starting with '#' are comments unless they contain a link.
func ExtractText(text string) []models.RepoRef {
	set := newRefSet()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		matches := linkPattern.FindAllStringSubmatch(line, -1)
		for _, m := range matches {
			if ref, ok := normalize(m[1], m[2]); ok {
				set.add(ref)
			}
		}
		if len(matches) > 0 || strings.HasPrefix(line, "#") {
			continue
		}

		if ref, ok := parseShorthand(strings.TrimPrefix(line, "- ")); ok {
			set.add(ref)
		}
	}

	return set.refs
}

// parseShorthand accepts "owner/name"
func parseShorthand(s string) (models.RepoRef, bool) {
	if !shorthandPattern.MatchString(s) {
		return models.RepoRef{}, false
	}
	repo, err := repository.ParseWithHost(s, "github.com")
	if err != nil {
		return models.RepoRef{}, false
	}
	return normalize(repo.Owner, repo.Name)
}

// ParseLink returns the repository a URL points at, including deep links
// such as /owner/name/tree/main. Relative links are resolved against base.
func ParseLink(href string, base *url.URL) (models.RepoRef, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return models.RepoRef{}, false
	}
	if base != nil {
		u = base.ResolveReference(u)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "github.com" || (u.Scheme != "http" && u.Scheme != "https") {
		return models.RepoRef{}, false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return models.RepoRef{}, false
	}
	m := linkPattern.FindStringSubmatch("https://github.com/" + parts[0] + "/" + parts[1])
	if m == nil || m[1] != parts[0] {
		return models.RepoRef{}, false
	}
	return normalize(m[1], m[2])
}

// ExtractHTML returns the repositories linked from an HTML document, in
// document order. base resolves relative hrefs and may be nil.
func ExtractHTML(r io.Reader, base *url.URL) ([]models.RepoRef, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	set := newRefSet()
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if ref, ok := ParseLink(attr.Val, base); ok {
					set.add(ref)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return set.refs, nil
}

// Dedupe drops case-insensitive duplicates, keeping the first occurrence
func Dedupe(refs []models.RepoRef) []models.RepoRef {
	set := newRefSet()
	set.addAll(refs)
	return set.refs
}
