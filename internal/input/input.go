package input

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/thesavant42/repotablo/internal/logging"
	"github.com/thesavant42/repotablo/internal/models"
)

// StdinArg reads references from standard input
const StdinArg = "-"

// maxBodySize caps how much of a remote document is read
const maxBodySize = 10 << 20

var (
	// ErrNoRepositories is returned when an input yields no references
	ErrNoRepositories = errors.New("no GitHub repositories found")
	// ErrNoFiles is returned when a glob matches nothing
	ErrNoFiles = errors.New("no files match")
)

// Resolver turns the command-line input into repository references
type Resolver struct {
	HTTPClient *http.Client
	Stdin      io.Reader
	// StdinTTY is true when stdin is an interactive terminal
	StdinTTY bool
	// Editor is the editor command line; empty falls back to Prompt
	Editor string
	// Prompt asks for references interactively when no editor is configured
	Prompt func() (string, error)
	Logger *log.Logger
}

// NewResolver returns a Resolver reading from the process stdin
func NewResolver(httpClient *http.Client, editor string, logger *log.Logger) *Resolver {
	fd := os.Stdin.Fd()
	return &Resolver{
		HTTPClient: httpClient,
		Stdin:      os.Stdin,
		StdinTTY:   isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		Editor:     editor,
		Logger:     logging.OrDiscard(logger).WithPrefix("input"),
	}
}

// Resolve reads arg and returns the references it contains, deduplicated in
// first-seen order. arg is one of:
//
//	""            editor (or stdin when it is piped)
//	"-"           stdin
//	http(s)://... remote document
//	anything else file path or doublestar glob
func (r *Resolver) Resolve(ctx context.Context, arg string) ([]models.RepoRef, error) {
	var (
		refs   []models.RepoRef
		source string
		err    error
	)

	switch {
	case arg == StdinArg || (arg == "" && !r.StdinTTY):
		source = "stdin"
		refs, err = r.fromReader(r.Stdin)
	case arg == "":
		source = "editor"
		refs, err = r.fromEditor(ctx)
	case IsRemote(arg):
		source = arg
		refs, err = r.fromURL(ctx, arg)
	default:
		source = arg
		refs, err = r.fromFiles(arg)
	}
	if err != nil {
		return nil, err
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRepositories, source)
	}
	r.logger().Info("Resolved input", "source", source, "repos", len(refs))
	return refs, nil
}

func (r *Resolver) logger() *log.Logger {
	return logging.OrDiscard(r.Logger)
}

// IsRemote reports whether arg is fetched over HTTP
func IsRemote(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (r *Resolver) fromReader(rd io.Reader) ([]models.RepoRef, error) {
	if rd == nil {
		return nil, nil
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return ExtractText(string(data)), nil
}

// fromFiles reads a single path, or every file a glob pattern matches
func (r *Resolver) fromFiles(pattern string) ([]models.RepoRef, error) {
	paths := []string{pattern}
	if _, err := os.Stat(pattern); err != nil {
		if !hasGlobMeta(pattern) {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w %q", ErrNoFiles, pattern)
		}
		sort.Strings(matches)
		paths = matches
	}

	set := newRefSet()
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		found := ExtractText(string(data))
		r.logger().Debug("Scanned file", "path", p, "repos", len(found))
		set.addAll(found)
	}
	return set.refs, nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// fromURL downloads a document and collects its repository links.
// A repository page is swapped for its raw README so that awesome-lists work.
func (r *Resolver) fromURL(ctx context.Context, raw string) ([]models.RepoRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if readme, ok := readmeURL(u); ok {
		r.logger().Debug("Using README", "url", readme.String())
		u = readme
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "repotablo/1.0")

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", u, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u, err)
	}

	set := newRefSet()
	if strings.Contains(resp.Header.Get("Content-Type"), "html") {
		base := u
		if resp.Request != nil {
			base = resp.Request.URL
		}
		anchors, err := ExtractHTML(bytes.NewReader(body), base)
		if err != nil {
			return nil, err
		}
		set.addAll(anchors)
	}
	// Pages often show links in code blocks without anchors
	set.addAll(ExtractText(string(body)))
	return set.refs, nil
}

// readmeURL maps https://github.com/owner/name to its raw README
func readmeURL(u *url.URL) (*url.URL, bool) {
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "github.com" {
		return nil, false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 {
		return nil, false
	}
	ref, ok := normalize(parts[0], parts[1])
	if !ok {
		return nil, false
	}
	return &url.URL{
		Scheme: "https",
		Host:   "raw.githubusercontent.com",
		Path:   "/" + ref.Owner + "/" + ref.Name + "/HEAD/README.md",
	}, true
}
