package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thesavant42/repotablo/internal/api"
	"github.com/thesavant42/repotablo/internal/config"
	"github.com/thesavant42/repotablo/internal/db"
	"github.com/thesavant42/repotablo/internal/export"
	"github.com/thesavant42/repotablo/internal/input"
	"github.com/thesavant42/repotablo/internal/logging"
	"github.com/thesavant42/repotablo/internal/models"
	"github.com/thesavant42/repotablo/internal/ui"
)

var version = "dev"

// app carries what the command needs from its environment
type app struct {
	v          *viper.Viper
	configFile string

	stdin  io.Reader
	stdout io.Writer

	// stdoutTTY selects the interactive table over plain output
	stdoutTTY bool
	// stderrTTY enables the spinner and the loading screen
	stderrTTY bool
	// stdinTTY is false when the input list is piped
	stdinTTY bool
	width    int
}

func newApp() *app {
	t := term.FromEnv()
	width, _, err := t.Size()
	if err != nil {
		width = 80
	}
	return &app{
		v:         config.New(),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stdoutTTY: t.IsTerminalOutput(),
		stderrTTY: term.IsTerminal(os.Stderr),
		stdinTTY:  term.IsTerminal(os.Stdin),
		width:     width,
	}
}

// NewRootCmd returns the repotablo command
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repotablo [<input>]",
		Short: "Rank the GitHub repositories linked from a list",
		Long: `repotablo collects GitHub repository links from a list, fetches their
metadata and shows them in an interactive, sortable and filterable table.

<input> can be:
  https://...    a web page or README; links are read from its anchors and text
  <path>         a local file, or a glob such as "lists/**/*.md"
  -              standard input

With no input, piped standard input is read; otherwise $VISUAL or $EDITOR
opens a scratch file to paste links into.

When standard output is not a terminal, a plain table is printed instead.

Examples:
  repotablo https://github.com/avelino/awesome-go
  repotablo README.md
  repotablo "docs/**/*.md" --sort stars
  gh repo list --json nameWithOwner -q '.[].nameWithOwner' | repotablo -`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&a.configFile, "config", "", "config file (default: "+config.DefaultPath()+")")
	if err := config.RegisterFlags(cmd, a.v); err != nil {
		// Flags are registered once on a fresh command
		panic(err)
	}
	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) run(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.ReadFile(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	logger, logFile, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("logging disabled: %v", err))
		logger = logging.Discard()
	} else {
		defer logFile.Close()
	}
	logger.Info("Starting", "version", version, "config", cfg.ConfigFile, "token", cfg.TokenSource != "", "jobs", cfg.Jobs)
	if cfg.TokenSource != "" {
		logger.Debug("Using token", "source", cfg.TokenSource)
	}

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	refs, err := a.resolve(ctx, cfg, logger, arg)
	if err != nil {
		return err
	}

	stats, err := a.fetch(ctx, cfg, logger, refs)
	if err != nil {
		if errors.Is(err, api.ErrRateLimit) {
			ui.PrintHint("Set GITHUB_TOKEN env var (or run gh auth login) to raise the rate limit")
		}
		return fmt.Errorf("failed to fetch repositories: %w", err)
	}
	logger.Info("Fetched", "repos", len(stats.Repos), "missing", len(stats.Missing))

	if cfg.Snapshot != "" {
		if err := saveSnapshot(cfg.Snapshot, stats, sourceName(arg, a.stdinTTY), logger); err != nil {
			return err
		}
	}

	if a.stdoutTTY {
		err = a.runTable(cfg, logger, stats)
	} else {
		err = printPlain(a.stdout, stats.Repos, cfg.Sort, cfg.Filter, false, a.width)
	}

	for _, ref := range stats.Missing {
		ui.PrintWarning(fmt.Sprintf("repository not found: %s", ref))
	}
	return err
}

// resolve reads the input. A spinner runs while a remote document downloads.
func (a *app) resolve(ctx context.Context, cfg config.Config, logger *log.Logger, arg string) ([]models.RepoRef, error) {
	resolver := input.NewResolver(&http.Client{Timeout: cfg.Timeout}, cfg.Editor, logger)
	resolver.Stdin = a.stdin
	resolver.StdinTTY = a.stdinTTY
	resolver.Prompt = ui.PromptForRepos

	if !a.stderrTTY || !input.IsRemote(arg) {
		return resolver.Resolve(ctx, arg)
	}

	var refs []models.RepoRef
	err := ui.RunWithSpinner(ctx, "Reading "+arg+"...", func(ctx context.Context) error {
		var err error
		refs, err = resolver.Resolve(ctx, arg)
		return err
	})
	return refs, err
}

// fetch looks every reference up, drawing progress when stderr is a terminal
func (a *app) fetch(ctx context.Context, cfg config.Config, logger *log.Logger, refs []models.RepoRef) (models.Stats, error) {
	client := api.NewClient(cfg.Token, api.WithTimeout(cfg.Timeout), api.WithLogger(logger))

	if !a.stderrTTY {
		return client.FetchStats(ctx, refs, cfg.Jobs, nil)
	}

	var stats models.Stats
	err := ui.RunLoading(ctx, len(refs), func(ctx context.Context, progress chan<- models.Progress) error {
		var err error
		stats, err = client.FetchStats(ctx, refs, cfg.Jobs, progress)
		return err
	})
	return stats, err
}

func (a *app) runTable(cfg config.Config, logger *log.Logger, stats models.Stats) error {
	exporter, err := export.New(cfg.ExportFormat, cfg.ExportDir)
	if err != nil {
		return err
	}

	clip := ui.NewClipboard()
	if clip == nil {
		logger.Warn("No clipboard available, copying is disabled")
	}
	return ui.RunTable(stats, ui.Options{
		Clipboard: clip,
		Browser:   ui.NewBrowser(),
		Exporter:  exporter,
		Logger:    logger,
	})
}

func saveSnapshot(path string, stats models.Stats, source string, logger *log.Logger) error {
	store, err := db.New(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer store.Close()

	id, err := store.SaveSnapshot(stats, source, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	logger.Info("Saved snapshot", "path", path, "id", id, "repos", len(stats.Repos))
	return nil
}

// sourceName describes the input for the snapshot record
func sourceName(arg string, stdinTTY bool) string {
	switch {
	case arg == input.StdinArg, arg == "" && !stdinTTY:
		return "stdin"
	case arg == "":
		return "editor"
	default:
		return arg
	}
}
