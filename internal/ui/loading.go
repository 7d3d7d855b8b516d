package ui

// loading.go shows fetch progress while the fetcher streams (done, total)
// events over a channel.

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/thesavant42/repotablo/internal/models"
)

// FetchFunc fetches while publishing progress. It must stop sending once ctx
// is done.
type FetchFunc func(ctx context.Context, progress chan<- models.Progress) error

type progressMsg models.Progress

type fetchDoneMsg struct{}

type loadingModel struct {
	done     int
	total    int
	width    int
	height   int
	bar      progress.Model
	events   <-chan models.Progress
	cancel   context.CancelFunc
	finished bool
}

func newLoadingModel(total int, events <-chan models.Progress, cancel context.CancelFunc) loadingModel {
	return loadingModel{
		total:  total,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		events: events,
		cancel: cancel,
	}
}

// RunLoading runs fetch and draws its progress until it returns. Ctrl+C
// cancels the fetch; its error is returned either way.
func RunLoading(ctx context.Context, total int, fetch FetchFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan models.Progress, 16)
	result := make(chan error, 1)
	go func() {
		err := fetch(ctx, events)
		close(events)
		result <- err
	}()

	m := newLoadingModel(total, events, cancel)
	progOpts := []tea.ProgramOption{tea.WithOutput(os.Stderr), tea.WithContext(ctx)}
	if !term.IsTerminal(os.Stdin) {
		progOpts = append(progOpts, tea.WithInput(nil))
	}
	p := tea.NewProgram(m, progOpts...)
	final, runErr := p.Run()
	if fm, ok := final.(loadingModel); !ok || !fm.finished {
		// The program ended before the fetch did
		cancel()
	}

	for range events {
	}
	err := <-result
	if err == nil && runErr != nil {
		return fmt.Errorf("loading program error: %w", runErr)
	}
	return err
}

func (m loadingModel) Init() tea.Cmd {
	return m.wait()
}

// wait reads the next progress event. A closed channel means the fetch
// returned.
func (m loadingModel) wait() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return progressMsg(ev)
		}
		return fetchDoneMsg{}
	}
}

func (m loadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(msg.Width-4, 60), 0)

	case progressMsg:
		// Workers report out of order
		m.done = max(m.done, msg.Done)
		if msg.Total > 0 {
			m.total = msg.Total
		}
		return m, m.wait()

	case fetchDoneMsg:
		m.finished = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
		}
	}

	return m, nil
}

func (m loadingModel) message() string {
	return fmt.Sprintf("Fetching %d/%d...", m.done, m.total)
}

func (m loadingModel) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m loadingModel) View() string {
	if m.finished {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return m.message()
	}

	lines := make([]string, m.height)
	mid := (m.height - 1) / 2
	lines[mid] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.message())
	if row := mid + 2; row < m.height && m.bar.Width > 0 {
		lines[row] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.bar.ViewAs(m.percent()))
	}
	return strings.Join(lines, "\n")
}
