// Package tui provides a Bubble Tea terminal user interface for lyricstat.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/lyricstat/internal/analysis"
	"github.com/handiism/lyricstat/internal/config"
	"github.com/handiism/lyricstat/internal/corpus"
	"github.com/handiism/lyricstat/internal/genius"
	lyrichttp "github.com/handiism/lyricstat/internal/http"
	"github.com/handiism/lyricstat/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateArtistInput State = iota
	StateFetching
	StateTermInput
	StateReport
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   corpus.ProgressLevel
}

// logBuffer collects builder progress events between ticks.
type logBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (l *logBuffer) add(event corpus.ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Message: event.Message, Level: event.Level})
	if len(l.entries) > maxLogs {
		l.entries = l.entries[len(l.entries)-maxLogs:]
	}
}

func (l *logBuffer) snapshot() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// Options configures the TUI.
type Options struct {
	Settings *config.Settings
	Logger   *zap.Logger

	// CorpusPath skips fetching and analyzes an existing corpus file.
	CorpusPath string

	// Verbose shows per-song progress messages.
	Verbose bool
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logger    *zap.Logger
	logs      *logBuffer
	err       error

	// Fetch context
	ctx    context.Context
	cancel context.CancelFunc

	builder *corpus.Builder

	// Fetch progress
	totalSongs   int32
	fetchedSongs int32
	failedSongs  int32

	corpusPath string
	corpus     *model.Corpus
	report     *analysis.Report

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		textInput:  ti,
		spinner:    sp,
		progress:   prog,
		settings:   settings,
		logger:     logger,
		logs:       &logBuffer{},
		ctx:        ctx,
		cancel:     cancel,
		corpusPath: opts.CorpusPath,
		verbose:    opts.Verbose,
	}
	m.enterArtistInput()
	if opts.CorpusPath != "" {
		m.enterTermInput()
	}
	return m
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.corpusPath != "" {
		cmds = append(cmds, loadCorpus(m.corpusPath))
	}
	return tea.Batch(cmds...)
}

// Message types
type (
	// CorpusLoadedMsg is sent when a corpus file has been read.
	CorpusLoadedMsg struct {
		Corpus *model.Corpus
		Err    error
	}

	// InitDoneMsg is sent when the song list has been fetched.
	InitDoneMsg struct {
		Builder *corpus.Builder
		Err     error
	}

	// FetchDoneMsg is sent when every song has been fetched and saved.
	FetchDoneMsg struct {
		Path   string
		Corpus *model.Corpus
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateArtistInput:
				return m, tea.Quit
			case StateFetching:
				m.cancel()
				m.fail(errCancelled)
				return m, nil
			}

		case "enter":
			value := strings.TrimSpace(m.textInput.Value())
			switch {
			case m.state == StateArtistInput && value != "":
				m.state = StateFetching
				m.textInput.Blur()
				return m, tea.Batch(m.startFetch(value), m.spinner.Tick, m.tickProgress())
			case m.state == StateTermInput && value != "" && m.corpus != nil:
				m.report = analysis.AnalyzeSongs(m.corpus.Songs, value)
				m.state = StateReport
				m.textInput.Blur()
				return m, nil
			}

		case "q":
			if m.state == StateReport || m.state == StateError {
				return m, tea.Quit
			}

		case "n":
			if m.state == StateReport {
				m.enterTermInput()
				return m, textinput.Blink
			}

		case "r":
			if m.state == StateReport || m.state == StateError {
				m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case CorpusLoadedMsg:
		if msg.Err != nil {
			m.fail(msg.Err)
		} else {
			m.corpus = msg.Corpus
		}

	case InitDoneMsg:
		if m.state != StateFetching {
			return m, nil
		}
		if msg.Err != nil {
			m.fail(m.fetchError(msg.Err))
			return m, nil
		}
		m.builder = msg.Builder
		cmds = append(cmds, m.buildCorpus())

	case FetchDoneMsg:
		if m.state != StateFetching {
			return m, nil
		}
		m.pollProgress()
		if msg.Err != nil {
			m.fail(m.fetchError(msg.Err))
			return m, nil
		}
		m.corpus = msg.Corpus
		m.corpusPath = msg.Path
		m.enterTermInput()
		cmds = append(cmds, textinput.Blink)

	case TickMsg:
		if m.state == StateFetching {
			m.pollProgress()
			var percent float64
			if m.totalSongs > 0 {
				percent = float64(m.fetchedSongs+m.failedSongs) / float64(m.totalSongs)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateArtistInput || m.state == StateTermInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) enterArtistInput() {
	m.state = StateArtistInput
	m.textInput.Placeholder = "Artist name, e.g. Kendrick Lamar"
	m.textInput.SetValue("")
	m.textInput.Focus()
}

func (m *Model) enterTermInput() {
	m.state = StateTermInput
	m.report = nil
	m.textInput.Placeholder = "Word or phrase to count"
	m.textInput.SetValue("")
	m.textInput.Focus()
}

func (m *Model) fail(err error) {
	m.state = StateError
	m.err = err
}

func (m *Model) reset() {
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.logs = &logBuffer{}
	m.err = nil
	m.builder = nil
	m.corpus = nil
	m.corpusPath = ""
	m.report = nil
	m.totalSongs, m.fetchedSongs, m.failedSongs = 0, 0, 0
	m.enterArtistInput()
}

func (m *Model) pollProgress() {
	if m.builder != nil {
		m.fetchedSongs, m.failedSongs, m.totalSongs = m.builder.GetProgress()
	}
}

func (m Model) fetchError(err error) error {
	if m.ctx.Err() != nil {
		return errCancelled
	}
	return err
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ lyricstat"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Count words across an artist's lyrics"))
	b.WriteString("\n\n")

	switch m.state {
	case StateArtistInput:
		b.WriteString(m.viewArtistInput())
	case StateFetching:
		b.WriteString(m.viewFetching())
	case StateTermInput:
		b.WriteString(m.viewTermInput())
	case StateReport:
		b.WriteString(m.viewReport())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewArtistInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter artist name:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Up to %d songs, saved as %s", m.settings.MaxSongs, m.settings.OutputFileNameFormat)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewFetching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.builder == nil {
		b.WriteString(subtitleStyle.Render("Fetching song list..."))
	} else {
		b.WriteString(subtitleStyle.Render("Fetching lyrics..."))
	}
	b.WriteString("\n\n")

	var percent float64
	if m.totalSongs > 0 {
		percent = float64(m.fetchedSongs+m.failedSongs) / float64(m.totalSongs)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Songs: %d/%d | Skipped: %d", m.fetchedSongs, m.totalSongs, m.failedSongs)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewTermInput() string {
	var b strings.Builder

	if m.corpus == nil {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Loading corpus..."))
		b.WriteString("\n")
		return b.String()
	}

	label := fmt.Sprintf("%d songs", len(m.corpus.Songs))
	if m.corpus.Artist != "" {
		label = fmt.Sprintf("%d songs by %s", len(m.corpus.Songs), m.corpus.Artist)
	}
	b.WriteString(successStyle.Render(label))
	if m.corpusPath != "" {
		b.WriteString(dimStyle.Render(" (" + m.corpusPath + ")"))
	}
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Enter search term:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewReport() string {
	if m.report == nil {
		return ""
	}
	return boxStyle.Render(strings.Join(m.report.Lines(true), "\n")) + "\n"
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs.snapshot() {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case corpus.LevelError:
			style = errorStyle
			prefix = "✗"
		case corpus.LevelWarning:
			style = warningStyle
			prefix = "!"
		case corpus.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case corpus.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateArtistInput:
		return "enter: fetch • esc: quit"
	case StateFetching:
		return "esc: cancel"
	case StateTermInput:
		return "enter: analyze • ctrl+c: quit"
	case StateReport:
		return "n: new term • r: restart • q: quit"
	case StateError:
		return "r: restart • q: quit"
	}
	return ""
}

func loadCorpus(path string) tea.Cmd {
	return func() tea.Msg {
		c, err := analysis.LoadCorpus(path)
		return CorpusLoadedMsg{Corpus: c, Err: err}
	}
}

// startFetch resolves the artist and lists its songs.
func (m Model) startFetch(artist string) tea.Cmd {
	ctx, settings, logger, logs, verbose := m.ctx, m.settings, m.logger, m.logs, m.verbose

	return func() tea.Msg {
		httpClient := lyrichttp.NewClient(settings.ToClientConfig(), logger)
		source := genius.NewClient(httpClient, settings.ToGeniusConfig(), logger)

		builder := corpus.NewBuilder(settings, source, logger, func(event corpus.ProgressEvent) {
			if event.Level == corpus.LevelVerbose && !verbose {
				return
			}
			logs.add(event)
		})

		if err := builder.Initialize(ctx, artist); err != nil {
			return InitDoneMsg{Err: err}
		}
		return InitDoneMsg{Builder: builder}
	}
}

// buildCorpus fetches every song and saves the corpus in the background.
func (m Model) buildCorpus() tea.Cmd {
	ctx, builder := m.ctx, m.builder

	return func() tea.Msg {
		if builder == nil {
			return FetchDoneMsg{Err: corpus.ErrNotInitialized}
		}

		c, err := builder.Build(ctx)
		if err != nil {
			return FetchDoneMsg{Err: err}
		}

		path := builder.OutputPath(".", c.Artist)
		if err := builder.Save(ctx, c, path); err != nil {
			return FetchDoneMsg{Err: err}
		}
		return FetchDoneMsg{Path: path, Corpus: c}
	}
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
