// Package settings is the in-app editor for the configuration file. Edits
// are checked against the backend before they are written and take effect
// on the next launch.
package settings

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// ProbeTimeout bounds the connection check.
const ProbeTimeout = 10 * time.Second

// Mode is the sub-state of the settings view.
type Mode int

const (
	ModeForm Mode = iota
	ModeValidating
	ModeResult
)

// Prober checks that a backend answers at baseURL.
type Prober func(ctx context.Context, baseURL string) error

// Saver persists the configuration.
type Saver func(cfg *model.AppConfig) error

// SavedMsg is dispatched after the configuration was written.
type SavedMsg struct {
	Config model.AppConfig
}

// CancelMsg is dispatched when the user leaves without saving.
type CancelMsg struct{}

type probeResultMsg struct {
	attempt int
	err     error
}

type savedInternalMsg struct {
	cfg model.AppConfig
	err error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	baseURL       string
	timeoutSec    string
	stepDelayMs   string
	toastDuration string
	soundEnabled  bool
	logLevel      string
}

// Model is the Bubble Tea model for the settings view.
type Model struct {
	mode    Mode
	current model.AppConfig
	pending model.AppConfig
	probe   Prober
	save    Saver
	form    *huh.Form
	fb      *formBindings
	spinner spinner.Model

	// attempt tags probe results so a cancelled check is ignored.
	attempt  int
	probeErr error
	err      string

	width, height int
}

// New creates a settings view editing cfg.
func New(cfg model.AppConfig, probe Prober, save Saver, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		current: cfg,
		probe:   probe,
		save:    save,
		fb:      &formBindings{},
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Start opens the form filled with the current configuration.
func (m *Model) Start() tea.Cmd {
	c := m.current
	*m.fb = formBindings{
		baseURL:       c.API.BaseURL,
		timeoutSec:    strconv.Itoa(c.API.TimeoutSec),
		stepDelayMs:   strconv.Itoa(c.Notifications.StepDelayMs),
		toastDuration: strconv.Itoa(c.Notifications.ToastDurationMs),
		soundEnabled:  c.Sound.Enabled,
		logLevel:      c.Log.Level,
	}
	m.mode = ModeForm
	m.err = ""
	m.probeErr = nil
	m.form = m.buildForm()
	return m.form.Init()
}

// Mode returns the active sub-state.
func (m Model) Mode() Mode {
	return m.mode
}

// Config returns the configuration as last saved.
func (m Model) Config() model.AppConfig {
	return m.current
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case probeResultMsg:
		if msg.attempt != m.attempt || m.mode != ModeValidating {
			return m, nil
		}
		if msg.err != nil {
			m.probeErr = msg.err
			m.mode = ModeResult
			return m, nil
		}
		return m, m.saveCmd()

	case savedInternalMsg:
		if msg.err != nil {
			m.err = fmt.Sprintf("Could not save settings: %v", msg.err)
			m.mode = ModeForm
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.current = msg.cfg
		m.mode = ModeForm
		m.form = nil
		return m, func() tea.Msg { return SavedMsg{Config: msg.cfg} }

	case spinner.TickMsg:
		if m.mode == ModeValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeValidating:
			if msg.String() == "esc" {
				m.attempt++
				m.mode = ModeForm
				m.form = m.buildForm()
				return m, m.form.Init()
			}
			return m, nil
		case ModeResult:
			return m.handleResultKeys(msg)
		}
	}

	return m.updateForm(msg)
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.mode != ModeForm {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		cfg, err := m.collect()
		if err != nil {
			m.err = err.Error()
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.pending = cfg
		cmd := m.startProbe()
		return m, cmd
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		cmd := m.startProbe()
		return m, cmd
	case "s":
		return m, m.saveCmd()
	case "e", "enter":
		m.mode = ModeForm
		m.form = m.buildForm()
		return m, m.form.Init()
	case "esc":
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, nil
}

func (m *Model) startProbe() tea.Cmd {
	m.mode = ModeValidating
	m.attempt++
	m.probeErr = nil
	attempt := m.attempt
	probe := m.probe
	baseURL := m.pending.API.BaseURL

	check := func() tea.Msg {
		if probe == nil {
			return probeResultMsg{attempt: attempt}
		}
		ctx, cancel := context.WithTimeout(context.Background(), ProbeTimeout)
		defer cancel()
		return probeResultMsg{attempt: attempt, err: probe(ctx, baseURL)}
	}
	return tea.Batch(m.spinner.Tick, check)
}

func (m Model) saveCmd() tea.Cmd {
	cfg := m.pending
	save := m.save
	return func() tea.Msg {
		if save == nil {
			return savedInternalMsg{cfg: cfg}
		}
		return savedInternalMsg{cfg: cfg, err: save(&cfg)}
	}
}

// collect applies the form values on top of the current configuration.
func (m Model) collect() (model.AppConfig, error) {
	cfg := m.current
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(m.fb.baseURL), "/")

	timeout, err := parseNonNegative("Timeout", m.fb.timeoutSec)
	if err != nil {
		return cfg, err
	}
	if timeout == 0 {
		return cfg, fmt.Errorf("timeout must be at least one second")
	}
	cfg.API.TimeoutSec = timeout

	if cfg.Notifications.StepDelayMs, err = parseNonNegative("Step delay", m.fb.stepDelayMs); err != nil {
		return cfg, err
	}
	if cfg.Notifications.ToastDurationMs, err = parseNonNegative("Toast duration", m.fb.toastDuration); err != nil {
		return cfg, err
	}
	cfg.Sound.Enabled = m.fb.soundEnabled
	cfg.Log.Level = m.fb.logLevel
	return cfg, nil
}

// --- View ---

// View renders the settings UI based on the current mode.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height)

	switch m.mode {
	case ModeValidating:
		return style.Render(fmt.Sprintf(
			"%s Checking %s...\n\nPress esc to cancel.",
			m.spinner.View(), m.pending.API.BaseURL,
		))
	case ModeResult:
		return style.Render(m.viewResult())
	}

	if m.form == nil {
		return style.Render(lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("Settings saved. Restart Munchie to apply them."))
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Settings") + "\n"
	if m.err != "" {
		content += theme.ErrorStyle.Render(m.err) + "\n\n"
	}
	content += m.form.View()
	return style.Render(content)
}

func (m Model) viewResult() string {
	errStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorRed)
	hint := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render("r retry | s save anyway | enter edit | esc discard")

	reason := "no response"
	if m.probeErr != nil {
		reason = m.probeErr.Error()
	}
	return errStyle.Render("Cannot reach "+m.pending.API.BaseURL) + "\n\n" +
		reason + "\n\n" + hint
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server").
				Placeholder("http://localhost:8080").
				Value(&m.fb.baseURL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("Request timeout (seconds)").
				Value(&m.fb.timeoutSec).
				Validate(validateNumber),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Delay between awards (ms)").
				Value(&m.fb.stepDelayMs).
				Validate(validateNumber),
			huh.NewInput().
				Title("Toast duration (ms)").
				Value(&m.fb.toastDuration).
				Validate(validateNumber),
			huh.NewConfirm().
				Title("Play a sound for each award?").
				Value(&m.fb.soundEnabled),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warning", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&m.fb.logLevel),
		),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return fmt.Errorf("server must be a full URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server must use http or https")
	}
	return nil
}

func validateNumber(s string) error {
	_, err := parseNonNegative("Value", s)
	return err
}

func parseNonNegative(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", field)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return n, nil
}
