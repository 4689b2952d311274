package feed

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// DefaultToastDuration is how long a toast stays up once it has entered.
const DefaultToastDuration = 4 * time.Second

const toastWidth = 28

// showMsg makes toast index of batch visible.
type showMsg struct {
	batchID string
	index   int
}

// dismissMsg hides toast index of batch.
type dismissMsg struct {
	batchID string
	index   int
}

// IsTick reports whether msg is one of the feed's own timing messages.
func IsTick(msg tea.Msg) bool {
	switch msg.(type) {
	case showMsg, dismissMsg:
		return true
	}
	return false
}

// Model is the toast stack. Ticks carry the batch id they were issued for,
// so ticks of a superseded batch fall through without effect.
type Model struct {
	step     time.Duration
	duration time.Duration

	batchID string
	toasts  []Toast
	visible map[int]bool
}

// New creates an empty feed. step is the spacing between toast entrances
// and duration how long each one stays up.
func New(step, duration time.Duration) Model {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return Model{
		step:     step,
		duration: duration,
		visible:  make(map[int]bool),
	}
}

// SetBatch replaces the feed contents with batch and returns the ticks that
// bring each toast in.
func (m Model) SetBatch(batch model.Batch) (Model, tea.Cmd) {
	m.batchID = batch.ID
	m.toasts = Toasts(batch.Notifications, m.step)
	m.visible = make(map[int]bool, len(m.toasts))

	cmds := make([]tea.Cmd, 0, len(m.toasts))
	for _, t := range m.toasts {
		cmds = append(cmds, m.tick(t.Delay, showMsg{batchID: batch.ID, index: t.Index}))
	}
	return m, tea.Batch(cmds...)
}

// Update handles show and dismiss ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case showMsg:
		if msg.batchID != m.batchID || msg.index >= len(m.toasts) {
			return m, nil
		}
		m.visible[msg.index] = true
		return m, m.tick(m.duration, dismissMsg(msg))

	case dismissMsg:
		if msg.batchID != m.batchID {
			return m, nil
		}
		delete(m.visible, msg.index)
	}
	return m, nil
}

// DismissAll hides every visible toast. Toasts still waiting to enter are
// left alone.
func (m *Model) DismissAll() {
	m.visible = make(map[int]bool)
}

// BatchID returns the id of the batch on display.
func (m Model) BatchID() string {
	return m.batchID
}

// Toasts returns every toast of the current batch, visible or not.
func (m Model) Toasts() []Toast {
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Visible returns the toasts currently on screen in index order.
func (m Model) Visible() []Toast {
	indexes := make([]int, 0, len(m.visible))
	for i := range m.visible {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	out := make([]Toast, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, m.toasts[i])
	}
	return out
}

// View renders the visible toasts stacked top to bottom, or "" when none
// are up.
func (m Model) View() string {
	visible := m.Visible()
	if len(visible) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(visible))
	for _, t := range visible {
		rendered = append(rendered, renderToast(t))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func (m Model) tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

func renderToast(t Toast) string {
	lines := []string{theme.ToastTitleStyle.Render(t.Title)}
	if t.Name != "" {
		lines = append(lines, t.Glyph+" "+t.Name)
	}
	if t.Image != "" {
		lines = append(lines, theme.DimmedStyle.Render(t.Image))
	}
	return theme.ToastStyle.
		Width(toastWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
