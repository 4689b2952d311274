// Package journal lists the local record of award acknowledgements.
package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/store"
	"github.com/nhle/munchie/internal/theme"
)

// Limit caps how many journal rows are shown.
const Limit = 200

// Reader is the part of the store the journal view reads.
type Reader interface {
	ListAcks(ctx context.Context, filter store.AckFilter) ([]model.AckRecord, error)
	CountAcks(ctx context.Context) (map[model.AckStatus]int, error)
}

// LoadedMsg carries journal rows and per-status totals.
type LoadedMsg struct {
	Records []model.AckRecord
	Counts  map[model.AckStatus]int
	Err     error
}

// Model is the journal view component.
type Model struct {
	table   table.Model
	reader  Reader
	records []model.AckRecord
	counts  map[model.AckStatus]int
	err     error
	width   int
	height  int
}

// New creates a new journal view.
func New(reader Reader, width, height int) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "When", Width: 19},
			{Title: "Status", Width: 12},
			{Title: "Notification", Width: 12},
			{Title: "Award", Width: 22},
			{Title: "Batch", Width: 8},
			{Title: "Error", Width: 30},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-3, 1)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.ColorOrange).
		Bold(true)
	t.SetStyles(styles)

	return Model{
		table:  t,
		reader: reader,
		width:  width,
		height: height,
	}
}

// Init returns the command loading the journal.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load returns a tea.Cmd reading the most recent journal rows.
func (m Model) Load() tea.Cmd {
	reader := m.reader
	return func() tea.Msg {
		ctx := context.Background()
		records, err := reader.ListAcks(ctx, store.AckFilter{Limit: Limit})
		if err != nil {
			return LoadedMsg{Err: err}
		}
		counts, err := reader.CountAcks(ctx)
		return LoadedMsg{Records: records, Counts: counts, Err: err}
	}
}

// Update handles messages for the journal view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(LoadedMsg); ok {
		m.err = loaded.Err
		m.records = loaded.Records
		m.counts = loaded.Counts
		m.table.SetRows(rows(m.records))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m Model) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.ErrorStyle.Render("Could not read the journal.") + "\n\n" + m.err.Error())
	}
	if len(m.records) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Nothing acknowledged yet.")
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.summary(), m.table.View())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-3, 1))
}

func (m Model) summary() string {
	parts := make([]string, 0, len(model.AckStatuses))
	for _, s := range model.AckStatuses {
		parts = append(parts, theme.AckStatusStyle(s).Render(fmt.Sprintf("%s %d", s, m.counts[s])))
	}
	return strings.Join(parts, "  ")
}

func rows(records []model.AckRecord) []table.Row {
	out := make([]table.Row, 0, len(records))
	for _, r := range records {
		award := fmt.Sprintf("#%d", r.AwardID)
		if e, err := model.LookupAward(r.AwardID); err == nil {
			award = e.DisplayName
		}
		batch := r.BatchID
		if len(batch) > 8 {
			batch = batch[:8]
		}
		out = append(out, table.Row{
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			string(r.Status),
			fmt.Sprintf("%d", r.NotificationID),
			award,
			batch,
			r.Error,
		})
	}
	return out
}
