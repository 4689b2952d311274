package recipelist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// RecipeItem wraps a model.Recipe so it can be used in a bubbles/list.
type RecipeItem struct {
	Recipe model.Recipe
}

// FilterValue returns the string used for fuzzy filtering.
func (i RecipeItem) FilterValue() string { return i.Recipe.Title }

// Title returns the recipe title for the list.
func (i RecipeItem) Title() string { return i.Recipe.Title }

// Description returns a short summary line for the list.
func (i RecipeItem) Description() string {
	parts := []string{"@" + i.Recipe.Username}
	if i.Recipe.TimeToCook != "" {
		parts = append(parts, i.Recipe.TimeToCook)
	}
	parts = append(parts, stars(i.Recipe.Rating))
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering recipe rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(RecipeItem)
	if !ok {
		return
	}
	r := ri.Recipe

	rating := theme.RatingStyle(r.Rating).Render(stars(r.Rating))

	author := lipgloss.NewStyle().
		Foreground(theme.ColorBlue).
		Render("@" + r.Username)

	cook := ""
	if r.TimeToCook != "" {
		cook = theme.DimmedStyle.Render("  " + r.TimeToCook)
	}

	line := fmt.Sprintf("%s %s  %s%s", rating, r.Title, author, cook)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// stars renders a 0..5 rating rounded to the nearest whole star.
func stars(rating float64) string {
	n := int(rating + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
