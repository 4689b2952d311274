// Package leaderboard orders users for the ranking view.
package leaderboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nhle/munchie/internal/model"
)

// Field is a sortable leaderboard column.
type Field string

const (
	FieldUsername   Field = "username"
	FieldTitle      Field = "title"
	FieldLevel      Field = "level"
	FieldExperience Field = "experience"
	FieldRecipes    Field = "recipes"
	FieldReviews    Field = "reviews"
	FieldAwards     Field = "awards"
)

// Fields lists the columns in display order.
var Fields = []Field{FieldUsername, FieldTitle, FieldLevel, FieldExperience, FieldRecipes, FieldReviews, FieldAwards}

// Order is a sort direction.
type Order int

const (
	Asc Order = iota
	Desc
)

// ParseField resolves a column name.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown leaderboard field %q", s)
}

// textual reports whether f sorts alphabetically.
func (f Field) textual() bool {
	return f == FieldUsername || f == FieldTitle
}

// DefaultOrder is the direction a column starts in: text columns A to Z,
// numeric columns highest first.
func DefaultOrder(f Field) Order {
	if f.textual() {
		return Asc
	}
	return Desc
}

// State is the current sort column and direction.
type State struct {
	Field Field
	Order Order
}

// DefaultState ranks by level, highest first.
func DefaultState() State {
	return State{Field: FieldLevel, Order: Desc}
}

// Toggle selects f. Selecting the current column flips its direction;
// selecting another column starts it in its default direction.
func (s State) Toggle(f Field) State {
	if s.Field == f {
		if s.Order == Asc {
			return State{Field: f, Order: Desc}
		}
		return State{Field: f, Order: Asc}
	}
	return State{Field: f, Order: DefaultOrder(f)}
}

// Arrow returns the header indicator for f, or "" if f is not the sort
// column. Text columns point down when ascending; numeric columns point
// down when descending.
func (s State) Arrow(f Field) string {
	if s.Field != f {
		return ""
	}
	if f.textual() {
		if s.Order == Asc {
			return "↓"
		}
		return "↑"
	}
	if s.Order == Asc {
		return "↑"
	}
	return "↓"
}

// Sort returns a sorted copy of users. Ties keep their input order.
func Sort(users []model.User, s State) []model.User {
	out := make([]model.User, len(users))
	copy(out, users)

	less := func(a, b model.User) bool {
		switch s.Field {
		case FieldUsername:
			return strings.ToLower(a.Username) < strings.ToLower(b.Username)
		case FieldTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case FieldLevel:
			return a.Level < b.Level
		case FieldExperience:
			return a.Experience < b.Experience
		case FieldRecipes:
			return len(a.RecipeIDs) < len(b.RecipeIDs)
		case FieldReviews:
			return len(a.ReviewIDs) < len(b.ReviewIDs)
		case FieldAwards:
			return len(a.AwardIDs) < len(b.AwardIDs)
		}
		return false
	}

	sort.SliceStable(out, func(i, j int) bool {
		if s.Order == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
