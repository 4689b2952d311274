package model

import (
	"errors"
	"fmt"
)

// ErrUnknownAward is returned when an award id falls outside the catalog.
var ErrUnknownAward = errors.New("unknown award")

// AwardEntry is one entry of the static award catalog.
type AwardEntry struct {
	ID          int
	DisplayName string

	// Image is the asset file name shipped with the web client.
	Image string

	// Glyph is the short badge drawn in place of the image in a terminal.
	Glyph string
}

// AwardCount is the fixed size of the award catalog.
const AwardCount = 16

// awardCatalog is indexed by award id; slot 0 is unused.
var awardCatalog = [AwardCount + 1]AwardEntry{
	{},
	{ID: 1, DisplayName: "Welcome Aboard", Image: "welcome_aboard.png", Glyph: "⚓"},
	{ID: 2, DisplayName: "First Taste", Image: "first_taste.png", Glyph: "🥄"},
	{ID: 3, DisplayName: "Recipe Developer", Image: "recipe_developer.png", Glyph: "📝"},
	{ID: 4, DisplayName: "Culinary Architect", Image: "culinary_architect.png", Glyph: "🏛"},
	{ID: 5, DisplayName: "Taste Tester", Image: "taste_tester.png", Glyph: "👅"},
	{ID: 6, DisplayName: "Savory Critic", Image: "savory_critic.png", Glyph: "🧂"},
	{ID: 7, DisplayName: "Epicurean Evaluator", Image: "epicurean_evaluator.png", Glyph: "🍷"},
	{ID: 8, DisplayName: "Gourmet Judge", Image: "gourmet_judge.png", Glyph: "⚖"},
	{ID: 9, DisplayName: "Star Chef", Image: "star_chef.png", Glyph: "⭐"},
	{ID: 10, DisplayName: "Master Chef", Image: "master_chef.png", Glyph: "👨‍🍳"},
	{ID: 11, DisplayName: "Cooking Enthusiast", Image: "cooking_enthusiast.png", Glyph: "🔥"},
	{ID: 12, DisplayName: "Culinary Virtuoso", Image: "culinary_virtuoso.png", Glyph: "🎻"},
	{ID: 13, DisplayName: "Gastronomy Guru", Image: "gastronomy_guru.png", Glyph: "🧘"},
	{ID: 14, DisplayName: "Seasoned Member", Image: "seasoned_member.png", Glyph: "🌶"},
	{ID: 15, DisplayName: "Veteran Cook", Image: "veteran_cook.png", Glyph: "🎖"},
	{ID: 16, DisplayName: "Culinary Explorer", Image: "culinary_explorer.png", Glyph: "🧭"},
}

// LookupAward resolves an award id against the catalog.
func LookupAward(id int) (AwardEntry, error) {
	if id < 1 || id > AwardCount {
		return AwardEntry{}, fmt.Errorf("award %d: %w", id, ErrUnknownAward)
	}
	return awardCatalog[id], nil
}

// AwardCatalog returns the catalog entries in id order.
func AwardCatalog() []AwardEntry {
	entries := make([]AwardEntry, 0, AwardCount)
	for _, e := range awardCatalog[1:] {
		entries = append(entries, e)
	}
	return entries
}
