package model

import "time"

// User is a Munchie account as returned by the users endpoints.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Level        int       `json:"level"`
	Experience   int       `json:"experience"`
	Title        string    `json:"title"`
	Image        string    `json:"image"`
	CreationDate time.Time `json:"creationDate"`
	RecipeIDs    []int     `json:"recipeIds"`
	ReviewIDs    []int     `json:"reviewIds"`
	AwardIDs     []int     `json:"awardIds"`
}

// Recipe is a published recipe.
type Recipe struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Image         string  `json:"image"`
	Method        string  `json:"method"`
	TimeToCook    string  `json:"timeToCook"`
	Rating        float64 `json:"rating"`
	Username      string  `json:"username"`
	VideoLink     string  `json:"videoLink"`
	IngredientIDs []int   `json:"ingredients_id"`
	ReviewIDs     []int   `json:"reviews_id"`
	CategoryIDs   []int   `json:"categories_id"`
}

// Review is a user's rating of a recipe.
type Review struct {
	ID          int    `json:"id"`
	UserID      int    `json:"userId"`
	RecipeID    int    `json:"recipeId"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
	Image       string `json:"image"`
}

// Award is the server-side description of an award.
type Award struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
