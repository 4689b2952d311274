package api

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by both login endpoints.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`

	// Username is only filled by the OAuth login endpoint.
	Username string `json:"username,omitempty"`
}

// OAuthLoginRequest carries a Google ID token to the backend.
type OAuthLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Image    string `json:"image,omitempty"`
}

// RecipeInput is the body of POST /api/recipes and PUT /api/recipes/{id}.
type RecipeInput struct {
	ID            int    `json:"id,omitempty"`
	Title         string `json:"title" validate:"required"`
	Method        string `json:"method" validate:"required"`
	TimeToCook    string `json:"timeToCook" validate:"required"`
	VideoLink     string `json:"videoLink,omitempty" validate:"omitempty,url"`
	Image         string `json:"image,omitempty"`
	Username      string `json:"username"`
	IngredientIDs []int  `json:"ingredients_id"`
	CategoryIDs   []int  `json:"categories_id"`
}

// ReviewInput is the body of POST /api/reviews and PUT /api/reviews/{id}.
type ReviewInput struct {
	ID          int    `json:"id,omitempty"`
	UserID      int    `json:"userId" validate:"required,gt=0"`
	RecipeID    int    `json:"recipeId" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Image       string `json:"image,omitempty"`
}
