package client

import (
	"context"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
)

// Client is the NutriTrack backend API.
type Client interface {
	Register(ctx context.Context, user models.RegisterUser) error
	// Login returns the bearer token issued for the credentials.
	Login(ctx context.Context, creds models.LoginUser) (string, error)
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error

	// CreateMeal asks the backend to parse a free-text meal description.
	CreateMeal(ctx context.Context, description, name string) (*models.MealResult, error)
	TodayMeals(ctx context.Context) (*models.TodaySummary, error)
	// ListMeals returns all meals, or those of one date when date is not empty.
	ListMeals(ctx context.Context, date string) ([]models.MealRecord, error)
	RenameMeal(ctx context.Context, id, name string) (*models.MealResult, error)
	// UpdateMeal re-parses a meal from a revised description.
	UpdateMeal(ctx context.Context, id, description, name string) (*models.MealResult, error)
	DeleteMeal(ctx context.Context, id string) error

	AskQuestion(ctx context.Context, question string) (string, error)
	Converse(ctx context.Context, message string) (*models.AssistantReply, error)
}

// TokenSource yields the bearer token for outbound requests. An empty token
// is sent as-is and left for the backend to reject.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
