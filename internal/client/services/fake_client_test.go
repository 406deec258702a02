package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---- fake client ----

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	mu sync.Mutex

	RegisterErr error

	LoginToken string
	LoginErr   error

	ProfileRet *models.Profile
	ProfileErr error
	UpdateErr  error

	CreateRet *models.MealResult
	CreateErr error
	// OnCreate runs inside CreateMeal before it returns, e.g. to inspect
	// state while the call is in flight.
	OnCreate func(ctx context.Context) error

	TodayRet *models.TodaySummary
	TodayErr error
	OnToday  func(ctx context.Context) error

	ListRet []models.MealRecord
	ListErr error

	RenameRet *models.MealResult
	RenameErr error

	UpdateMealRet *models.MealResult
	UpdateMealErr error

	DeleteErr error
	OnDelete  func(ctx context.Context) error

	AskRet string
	AskErr error

	ConverseRet *models.AssistantReply
	ConverseErr error
	OnConverse  func(ctx context.Context) error

	// for argument checks
	Calls          []string
	LastRegister   models.RegisterUser
	LastLogin      models.LoginUser
	LastProfileUpd models.ProfileUpdate
	LastMealID     string
	LastText       string
	LastName       string
	LastDate       string
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

func (f *fakeClient) called(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeClient) Register(ctx context.Context, user models.RegisterUser) error {
	f.record("register")
	f.LastRegister = user
	return f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, creds models.LoginUser) (string, error) {
	f.record("login")
	f.LastLogin = creds
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	f.record("profile")
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	f.record("updateprofile")
	f.LastProfileUpd = upd
	return f.UpdateErr
}

func (f *fakeClient) CreateMeal(ctx context.Context, description, name string) (*models.MealResult, error) {
	f.record("create")
	f.LastText, f.LastName = description, name
	if f.OnCreate != nil {
		if err := f.OnCreate(ctx); err != nil {
			return nil, err
		}
	}
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) TodayMeals(ctx context.Context) (*models.TodaySummary, error) {
	f.record("today")
	if f.OnToday != nil {
		if err := f.OnToday(ctx); err != nil {
			return nil, err
		}
	}
	return f.TodayRet, f.TodayErr
}

func (f *fakeClient) ListMeals(ctx context.Context, date string) ([]models.MealRecord, error) {
	f.record("list")
	f.LastDate = date
	return f.ListRet, f.ListErr
}

func (f *fakeClient) RenameMeal(ctx context.Context, id, name string) (*models.MealResult, error) {
	f.record("rename")
	f.LastMealID, f.LastName = id, name
	return f.RenameRet, f.RenameErr
}

func (f *fakeClient) UpdateMeal(ctx context.Context, id, description, name string) (*models.MealResult, error) {
	f.record("update")
	f.LastMealID, f.LastText, f.LastName = id, description, name
	return f.UpdateMealRet, f.UpdateMealErr
}

func (f *fakeClient) DeleteMeal(ctx context.Context, id string) error {
	f.record("delete")
	f.LastMealID = id
	if f.OnDelete != nil {
		if err := f.OnDelete(ctx); err != nil {
			return err
		}
	}
	return f.DeleteErr
}

func (f *fakeClient) AskQuestion(ctx context.Context, question string) (string, error) {
	f.record("ask")
	f.LastText = question
	return f.AskRet, f.AskErr
}

func (f *fakeClient) Converse(ctx context.Context, message string) (*models.AssistantReply, error) {
	f.record("converse")
	f.LastText = message
	if f.OnConverse != nil {
		if err := f.OnConverse(ctx); err != nil {
			return nil, err
		}
	}
	return f.ConverseRet, f.ConverseErr
}

var _ client.Client = (*fakeClient)(nil)
