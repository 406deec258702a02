package cli

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/client/config"
	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/client/services"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory client.Client.
type fakeAPI struct {
	Token    string
	LoginErr error

	RegisterErr  error
	LastRegister models.RegisterUser

	ProfileRet *models.Profile
	ProfileErr error
	LastUpdate models.ProfileUpdate

	CreateRet   *models.MealResult
	CreateErr   error
	UpdateRet   *models.MealResult
	RenameErr   error
	DeleteErr   error
	TodayRet    *models.TodaySummary
	ListRet     []models.MealRecord
	AskRet      string
	AskErr      error
	ConverseRet *models.AssistantReply
	ConverseErr error

	LastText   string
	LastMealID string
	LastName   string
	Calls      []string
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) called(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Register(_ context.Context, user models.RegisterUser) error {
	f.Calls = append(f.Calls, "register")
	f.LastRegister = user
	return f.RegisterErr
}

func (f *fakeAPI) Login(_ context.Context, _ models.LoginUser) (string, error) {
	f.Calls = append(f.Calls, "login")
	return f.Token, f.LoginErr
}

func (f *fakeAPI) GetProfile(context.Context) (*models.Profile, error) {
	f.Calls = append(f.Calls, "profile")
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeAPI) UpdateProfile(_ context.Context, upd models.ProfileUpdate) error {
	f.Calls = append(f.Calls, "updateprofile")
	f.LastUpdate = upd
	return f.ProfileErr
}

func (f *fakeAPI) CreateMeal(_ context.Context, description, _ string) (*models.MealResult, error) {
	f.Calls = append(f.Calls, "create")
	f.LastText = description
	return f.CreateRet, f.CreateErr
}

func (f *fakeAPI) TodayMeals(context.Context) (*models.TodaySummary, error) {
	f.Calls = append(f.Calls, "today")
	if f.TodayRet == nil {
		return &models.TodaySummary{}, nil
	}
	return f.TodayRet, nil
}

func (f *fakeAPI) ListMeals(context.Context, string) ([]models.MealRecord, error) {
	f.Calls = append(f.Calls, "list")
	return f.ListRet, nil
}

func (f *fakeAPI) RenameMeal(_ context.Context, id, name string) (*models.MealResult, error) {
	f.Calls = append(f.Calls, "rename")
	f.LastMealID, f.LastName = id, name
	return &models.MealResult{Success: f.RenameErr == nil}, f.RenameErr
}

func (f *fakeAPI) UpdateMeal(_ context.Context, id, description, _ string) (*models.MealResult, error) {
	f.Calls = append(f.Calls, "update")
	f.LastMealID, f.LastText = id, description
	return f.UpdateRet, nil
}

func (f *fakeAPI) DeleteMeal(_ context.Context, id string) error {
	f.Calls = append(f.Calls, "delete")
	f.LastMealID = id
	return f.DeleteErr
}

func (f *fakeAPI) AskQuestion(_ context.Context, q string) (string, error) {
	f.Calls = append(f.Calls, "ask")
	f.LastText = q
	return f.AskRet, f.AskErr
}

func (f *fakeAPI) Converse(_ context.Context, msg string) (*models.AssistantReply, error) {
	f.Calls = append(f.Calls, "converse")
	f.LastText = msg
	return f.ConverseRet, f.ConverseErr
}

// signedToken returns a JWT whose subject is sub.
func signedToken(t *testing.T, sub string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newTestApp builds an App over an in-memory database and api, writing
// its output to the returned buffer.
func newTestApp(t *testing.T, api *fakeAPI) (*App, *bytes.Buffer) {
	t.Helper()
	db := setupDB(t)
	cfg := &config.Config{RequestTimeout: time.Second}
	a := newApp(cfg, db, api, services.NewTokenStore(db), logging.Discard())
	out := &bytes.Buffer{}
	a.out = out
	a.reader = rdr("")
	return a, out
}

// loggedInApp returns an App with an open session for user sub.
func loggedInApp(t *testing.T, api *fakeAPI, sub string) (*App, *bytes.Buffer) {
	t.Helper()
	api.Token = signedToken(t, sub)
	a, out := newTestApp(t, api)
	restore := stubInputs(t, "ana@example.org", []byte("password1"))
	defer restore()
	require.NoError(t, a.Login(context.Background()))
	out.Reset()
	return a, out
}
