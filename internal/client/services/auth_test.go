package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func validRegistration() models.RegisterUser {
	return models.RegisterUser{
		FullName:      "Ana Souza",
		Email:         "ana@example.com",
		Password:      "secret123",
		BirthDate:     "1990-05-01",
		HeightCm:      170,
		WeightKg:      65,
		Gender:        models.GenderFemale,
		ActivityLevel: models.ActivityModerate,
		Objective:     models.ObjectiveLoseFat,
	}
}

func newAuth(t *testing.T, fc *fakeClient) (AuthService, *TokenStore) {
	t.Helper()
	tokens := NewTokenStore(setupDB(t))
	return NewAuthService(fc, tokens, logging.Discard()), tokens
}

func TestRegister_InvalidFormSendsNothing(t *testing.T) {
	fc := &fakeClient{}
	auth, _ := newAuth(t, fc)

	u := validRegistration()
	u.Email = "not-an-email"
	u.Password = "short"
	u.HeightCm = 20

	err := auth.Register(context.Background(), u)

	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, map[string]string{"email": "email", "senha": "min", "alturaEmCm": "min"}, fe.Fields)
	assert.Equal(t, "invalid fields: alturaEmCm (min), email (email), senha (min)", fe.Error())
	assert.Zero(t, fc.called("register"))
}

func TestRegister_Valid(t *testing.T) {
	fc := &fakeClient{}
	auth, _ := newAuth(t, fc)

	require.NoError(t, auth.Register(context.Background(), validRegistration()))
	assert.Equal(t, 1, fc.called("register"))
	assert.Equal(t, "ana@example.com", fc.LastRegister.Email)
}

func TestRegister_BackendErrorIsWrapped(t *testing.T) {
	fc := &fakeClient{RegisterErr: &client.APIError{Status: 400, Message: "e-mail already registered"}}
	auth, _ := newAuth(t, fc)

	err := auth.Register(context.Background(), validRegistration())
	msg, ok := client.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "e-mail already registered", msg)
}

func TestLogin_SavesTokenAndDerivesNamespace(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-42"})
	fc := &fakeClient{LoginToken: token}
	auth, tokens := newAuth(t, fc)
	ctx := context.Background()

	assert.False(t, auth.LoggedIn(ctx))
	assert.Equal(t, DefaultNamespace, auth.UserNamespace(ctx))

	require.NoError(t, auth.Login(ctx, models.LoginUser{Email: "ana@example.com", Password: "secret123"}))

	saved, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, saved)
	assert.True(t, auth.LoggedIn(ctx))
	assert.Equal(t, "user-42", auth.UserNamespace(ctx))

	require.NoError(t, auth.Logout(ctx))
	assert.False(t, auth.LoggedIn(ctx))
	assert.Equal(t, DefaultNamespace, auth.UserNamespace(ctx))
}

func TestLogin_FailureKeepsPreviousToken(t *testing.T) {
	fc := &fakeClient{LoginErr: client.ErrUnauthorized}
	auth, tokens := newAuth(t, fc)
	ctx := context.Background()
	require.NoError(t, tokens.SetToken(ctx, "previous"))

	err := auth.Login(ctx, models.LoginUser{Email: "ana@example.com", Password: "wrong"})
	require.ErrorIs(t, err, client.ErrUnauthorized)

	saved, _ := tokens.Token(ctx)
	assert.Equal(t, "previous", saved)
}

func TestLogin_InvalidEmail(t *testing.T) {
	fc := &fakeClient{}
	auth, _ := newAuth(t, fc)

	err := auth.Login(context.Background(), models.LoginUser{Email: "ana", Password: "x"})
	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fc.called("login"))
}

func TestNamespaceFromToken(t *testing.T) {
	assert.Equal(t, DefaultNamespace, namespaceFromToken(""))
	assert.Equal(t, DefaultNamespace, namespaceFromToken("not.a.jwt"))
	assert.Equal(t, DefaultNamespace, namespaceFromToken(signedToken(t, jwt.MapClaims{"role": "user"})))
	assert.Equal(t, "u:17", namespaceFromToken(signedToken(t, jwt.MapClaims{"nameid": "17"})))
	assert.Equal(t, "u:abc", namespaceFromToken(signedToken(t, jwt.MapClaims{
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier": "abc",
		"email": "ana@example.com",
	})))
	assert.NotEqual(t,
		namespaceFromToken(signedToken(t, jwt.MapClaims{"sub": "a"})),
		namespaceFromToken(signedToken(t, jwt.MapClaims{"sub": "b"})))

	ns := namespaceFromToken(signedToken(t, jwt.MapClaims{"sub": DefaultNamespace}))
	assert.Equal(t, "u:default", ns)
	assert.NotEqual(t, DefaultNamespace, ns, "a subject never shares the fallback namespace")
}

func TestProfile(t *testing.T) {
	fc := &fakeClient{ProfileRet: &models.Profile{FullName: "Ana", CalorieGoal: 2000}}
	auth, _ := newAuth(t, fc)
	ctx := context.Background()

	p, err := auth.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FullName)

	fc.ProfileErr = errors.New("boom")
	_, err = auth.Profile(ctx)
	require.ErrorContains(t, err, "get profile error")
}

func TestUpdateProfile_Validates(t *testing.T) {
	fc := &fakeClient{}
	auth, _ := newAuth(t, fc)
	ctx := context.Background()

	err := auth.UpdateProfile(ctx, models.ProfileUpdate{FullName: "Ana"})
	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Fields, "dataNascimento")
	assert.Zero(t, fc.called("updateprofile"))

	upd := models.ProfileUpdate{
		FullName: "Ana", BirthDate: "1990-05-01", HeightCm: 170, WeightKg: 64,
		Gender: models.GenderFemale, ActivityLevel: models.ActivityLight, Objective: models.ObjectiveRecompose,
	}
	require.NoError(t, auth.UpdateProfile(ctx, upd))
	assert.Equal(t, 64.0, fc.LastProfileUpd.WeightKg)
}
