// Package services contains application services for the NutriTrack client.
// This file defines the authentication service: register, login, logout and
// the profile calls, plus the mapping from the saved token to the local
// storage namespace of the signed-in user.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultNamespace is used when the token carries no usable subject.
// Namespaces taken from a token carry UserNamespacePrefix, so no subject
// can map onto it.
const (
	DefaultNamespace    = "default"
	UserNamespacePrefix = "u:"
)

var ErrNotLoggedIn = errors.New("not logged in")

// subjectClaims are tried in order when looking for the user id in a token.
// ASP.NET backends usually put it in nameid or the long claim URI.
var subjectClaims = []string{
	"sub",
	"nameid",
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
	"email",
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: validate the form locally, then create the account.
//   - Login: authenticate and persist the bearer token.
//   - Logout: forget the token.
//   - UserNamespace: opaque per-user key prefix for local storage.
//
// Form validation failures are returned as *FormError before any request is
// sent.
type AuthService interface {
	Register(ctx context.Context, user models.RegisterUser) error
	Login(ctx context.Context, creds models.LoginUser) error
	Logout(ctx context.Context) error
	LoggedIn(ctx context.Context) bool
	UserNamespace(ctx context.Context) string
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error
}

type authService struct {
	client   client.Client
	tokens   *TokenStore
	validate *validator.Validate
	logger   logging.Logger
}

func NewAuthService(c client.Client, tokens *TokenStore, logger logging.Logger) AuthService {
	return &authService{
		client:   c,
		tokens:   tokens,
		validate: newValidator(),
		logger:   logger.With("component", "auth"),
	}
}

func (a *authService) Register(ctx context.Context, user models.RegisterUser) error {
	if err := validateForm(a.validate, user); err != nil {
		return err
	}
	if err := a.client.Register(ctx, user); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	a.logger.Info(ctx, "account registered", "email", user.Email)
	return nil
}

// Login authenticates and saves the issued token. A previous token is kept
// when the login fails.
func (a *authService) Login(ctx context.Context, creds models.LoginUser) error {
	if err := validateForm(a.validate, creds); err != nil {
		return err
	}
	token, err := a.client.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.tokens.SetToken(ctx, token); err != nil {
		return err
	}
	a.logger.Info(ctx, "logged in", "namespace", namespaceFromToken(token))
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) LoggedIn(ctx context.Context) bool {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		a.logger.Warn(ctx, "token unreadable", "err", err)
		return false
	}
	return token != ""
}

// UserNamespace derives the storage namespace from the saved token's
// subject. The token signature is not checked: the value only partitions
// local data, the backend remains the authority on identity.
func (a *authService) UserNamespace(ctx context.Context) string {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		a.logger.Warn(ctx, "token unreadable, using default namespace", "err", err)
		return DefaultNamespace
	}
	return namespaceFromToken(token)
}

func namespaceFromToken(token string) string {
	if token == "" {
		return DefaultNamespace
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return DefaultNamespace
	}
	for _, name := range subjectClaims {
		if v, ok := claims[name].(string); ok && v != "" {
			return UserNamespacePrefix + v
		}
	}
	return DefaultNamespace
}

func (a *authService) Profile(ctx context.Context) (*models.Profile, error) {
	p, err := a.client.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile error: %w", err)
	}
	return p, nil
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	if err := validateForm(a.validate, upd); err != nil {
		return err
	}
	if err := a.client.UpdateProfile(ctx, upd); err != nil {
		return fmt.Errorf("update profile error: %w", err)
	}
	return nil
}
