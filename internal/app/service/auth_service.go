package service

import (
	"context"
	"errors"

	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/pkg/logger"
	"github.com/norsbakery/storefront/pkg/supabase"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrMissingCredentials = errors.New("email and password are required")
)

// IdentityProvider is the hosted identity service.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error)
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*model.User, string, error)
	CurrentUser(ctx context.Context, accessToken string) (*model.User, error)
	SignOut(ctx context.Context, accessToken string)
}

type authService struct {
	identity IdentityProvider
}

func NewAuthService(identity IdentityProvider) AuthService {
	return &authService{identity: identity}
}

// SignIn returns the signed-in user and their access token. Errors from the
// identity service are returned unchanged so their message can be shown.
func (s *authService) SignIn(ctx context.Context, email, password string) (*model.User, string, error) {
	logger.Info("Attempting sign-in", map[string]interface{}{
		"email": email,
	})

	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	session, err := s.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		logger.Warn("Sign-in failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, "", err
	}

	user := toModelUser(&session.User)
	logger.Info("User signed in", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, session.AccessToken, nil
}

func (s *authService) CurrentUser(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, ErrNotAuthenticated
	}

	u, err := s.identity.GetUser(ctx, accessToken)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.Unauthorized() {
			logger.Debug("Access token rejected", map[string]interface{}{
				"status": apiErr.Status,
			})
			return nil, ErrNotAuthenticated
		}
		logger.Error("Failed to fetch current user", err)
		return nil, err
	}
	if u == nil || u.ID == "" {
		return nil, ErrNotAuthenticated
	}
	return toModelUser(u), nil
}

// SignOut revokes the token on a best-effort basis.
func (s *authService) SignOut(ctx context.Context, accessToken string) {
	if accessToken == "" {
		return
	}
	if err := s.identity.SignOut(ctx, accessToken); err != nil {
		logger.Warn("Sign-out request failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	logger.Info("User signed out")
}

func toModelUser(u *supabase.User) *model.User {
	return &model.User{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
