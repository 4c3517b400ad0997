package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zhaohz/homeseek/internal/models"
)

// Auth groups the login, registration, and home-page calls.
type Auth struct {
	c *Client
}

// Login authenticates with username and password.
func (a *Auth) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := a.c.do(ctx, http.MethodPost, "/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account.
func (a *Auth) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := a.c.do(ctx, http.MethodPost, "/login/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout tells the server to end the session.
func (a *Auth) Logout(ctx context.Context) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := a.c.do(ctx, http.MethodPost, "/logout", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HomeOverview fetches the landing-page header data.
func (a *Auth) HomeOverview(ctx context.Context) (*models.HomeOverview, error) {
	var resp models.HomeOverview
	if err := a.c.do(ctx, http.MethodGet, "/home/overview", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyProfile fetches the wholesale profile view for a user.
func (a *Auth) MyProfile(ctx context.Context, userID int64) (*models.ProfileDetailResponse, error) {
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	var resp models.ProfileDetailResponse
	if err := a.c.do(ctx, http.MethodGet, "/home/me", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GuessYouLike fetches the home-page recommendation cards.
func (a *Auth) GuessYouLike(ctx context.Context) (*models.PropertyCardList, error) {
	var resp models.PropertyCardList
	if err := a.c.do(ctx, http.MethodGet, "/home/guess-you-like", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueryRecommendations fetches the search-page entry recommendations.
func (a *Auth) QueryRecommendations(ctx context.Context) (*models.PropertyCardList, error) {
	var resp models.PropertyCardList
	if err := a.c.do(ctx, http.MethodGet, "/home/go-query", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
