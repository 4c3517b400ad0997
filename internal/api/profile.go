package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zhaohz/homeseek/internal/models"
)

// Profile groups the preference, prediction, history, and favorites calls.
type Profile struct {
	c *Client
}

// SetPreferences saves a user's search preferences.
func (p *Profile) SetPreferences(ctx context.Context, req models.PreferenceRequest) (*models.PreferenceResponse, error) {
	var resp models.PreferenceResponse
	if err := p.c.do(ctx, http.MethodPost, "/profile/preferences", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PredictPrice asks the price model for a per-square-meter estimate.
func (p *Profile) PredictPrice(ctx context.Context, req models.PricePredictionRequest) (*models.PricePredictionResponse, error) {
	var resp models.PricePredictionResponse
	if err := p.c.do(ctx, http.MethodPost, "/profile/price-predict", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History fetches a user's browsing history.
func (p *Profile) History(ctx context.Context, userID int64) (*models.HistoryResponse, error) {
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	var resp models.HistoryResponse
	if err := p.c.do(ctx, http.MethodGet, "/profile/history", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Favorites fetches a user's favorite listings.
func (p *Profile) Favorites(ctx context.Context, userID int64) (*models.FavoritesResponse, error) {
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	var resp models.FavoritesResponse
	if err := p.c.do(ctx, http.MethodGet, "/profile/favorites", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
