package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zhaohz/homeseek/internal/models"
)

// Query groups the search and favorite-toggle calls.
type Query struct {
	c *Client
}

// SearchProperties runs a filtered listing search.
func (q *Query) SearchProperties(ctx context.Context, params models.QueryParams) (*models.QueryResponse, error) {
	var resp models.QueryResponse
	if err := q.c.do(ctx, http.MethodGet, "/query", queryValues(params), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddFavorite marks a listing as a favorite of the user.
func (q *Query) AddFavorite(ctx context.Context, userID, propertyID int64) (*models.FavoriteResponse, error) {
	var resp models.FavoriteResponse
	if err := q.c.do(ctx, http.MethodPost, "/query/favorite", favoriteValues(userID, propertyID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveFavorite removes a listing from the user's favorites.
func (q *Query) RemoveFavorite(ctx context.Context, userID, propertyID int64) (*models.FavoriteResponse, error) {
	var resp models.FavoriteResponse
	if err := q.c.do(ctx, http.MethodDelete, "/query/favorite", favoriteValues(userID, propertyID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func favoriteValues(userID, propertyID int64) url.Values {
	return url.Values{
		"userId":     {strconv.FormatInt(userID, 10)},
		"propertyId": {strconv.FormatInt(propertyID, 10)},
	}
}

// queryValues encodes the non-zero search filters as query parameters.
func queryValues(p models.QueryParams) url.Values {
	q := url.Values{}
	setStr := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	setInt := func(key string, val int) {
		if val != 0 {
			q.Set(key, strconv.Itoa(val))
		}
	}
	setFloat := func(key string, val float64) {
		if val != 0 {
			q.Set(key, strconv.FormatFloat(val, 'f', -1, 64))
		}
	}

	setStr("keyword", p.Keyword)
	setStr("district", p.District)
	setFloat("minPrice", p.MinPrice)
	setFloat("maxPrice", p.MaxPrice)
	setStr("propertyType", p.PropertyType)
	setStr("orientation", p.Orientation)
	setStr("status", p.Status)
	setInt("minBedrooms", p.MinBedrooms)
	setInt("maxBedrooms", p.MaxBedrooms)
	setFloat("minArea", p.MinArea)
	setFloat("maxArea", p.MaxArea)
	setInt("minViewCount", p.MinViewCount)
	setInt("maxViewCount", p.MaxViewCount)
	return q
}
