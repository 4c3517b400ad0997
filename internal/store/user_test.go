package store

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaohz/homeseek/internal/kvstore"
	"github.com/zhaohz/homeseek/internal/models"
	"github.com/zhaohz/homeseek/internal/session"
)

func loggedInKV(t *testing.T) kvstore.Store {
	t.Helper()
	kv := kvstore.NewMem()
	err := session.Save(kv, "real-token-1", models.SessionInfo{UserID: 7, Username: "alice", UserProfile: "{}"})
	require.NoError(t, err)
	return kv
}

func newUserStore(kv kvstore.Store, fn roundTripperFunc, policy FallbackPolicy) *UserStore {
	return NewUserStore(newClients(fn), kv, testLogger(), UserConfig{
		Fallback: policy,
		Defaults: DefaultProfileDefaults(),
	})
}

func TestUserStore_CurrentUserID(t *testing.T) {
	t.Run("logged in", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), nil, FallbackEmpty)
		id, ok := s.CurrentUserID()
		assert.True(t, ok)
		assert.EqualValues(t, 7, id)
	})

	t.Run("anonymous", func(t *testing.T) {
		s := newUserStore(kvstore.NewMem(), nil, FallbackEmpty)
		_, ok := s.CurrentUserID()
		assert.False(t, ok)
	})
}

func TestLoadUserInfo_NoUser(t *testing.T) {
	var calls atomic.Int64
	s := newUserStore(kvstore.NewMem(), func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResp(200, `{}`), nil
	}, FallbackEmpty)

	s.LoadUserInfo(context.Background())

	assert.Zero(t, calls.Load(), "no request without a current user")
	assert.False(t, s.Loading())
}

func TestLoadUserInfo_Success(t *testing.T) {
	s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/home/me", req.URL.Path)
		assert.Equal(t, "7", req.URL.Query().Get("userId"))
		return jsonResp(200, `{
			"profile": {
				"userId": 7,
				"username": "alice",
				"joinedAt": "2024-03-01",
				"userProfile": {"preferred_locations": ["Nanshan"]},
				"preferences": {},
				"stats": {"favorites": 3, "browsed": 12, "recommendations": 5}
			},
			"message": "ok"
		}`), nil
	}, FallbackEmpty)

	s.LoadUserInfo(context.Background())

	view := s.Profile()
	assert.Equal(t, "Nanshan", view.Location)
	assert.Equal(t, "2024-03-01", view.JoinedAt)
	assert.Equal(t, 3, view.Stats.Favorites)
	assert.Equal(t, 12, view.Stats.Browsed)
	// bio/phone come from configurable defaults, not the server
	assert.Equal(t, DefaultProfileDefaults().Bio, view.Bio)
	assert.Equal(t, DefaultProfileDefaults().Phone, view.Phone)
	assert.False(t, s.Loading())
}

func TestLoadUserInfo_Failure(t *testing.T) {
	s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("backend down")
	}, FallbackEmpty)

	s.LoadUserInfo(context.Background())

	view := s.Profile()
	assert.Equal(t, DefaultProfileDefaults().Bio, view.Bio)
	assert.Equal(t, DefaultProfileDefaults().Location, view.Location)
	assert.Zero(t, view.Stats)
	assert.False(t, s.Loading(), "loading flag must clear after a failed load")
}

func TestLoadUserInfo_ReentrancyGuard(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int64

	s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		close(entered)
		<-release
		return jsonResp(200, `{"profile":{"userId":7},"message":"ok"}`), nil
	}, FallbackEmpty)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.LoadUserInfo(context.Background())
	}()

	<-entered
	s.LoadUserInfo(context.Background()) // returns immediately: load in flight
	close(release)
	<-done

	assert.EqualValues(t, 1, calls.Load(), "second call must be a no-op while a load is in flight")
}

func TestLoadFavorites(t *testing.T) {
	t.Run("success with absent count", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			return jsonResp(200, `{"items":[{"favoriteId":1,"propertyId":101,"title":"x"}],"message":"ok"}`), nil
		}, FallbackEmpty)

		s.LoadFavorites(context.Background())

		items, count := s.Favorites()
		require.Len(t, items, 1)
		assert.Equal(t, 1, count, "count falls back to list length")
	})

	t.Run("success with explicit count", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			return jsonResp(200, `{"items":[{"favoriteId":1,"propertyId":101,"title":"x"}],"count":25,"message":"ok"}`), nil
		}, FallbackEmpty)

		s.LoadFavorites(context.Background())

		_, count := s.Favorites()
		assert.Equal(t, 25, count)
	})

	t.Run("failure clears under empty policy", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("down")
		}, FallbackEmpty)

		s.LoadFavorites(context.Background())

		items, count := s.Favorites()
		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.Zero(t, count)
	})

	t.Run("failure substitutes under placeholder policy", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("down")
		}, FallbackPlaceholder)

		s.LoadFavorites(context.Background())

		items, count := s.Favorites()
		require.Len(t, items, 1)
		assert.Equal(t, 1, count)
	})

	t.Run("no user is a no-op", func(t *testing.T) {
		var calls atomic.Int64
		s := newUserStore(kvstore.NewMem(), func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return jsonResp(200, `{}`), nil
		}, FallbackEmpty)

		s.LoadFavorites(context.Background())
		assert.Zero(t, calls.Load())
	})
}

func TestLoadHistory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "/api/profile/history", req.URL.Path)
			return jsonResp(200, `{"items":[{"historyId":4,"propertyId":2,"title":"y"}],"count":8,"message":"ok"}`), nil
		}, FallbackEmpty)

		s.LoadHistory(context.Background())

		items, count := s.History()
		require.Len(t, items, 1)
		assert.EqualValues(t, 4, items[0].HistoryID)
		assert.Equal(t, 8, count)
	})

	t.Run("failure clears", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			return jsonResp(500, `{"message":"boom"}`), nil
		}, FallbackEmpty)

		s.LoadHistory(context.Background())

		items, count := s.History()
		assert.Empty(t, items)
		assert.Zero(t, count)
	})
}

func TestSavePreferences(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		s := newUserStore(kvstore.NewMem(), nil, FallbackEmpty)
		_, err := s.SavePreferences(context.Background(), models.PreferenceData{City: "Shenzhen"})
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("success posts userId and data", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "/api/profile/preferences", req.URL.Path)
			return jsonResp(200, `{"message":"saved","userId":7}`), nil
		}, FallbackEmpty)

		resp, err := s.SavePreferences(context.Background(), models.PreferenceData{City: "Shenzhen"})
		require.NoError(t, err)
		assert.Equal(t, "saved", resp.Message)
	})

	t.Run("server message surfaces", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			return jsonResp(400, `{"message":"invalid budget range"}`), nil
		}, FallbackEmpty)

		_, err := s.SavePreferences(context.Background(), models.PreferenceData{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid budget range")
	})
}

func TestFavoriteToggle(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "101", req.URL.Query().Get("propertyId"))
			return jsonResp(200, `{"message":"ok","userId":7,"propertyId":101}`), nil
		}, FallbackEmpty)

		resp, err := s.AddFavorite(context.Background(), 101)
		require.NoError(t, err)
		require.NotNil(t, resp.PropertyID)
		assert.EqualValues(t, 101, *resp.PropertyID)
	})

	t.Run("remove", func(t *testing.T) {
		s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodDelete, req.Method)
			return jsonResp(200, `{"message":"ok"}`), nil
		}, FallbackEmpty)

		_, err := s.RemoveFavorite(context.Background(), 101)
		assert.NoError(t, err)
	})

	t.Run("not logged in", func(t *testing.T) {
		s := newUserStore(kvstore.NewMem(), nil, FallbackEmpty)
		_, err := s.AddFavorite(context.Background(), 101)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})
}

func TestPredictPrice(t *testing.T) {
	area := 85.0
	s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/profile/price-predict", req.URL.Path)
		return jsonResp(200, `{"city":"Shenzhen","predictedPricePerSquareMeter":61250.5,"unit":"CNY/m2","message":"ok"}`), nil
	}, FallbackEmpty)

	resp, err := s.PredictPrice(context.Background(), models.PricePredictionRequest{
		City:     "Shenzhen",
		Features: models.PricePredictionFeatures{Area: &area},
	})
	require.NoError(t, err)
	assert.InDelta(t, 61250.5, resp.PredictedPricePerSquareMeter, 0.001)
}

func TestLoadAllUserData(t *testing.T) {
	var me, fav, hist atomic.Int64
	s := newUserStore(loggedInKV(t), func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/api/home/me":
			me.Add(1)
			return jsonResp(200, `{"profile":{"userId":7},"message":"ok"}`), nil
		case "/api/profile/favorites":
			fav.Add(1)
			return jsonResp(200, `{"items":[],"count":0,"message":"ok"}`), nil
		case "/api/profile/history":
			hist.Add(1)
			return nil, errors.New("history backend down")
		}
		return jsonResp(404, `{"message":"not found"}`), nil
	}, FallbackEmpty)

	s.LoadAllUserData(context.Background())

	assert.EqualValues(t, 1, me.Load())
	assert.EqualValues(t, 1, fav.Load())
	assert.EqualValues(t, 1, hist.Load())

	// one failing load does not affect the others
	items, _ := s.Favorites()
	assert.NotNil(t, items)
	histItems, histCount := s.History()
	assert.Empty(t, histItems)
	assert.Zero(t, histCount)
	assert.False(t, s.Loading())
}
