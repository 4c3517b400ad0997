package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/zhaohz/homeseek/internal/api"
	"github.com/zhaohz/homeseek/internal/kvstore"
	"github.com/zhaohz/homeseek/internal/models"
	"github.com/zhaohz/homeseek/internal/session"
)

// ProfileDefaults are the values shown when the server omits a profile
// field or the load fails.
type ProfileDefaults struct {
	Bio      string
	Phone    string
	Location string
	Avatar   string
}

// DefaultProfileDefaults matches the product copy of the profile page.
func DefaultProfileDefaults() ProfileDefaults {
	return ProfileDefaults{
		Bio:      "Looking for the perfect home",
		Phone:    "unknown",
		Location: "unknown",
		Avatar:   placeholderCover,
	}
}

// UserConfig tunes a UserStore.
type UserConfig struct {
	// Fallback decides what failed list loads show. The profile page
	// defaults to empty lists.
	Fallback FallbackPolicy
	// Defaults fill profile fields the server does not provide.
	Defaults ProfileDefaults
}

// ProfileView is the UI-bindable projection of the current user's
// profile.
type ProfileView struct {
	Bio      string
	Phone    string
	Location string
	Avatar   string
	JoinedAt string
	Stats    models.UserStats
}

// UserStore owns the profile page state: profile detail, favorites,
// browsing history, and their counts.
type UserStore struct {
	auth    *api.Auth
	profile *api.Profile
	query   *api.Query
	kv      kvstore.Store
	log     *zap.Logger
	cfg     UserConfig

	mu             sync.Mutex
	view           ProfileView
	favorites      []models.FavoriteItem
	favoritesCount int
	history        []models.BrowsingHistoryItem
	historyCount   int
	loading        bool

	favSeq  atomic.Uint64
	histSeq atomic.Uint64
}

// NewUserStore wires a UserStore to its dependencies.
func NewUserStore(clients *api.Clients, kv kvstore.Store, log *zap.Logger, cfg UserConfig) *UserStore {
	return &UserStore{
		auth:    clients.Auth,
		profile: clients.Profile,
		query:   clients.Query,
		kv:      kv,
		log:     log,
		cfg:     cfg,
	}
}

// Profile returns the current profile view.
func (s *UserStore) Profile() ProfileView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Favorites returns the cached favorites list and count.
func (s *UserStore) Favorites() ([]models.FavoriteItem, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites, s.favoritesCount
}

// History returns the cached browsing history and count.
func (s *UserStore) History() ([]models.BrowsingHistoryItem, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history, s.historyCount
}

// Loading reports whether a profile load is in flight.
func (s *UserStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// CurrentUserID derives the user id from the persisted session. It
// returns ok=false for absent or corrupt data and never fails harder.
func (s *UserStore) CurrentUserID() (int64, bool) {
	return session.CurrentUserID(s.kv)
}

// LoadUserInfo fetches the profile detail and merges it into the view.
// It is a no-op when no user is logged in or a load is already in
// flight. On failure the view falls back to the configured defaults.
func (s *UserStore) LoadUserInfo(ctx context.Context) {
	userID, ok := s.CurrentUserID()
	if !ok {
		return
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	resp, err := s.auth.MyProfile(ctx, userID)
	if err != nil || resp.Profile == nil {
		if err != nil {
			s.log.Warn("failed to load profile", zap.Int64("userId", userID), zap.Error(err))
		}
		s.mu.Lock()
		s.view = ProfileView{
			Bio:      s.cfg.Defaults.Bio,
			Phone:    s.cfg.Defaults.Phone,
			Location: s.cfg.Defaults.Location,
			Avatar:   s.cfg.Defaults.Avatar,
		}
		s.mu.Unlock()
		return
	}

	p := resp.Profile
	location := s.cfg.Defaults.Location
	if len(p.UserProfile.PreferredLocations) > 0 {
		location = p.UserProfile.PreferredLocations[0]
	}

	s.mu.Lock()
	s.view = ProfileView{
		Bio:      s.cfg.Defaults.Bio,
		Phone:    s.cfg.Defaults.Phone,
		Location: location,
		Avatar:   s.cfg.Defaults.Avatar,
		JoinedAt: p.JoinedAt,
		Stats:    p.Stats,
	}
	s.mu.Unlock()
}

// LoadFavorites replaces the favorites list and count. No-op without a
// current user; a failed load applies the configured fallback policy.
func (s *UserStore) LoadFavorites(ctx context.Context) {
	userID, ok := s.CurrentUserID()
	if !ok {
		return
	}

	seq := s.favSeq.Add(1)
	resp, err := s.profile.Favorites(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.favSeq.Load() {
		return
	}
	if err != nil || resp.Items == nil {
		if err != nil {
			s.log.Warn("failed to load favorites", zap.Int64("userId", userID), zap.Error(err))
		}
		if s.cfg.Fallback == FallbackPlaceholder {
			s.favorites = placeholderFavorites()
		} else {
			s.favorites = []models.FavoriteItem{}
		}
		s.favoritesCount = len(s.favorites)
		return
	}
	s.favorites = resp.Items
	if resp.Count != nil {
		s.favoritesCount = *resp.Count
	} else {
		s.favoritesCount = len(resp.Items)
	}
}

// LoadHistory replaces the browsing history and count. Same contract as
// LoadFavorites.
func (s *UserStore) LoadHistory(ctx context.Context) {
	userID, ok := s.CurrentUserID()
	if !ok {
		return
	}

	seq := s.histSeq.Add(1)
	resp, err := s.profile.History(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.histSeq.Load() {
		return
	}
	if err != nil || resp.Items == nil {
		if err != nil {
			s.log.Warn("failed to load history", zap.Int64("userId", userID), zap.Error(err))
		}
		if s.cfg.Fallback == FallbackPlaceholder {
			s.history = placeholderBrowsingHistory()
		} else {
			s.history = []models.BrowsingHistoryItem{}
		}
		s.historyCount = len(s.history)
		return
	}
	s.history = resp.Items
	if resp.Count != nil {
		s.historyCount = *resp.Count
	} else {
		s.historyCount = len(resp.Items)
	}
}

// SavePreferences posts the user's preference data. Returns
// ErrNotLoggedIn without a current user.
func (s *UserStore) SavePreferences(ctx context.Context, data models.PreferenceData) (*models.PreferenceResponse, error) {
	userID, ok := s.CurrentUserID()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	resp, err := s.profile.SetPreferences(ctx, models.PreferenceRequest{
		UserID:         userID,
		PreferenceData: data,
	})
	if err != nil {
		s.log.Error("failed to save preferences", zap.Int64("userId", userID), zap.Error(err))
		return nil, writeError("saving preferences failed", err)
	}
	return resp, nil
}

// PredictPrice runs the price-prediction tool for the given city and
// features.
func (s *UserStore) PredictPrice(ctx context.Context, req models.PricePredictionRequest) (*models.PricePredictionResponse, error) {
	resp, err := s.profile.PredictPrice(ctx, req)
	if err != nil {
		s.log.Error("price prediction failed", zap.String("city", req.City), zap.Error(err))
		return nil, writeError("price prediction failed", err)
	}
	return resp, nil
}

// AddFavorite marks a listing as a favorite of the current user.
func (s *UserStore) AddFavorite(ctx context.Context, propertyID int64) (*models.FavoriteResponse, error) {
	userID, ok := s.CurrentUserID()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	resp, err := s.query.AddFavorite(ctx, userID, propertyID)
	if err != nil {
		s.log.Error("failed to add favorite", zap.Int64("propertyId", propertyID), zap.Error(err))
		return nil, writeError("adding favorite failed", err)
	}
	return resp, nil
}

// RemoveFavorite removes a listing from the current user's favorites.
func (s *UserStore) RemoveFavorite(ctx context.Context, propertyID int64) (*models.FavoriteResponse, error) {
	userID, ok := s.CurrentUserID()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	resp, err := s.query.RemoveFavorite(ctx, userID, propertyID)
	if err != nil {
		s.log.Error("failed to remove favorite", zap.Int64("propertyId", propertyID), zap.Error(err))
		return nil, writeError("removing favorite failed", err)
	}
	return resp, nil
}

// LoadAllUserData runs the three profile loads concurrently. Each load
// handles its own failure; there is no aggregate failure signal.
func (s *UserStore) LoadAllUserData(ctx context.Context) {
	var wg sync.WaitGroup
	for _, load := range []func(context.Context){
		s.LoadUserInfo,
		s.LoadFavorites,
		s.LoadHistory,
	} {
		wg.Add(1)
		go func(f func(context.Context)) {
			defer wg.Done()
			f(ctx)
		}(load)
	}
	wg.Wait()
}

// writeError keeps the server's message when one exists.
func writeError(prefix string, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return fmt.Errorf("%s: %s", prefix, apiErr.Message)
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
