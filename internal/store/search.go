package store

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/zhaohz/homeseek/internal/api"
	"github.com/zhaohz/homeseek/internal/kvstore"
	"github.com/zhaohz/homeseek/internal/models"
)

// KeySearchHistory is the storage key of the cached recent-search list.
const KeySearchHistory = "searchHistory"

// historyLimit bounds the recent-search list; the oldest entry is evicted
// on overflow.
const historyLimit = 10

// SearchConfig tunes a SearchStore.
type SearchConfig struct {
	// Fallback decides what failed reads show. The search pages default to
	// placeholder content so navigation never dead-ends.
	Fallback FallbackPolicy
}

// SearchStore owns the search page state: query text, result list,
// loading flag, recommendation list, and the client-owned recent-search
// history.
type SearchStore struct {
	query *api.Query
	auth  *api.Auth
	kv    kvstore.Store
	log   *zap.Logger
	cfg   SearchConfig

	mu           sync.Mutex
	searchQuery  string
	results      []models.PropertyDetail
	count        int
	loading      bool
	guessYouLike []models.PropertyCard
	history      []models.SearchHistoryEntry

	// Request sequence numbers, one per mutable field group. A response
	// belonging to a superseded request is discarded, so an old search
	// can never overwrite a newer one.
	searchSeq atomic.Uint64
	recsSeq   atomic.Uint64
}

// NewSearchStore wires a SearchStore to its dependencies.
func NewSearchStore(clients *api.Clients, kv kvstore.Store, log *zap.Logger, cfg SearchConfig) *SearchStore {
	return &SearchStore{query: clients.Query, auth: clients.Auth, kv: kv, log: log, cfg: cfg}
}

// SetQuery sets the current search text.
func (s *SearchStore) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
}

// Query returns the current search text.
func (s *SearchStore) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// Results returns the current result list.
func (s *SearchStore) Results() []models.PropertyDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Count returns the result count reported by the last search.
func (s *SearchStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Loading reports whether a search is in flight.
func (s *SearchStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// GuessYouLike returns the cached recommendation cards.
func (s *SearchStore) GuessYouLike() []models.PropertyCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guessYouLike
}

// History returns a copy of the recent-search list, most recent first.
func (s *SearchStore) History() []models.SearchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SearchHistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// PerformSearch issues a query with the current search text merged under
// the caller's filters. A well-formed response (a body with an items
// array) replaces the result list and count; a malformed body or a failed
// request substitutes fallback data per the configured policy. The search
// text, when non-empty, is recorded into history on every path.
func (s *SearchStore) PerformSearch(ctx context.Context, params models.QueryParams) {
	s.mu.Lock()
	s.loading = true
	if params.Keyword == "" {
		params.Keyword = s.searchQuery
	}
	keyword := s.searchQuery
	s.mu.Unlock()

	seq := s.searchSeq.Add(1)

	resp, err := s.query.SearchProperties(ctx, params)

	s.mu.Lock()
	if seq == s.searchSeq.Load() {
		switch {
		case err != nil:
			s.log.Warn("search failed", zap.String("keyword", params.Keyword), zap.Error(err))
			s.applySearchFallbackLocked()
		case resp.Items == nil:
			s.log.Warn("search returned malformed body", zap.String("keyword", params.Keyword))
			s.applySearchFallbackLocked()
		default:
			s.results = resp.Items
			if resp.Count != nil {
				s.count = *resp.Count
			} else {
				s.count = len(resp.Items)
			}
		}
		s.loading = false
	}
	if strings.TrimSpace(keyword) != "" {
		s.addHistoryLocked(keyword)
	}
	s.mu.Unlock()
}

func (s *SearchStore) applySearchFallbackLocked() {
	if s.cfg.Fallback == FallbackPlaceholder {
		s.results = placeholderSearchResults()
	} else {
		s.results = []models.PropertyDetail{}
	}
	s.count = len(s.results)
}

// LoadGuessYouLike fetches the recommendation list, substituting fallback
// cards per policy on a malformed body or failed request.
func (s *SearchStore) LoadGuessYouLike(ctx context.Context) {
	seq := s.recsSeq.Add(1)

	resp, err := s.auth.GuessYouLike(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.recsSeq.Load() {
		return
	}
	if err != nil || resp.Items == nil {
		if err != nil {
			s.log.Warn("failed to load recommendations", zap.Error(err))
		}
		if s.cfg.Fallback == FallbackPlaceholder {
			s.guessYouLike = placeholderRecommendations()
		} else {
			s.guessYouLike = []models.PropertyCard{}
		}
		return
	}
	s.guessYouLike = resp.Items
}

// AddToSearchHistory records a keyword at the front of the history list.
// Re-adding an existing keyword moves it to the front; the list is capped
// and persisted after every mutation.
func (s *SearchStore) AddToSearchHistory(keyword string) {
	if strings.TrimSpace(keyword) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addHistoryLocked(keyword)
}

func (s *SearchStore) addHistoryLocked(keyword string) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return
	}
	for i, e := range s.history {
		if e.Keyword == keyword {
			s.history = append(s.history[:i], s.history[i+1:]...)
			break
		}
	}
	now := time.Now()
	s.history = append([]models.SearchHistoryEntry{{
		ID:      now.UnixMilli(),
		Keyword: keyword,
		Time:    now.Format("15:04"),
	}}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
	s.persistHistoryLocked()
}

// DeleteSearchHistory removes the entry with the given id.
func (s *SearchStore) DeleteSearchHistory(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.history[:0]
	for _, e := range s.history {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.history = kept
	s.persistHistoryLocked()
}

// ClearSearchHistory empties the list and removes the storage key.
func (s *SearchStore) ClearSearchHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	if err := s.kv.Delete(KeySearchHistory); err != nil {
		s.log.Warn("failed to delete search history", zap.Error(err))
	}
}

// LoadSearchHistory restores the persisted list. Missing or corrupt data
// resets the in-memory list to empty.
func (s *SearchStore) LoadSearchHistory() {
	var entries []models.SearchHistoryEntry
	ok := kvstore.GetJSON(s.kv, KeySearchHistory, &entries)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.history = nil
		return
	}
	s.history = entries
}

func (s *SearchStore) persistHistoryLocked() {
	if err := kvstore.SetJSON(s.kv, KeySearchHistory, s.history); err != nil {
		s.log.Warn("failed to persist search history", zap.Error(err))
	}
}

// Initialize loads the persisted history and then the recommendations.
// Sequential on purpose: history feeds the first render of the search
// page.
func (s *SearchStore) Initialize(ctx context.Context) {
	s.LoadSearchHistory()
	s.LoadGuessYouLike(ctx)
}

// ResetSearch clears the query text, results, and count. History is
// untouched.
func (s *SearchStore) ResetSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = ""
	s.results = nil
	s.count = 0
}

// SearchFromHistory re-runs a search for a recorded keyword.
func (s *SearchStore) SearchFromHistory(ctx context.Context, keyword string) {
	s.SetQuery(keyword)
	s.PerformSearch(ctx, models.QueryParams{})
}
