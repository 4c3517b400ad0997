// Package server implements an in-memory stub of the HomeSeek listing
// API. It exists for local development and integration tests; the real
// backend is an external service that this stub mirrors endpoint by
// endpoint.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/zhaohz/homeseek/internal/models"
)

// user is an in-memory account record.
type user struct {
	id       int64
	username string
	password string
	phone    string
	profile  string // JSON string of models.UserProfile
	joinedAt string
}

// Handler serves the stub API from in-memory fixtures.
type Handler struct {
	log    *zap.Logger
	secret []byte

	mu          sync.Mutex
	users       map[string]*user
	nextUserID  int64
	nextFavID   int64
	properties  []models.PropertyDetail
	favorites   map[int64]map[int64]models.FavoriteItem // userID → propertyID → record
	history     map[int64][]models.BrowsingHistoryItem
	preferences map[int64]models.PreferenceData
}

// NewHandler returns a Handler seeded with demo listings and one demo
// account (demo / demo123).
func NewHandler(secret string, log *zap.Logger) *Handler {
	h := &Handler{
		log:         log,
		secret:      []byte(secret),
		users:       make(map[string]*user),
		nextUserID:  1,
		nextFavID:   1,
		properties:  seedProperties(),
		favorites:   make(map[int64]map[int64]models.FavoriteItem),
		history:     make(map[int64][]models.BrowsingHistoryItem),
		preferences: make(map[int64]models.PreferenceData),
	}
	h.addUser("demo", "demo123", "13800000000", `{"preferred_locations":["Nanshan"]}`)
	return h
}

func (h *Handler) addUser(username, password, phone, profile string) *user {
	u := &user{
		id:       h.nextUserID,
		username: username,
		password: password,
		phone:    phone,
		profile:  profile,
		joinedAt: time.Now().Format("2006-01-02"),
	}
	h.nextUserID++
	h.users[username] = u
	return u
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// issueToken signs a short-lived JWT for the user.
func (h *Handler) issueToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}

	h.mu.Lock()
	u, ok := h.users[req.Username]
	h.mu.Unlock()
	if !ok || u.password != req.Password {
		writeMessage(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.issueToken(u.id)
	if err != nil {
		h.log.Error("failed to sign token", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":      u.id,
		"username":    u.username,
		"userProfile": u.profile,
		"token":       token,
		"message":     "login successful",
	})
}

// Register handles POST /login/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if req.PhoneNumber == "" {
		writeMessage(w, http.StatusBadRequest, "phone_number is required")
		return
	}

	profile := "{}"
	if req.UserProfile != nil {
		data, err := json.Marshal(req.UserProfile)
		if err == nil {
			profile = string(data)
		}
	}

	h.mu.Lock()
	if _, exists := h.users[req.Username]; exists {
		h.mu.Unlock()
		writeMessage(w, http.StatusConflict, "username already taken")
		return
	}
	u := h.addUser(req.Username, req.Password, req.PhoneNumber, profile)
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"userId":   u.id,
		"username": u.username,
		"message":  "registration successful",
	})
}

// Logout handles POST /logout. The stub holds no server-side session
// state, so this only acknowledges.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "logged out")
}

// HomeOverview handles GET /home/overview.
func (h *Handler) HomeOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HomeOverview{
		Title:          "HomeSeek",
		WelcomeMessage: "Find your next home",
		Notifications:  2,
		Shortcuts:      []string{"search", "favorites", "price-predict"},
	})
}

func (h *Handler) userByID(id int64) *user {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, u := range h.users {
		if u.id == id {
			return u
		}
	}
	return nil
}

func parseUserID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	return id, err == nil && id > 0
}

// MyProfile handles GET /home/me.
func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "userId is required")
		return
	}
	u := h.userByID(userID)
	if u == nil {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}

	var profile models.UserProfile
	_ = json.Unmarshal([]byte(u.profile), &profile)

	h.mu.Lock()
	prefs := h.preferences[userID]
	stats := models.UserStats{
		Favorites:       len(h.favorites[userID]),
		Browsed:         len(h.history[userID]),
		Recommendations: len(h.properties),
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ProfileDetailResponse{
		Profile: &models.UserProfileDetail{
			UserID:      u.id,
			Username:    u.username,
			JoinedAt:    u.joinedAt,
			UserProfile: profile,
			Preferences: prefs,
			Stats:       stats,
		},
		Message: "ok",
	})
}

func (h *Handler) cards() []models.PropertyCard {
	h.mu.Lock()
	defer h.mu.Unlock()
	cards := make([]models.PropertyCard, 0, len(h.properties))
	for _, p := range h.properties {
		cards = append(cards, models.PropertyCard{
			PropertyID: p.PropertyID,
			Title:      p.Title,
			Summary: fmt.Sprintf("%s · %.1f㎡ · %dbr",
				p.LocationInfo.District, p.LayoutInfo.Area, p.LayoutInfo.BedroomCount),
			TotalPrice: p.PriceInfo.TotalPrice,
			Cover:      p.Cover,
			DetailURL:  fmt.Sprintf("https://example.com/property/%d", p.PropertyID),
			Tags:       p.Tags,
		})
	}
	return cards
}

// GuessYouLike handles GET /home/guess-you-like.
func (h *Handler) GuessYouLike(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.PropertyCardList{Items: h.cards(), Message: "ok"})
}

// QueryRecommendations handles GET /home/go-query.
func (h *Handler) QueryRecommendations(w http.ResponseWriter, r *http.Request) {
	cards := h.cards()
	if len(cards) > 3 {
		cards = cards[:3]
	}
	writeJSON(w, http.StatusOK, models.PropertyCardList{Items: cards, Message: "ok"})
}

// SearchProperties handles GET /query with the documented filter params.
func (h *Handler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := strings.ToLower(q.Get("keyword"))
	district := q.Get("district")
	status := q.Get("status")
	minPrice := parseFloat(q.Get("minPrice"))
	maxPrice := parseFloat(q.Get("maxPrice"))
	minBedrooms := parseInt(q.Get("minBedrooms"))
	maxBedrooms := parseInt(q.Get("maxBedrooms"))
	minArea := parseFloat(q.Get("minArea"))
	maxArea := parseFloat(q.Get("maxArea"))

	h.mu.Lock()
	defer h.mu.Unlock()
	items := make([]models.PropertyDetail, 0, len(h.properties))
	for _, p := range h.properties {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(p.Title), keyword) &&
			!strings.Contains(strings.ToLower(p.CommunityName), keyword) {
			continue
		}
		if district != "" && p.LocationInfo.District != district {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		if minPrice > 0 && p.PriceInfo.TotalPrice < minPrice {
			continue
		}
		if maxPrice > 0 && p.PriceInfo.TotalPrice > maxPrice {
			continue
		}
		if minBedrooms > 0 && p.LayoutInfo.BedroomCount < minBedrooms {
			continue
		}
		if maxBedrooms > 0 && p.LayoutInfo.BedroomCount > maxBedrooms {
			continue
		}
		if minArea > 0 && p.LayoutInfo.Area < minArea {
			continue
		}
		if maxArea > 0 && p.LayoutInfo.Area > maxArea {
			continue
		}
		items = append(items, p)
	}

	count := len(items)
	writeJSON(w, http.StatusOK, models.QueryResponse{Items: items, Count: &count, Message: "ok"})
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func (h *Handler) propertyByID(id int64) *models.PropertyDetail {
	for i := range h.properties {
		if h.properties[i].PropertyID == id {
			return &h.properties[i]
		}
	}
	return nil
}

// AddFavorite handles POST /query/favorite.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	propertyID, err := strconv.ParseInt(r.URL.Query().Get("propertyId"), 10, 64)
	if !ok || err != nil {
		writeMessage(w, http.StatusBadRequest, "userId and propertyId are required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.propertyByID(propertyID)
	if p == nil {
		writeMessage(w, http.StatusNotFound, "property not found")
		return
	}
	if h.favorites[userID] == nil {
		h.favorites[userID] = make(map[int64]models.FavoriteItem)
	}
	if _, exists := h.favorites[userID][propertyID]; exists {
		writeMessage(w, http.StatusConflict, "already a favorite")
		return
	}
	h.favorites[userID][propertyID] = models.FavoriteItem{
		FavoriteID: h.nextFavID,
		PropertyID: propertyID,
		Title:      p.Title,
		PriceInfo:  models.SimplePriceInfo{TotalPrice: p.PriceInfo.TotalPrice, UnitPrice: p.PriceInfo.UnitPrice},
		LayoutInfo: models.SimpleLayoutInfo{BedroomCount: p.LayoutInfo.BedroomCount, Area: p.LayoutInfo.Area},
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	h.nextFavID++

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "favorite added",
		"userId":     userID,
		"propertyId": propertyID,
	})
}

// RemoveFavorite handles DELETE /query/favorite.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	propertyID, err := strconv.ParseInt(r.URL.Query().Get("propertyId"), 10, 64)
	if !ok || err != nil {
		writeMessage(w, http.StatusBadRequest, "userId and propertyId are required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.favorites[userID][propertyID]; !exists {
		writeMessage(w, http.StatusNotFound, "favorite not found")
		return
	}
	delete(h.favorites[userID], propertyID)

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "favorite removed",
		"userId":     userID,
		"propertyId": propertyID,
	})
}

// SetPreferences handles POST /profile/preferences.
func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	var req models.PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
		writeMessage(w, http.StatusBadRequest, "userId and preferenceData are required")
		return
	}
	if h.userByID(req.UserID) == nil {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}

	h.mu.Lock()
	h.preferences[req.UserID] = req.PreferenceData
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "preferences saved",
		"userId":  req.UserID,
	})
}

// PredictPrice handles POST /profile/price-predict with a deterministic
// toy estimate: a city base price adjusted by area and age.
func (h *Handler) PredictPrice(w http.ResponseWriter, r *http.Request) {
	var req models.PricePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.City == "" {
		writeMessage(w, http.StatusBadRequest, "city and features are required")
		return
	}

	base := 45000.0
	switch strings.ToLower(req.City) {
	case "shenzhen":
		base = 62000
	case "shanghai":
		base = 58000
	case "beijing":
		base = 60000
	}
	price := base
	if req.Features.CenterDistanceKm != nil {
		price -= *req.Features.CenterDistanceKm * 800
	}
	if req.Features.BuildingAge != nil {
		price -= float64(*req.Features.BuildingAge) * 300
	}
	if price < 5000 {
		price = 5000
	}

	writeJSON(w, http.StatusOK, models.PricePredictionResponse{
		City:                         req.City,
		Features:                     req.Features,
		PredictedPricePerSquareMeter: price,
		Unit:                         "CNY/m2",
		Message:                      "ok",
	})
}

// History handles GET /profile/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "userId is required")
		return
	}
	h.mu.Lock()
	items := append([]models.BrowsingHistoryItem(nil), h.history[userID]...)
	h.mu.Unlock()
	if items == nil {
		items = []models.BrowsingHistoryItem{}
	}
	count := len(items)
	writeJSON(w, http.StatusOK, models.HistoryResponse{Items: items, Count: &count, Message: "ok"})
}

// Favorites handles GET /profile/favorites.
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "userId is required")
		return
	}
	h.mu.Lock()
	items := make([]models.FavoriteItem, 0, len(h.favorites[userID]))
	for _, f := range h.favorites[userID] {
		items = append(items, f)
	}
	h.mu.Unlock()
	count := len(items)
	writeJSON(w, http.StatusOK, models.FavoritesResponse{Items: items, Count: &count, Message: "ok"})
}
