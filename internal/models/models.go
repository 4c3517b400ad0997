// Package models defines the request and response types exchanged with the
// HomeSeek listing API, plus the locally persisted session and search-history
// records.
package models

// LoginRequest is the JSON payload for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
//
// UserID is a pointer so that a body without the field can be told apart
// from userId 0: only a response carrying a numeric userId counts as a
// successful authentication.
type LoginResponse struct {
	UserID      *int64 `json:"userId"`
	Username    string `json:"username"`
	UserProfile string `json:"userProfile"` // JSON string of UserProfile
	Token       string `json:"token,omitempty"`
	Message     string `json:"message"`
}

// RegisterRequest is the JSON payload for POST /login/register.
type RegisterRequest struct {
	Username    string       `json:"username"`
	Password    string       `json:"password"`
	PhoneNumber string       `json:"phone_number"`
	UserProfile *UserProfile `json:"user_profile,omitempty"`
}

// RegisterResponse is returned by a registration attempt.
type RegisterResponse struct {
	UserID   *int64 `json:"userId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// BudgetRange bounds a user's budget in ten-thousands.
type BudgetRange struct {
	Min int64  `json:"min"`
	Max *int64 `json:"max,omitempty"`
}

// UserProfile is the free-form profile blob attached to an account.
type UserProfile struct {
	Budget             *BudgetRange `json:"budget,omitempty"`
	PreferredLocations []string     `json:"preferred_locations,omitempty"`
}

// IntRange is a generic inclusive min/max pair used by preferences.
type IntRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// PreferenceData holds the preference fields a user may set.
type PreferenceData struct {
	PriceRange    *IntRange    `json:"price_range,omitempty"`
	AreaRange     *IntRange    `json:"area_range,omitempty"`
	Locations     []string     `json:"locations,omitempty"`
	Districts     []string     `json:"districts,omitempty"`
	City          string       `json:"city,omitempty"`
	HouseTypes    []string     `json:"house_types,omitempty"`
	BedroomRange  *IntRange    `json:"bedroom_range,omitempty"`
	Orientations  []string     `json:"orientations,omitempty"`
	Decorations   []string     `json:"decorations,omitempty"`
	Keywords      []string     `json:"keywords,omitempty"`
	Budget        *BudgetRange `json:"budget,omitempty"`
	MainDistricts []string     `json:"main_districts,omitempty"`
}

// PreferenceRequest is the JSON payload for POST /profile/preferences.
type PreferenceRequest struct {
	UserID         int64          `json:"userId"`
	PreferenceData PreferenceData `json:"preferenceData"`
}

// PreferenceResponse acknowledges a preference update.
type PreferenceResponse struct {
	Message string `json:"message"`
	UserID  *int64 `json:"userId,omitempty"`
}

// HomeOverview backs the landing page header.
type HomeOverview struct {
	Title          string   `json:"title"`
	WelcomeMessage string   `json:"welcomeMessage"`
	Notifications  int      `json:"notifications"`
	Shortcuts      []string `json:"shortcuts"`
}

// UserStats counts a user's activity.
type UserStats struct {
	Favorites       int `json:"favorites"`
	Browsed         int `json:"browsed"`
	Recommendations int `json:"recommendations"`
}

// UserProfileDetail is the wholesale profile view returned by GET /home/me.
type UserProfileDetail struct {
	UserID      int64          `json:"userId"`
	Username    string         `json:"username"`
	JoinedAt    string         `json:"joinedAt"`
	UserProfile UserProfile    `json:"userProfile"`
	Preferences PreferenceData `json:"preferences"`
	Stats       UserStats      `json:"stats"`
}

// ProfileDetailResponse wraps the profile detail.
type ProfileDetailResponse struct {
	Profile *UserProfileDetail `json:"profile"`
	Message string             `json:"message"`
}

// PropertyCard is the compact listing projection used by recommendation rows.
type PropertyCard struct {
	PropertyID int64    `json:"propertyId"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	TotalPrice float64  `json:"totalPrice"`
	Cover      string   `json:"cover"`
	DetailURL  string   `json:"detailUrl"`
	Tags       []string `json:"tags"`
}

// PropertyCardList is returned by the recommendation endpoints.
type PropertyCardList struct {
	Items   []PropertyCard `json:"items"`
	Message string         `json:"message"`
}

// QueryParams filters a property search. Zero values are omitted from the
// query string.
type QueryParams struct {
	Keyword      string  `json:"keyword,omitempty"`
	District     string  `json:"district,omitempty"`
	MinPrice     float64 `json:"minPrice,omitempty"`
	MaxPrice     float64 `json:"maxPrice,omitempty"`
	PropertyType string  `json:"propertyType,omitempty"`
	Orientation  string  `json:"orientation,omitempty"`
	Status       string  `json:"status,omitempty"` // "for_sale" or "sold"
	MinBedrooms  int     `json:"minBedrooms,omitempty"`
	MaxBedrooms  int     `json:"maxBedrooms,omitempty"`
	MinArea      float64 `json:"minArea,omitempty"`
	MaxArea      float64 `json:"maxArea,omitempty"`
	MinViewCount int     `json:"minViewCount,omitempty"`
	MaxViewCount int     `json:"maxViewCount,omitempty"`
}

// PriceInfo carries pricing for a full property detail.
type PriceInfo struct {
	TotalPrice float64 `json:"total_price"`
	UnitPrice  float64 `json:"unit_price"`
}

// LayoutInfo describes rooms and floor area.
type LayoutInfo struct {
	BedroomCount    int     `json:"bedroom_count"`
	LivingRoomCount int     `json:"living_room_count"`
	BathroomCount   int     `json:"bathroom_count"`
	Area            float64 `json:"area"`
}

// BasicInfo describes construction facts.
type BasicInfo struct {
	PropertyType string `json:"property_type"`
	BuildYear    int    `json:"build_year"`
}

// LocationInfo places a property geographically.
type LocationInfo struct {
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
}

// PropertyDetail is the full listing projection returned by search.
// Listings are read-only on the client; they are fetched and displayed,
// never mutated.
type PropertyDetail struct {
	PropertyID    int64        `json:"propertyId"`
	Title         string       `json:"title"`
	Status        string       `json:"status"`
	CommunityName string       `json:"communityName"`
	ViewCount     int          `json:"viewCount"`
	FavoriteCount int          `json:"favoriteCount"`
	UpdatedAt     string       `json:"updatedAt"`
	PriceInfo     PriceInfo    `json:"priceInfo"`
	LayoutInfo    LayoutInfo   `json:"layoutInfo"`
	BasicInfo     BasicInfo    `json:"basicInfo"`
	LocationInfo  LocationInfo `json:"locationInfo"`
	Cover         string       `json:"cover,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
}

// QueryResponse is returned by GET /query.
//
// A body without an items field decodes to a nil slice, which the search
// store treats as malformed; an explicit empty array decodes to a non-nil
// empty slice and counts as a well-formed empty result.
type QueryResponse struct {
	Items   []PropertyDetail `json:"items"`
	Count   *int             `json:"count"`
	Message string           `json:"message"`
}

// FavoriteResponse acknowledges adding or removing a favorite.
type FavoriteResponse struct {
	Message    string `json:"message"`
	UserID     *int64 `json:"userId,omitempty"`
	PropertyID *int64 `json:"propertyId,omitempty"`
}

// PricePredictionFeatures are the numeric inputs to the price model.
// Field names mirror the model's training columns.
type PricePredictionFeatures struct {
	Longitude        *float64 `json:"longitude,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	CenterDistanceKm *float64 `json:"center_distance_km,omitempty"`
	Area             *float64 `json:"area,omitempty"`
	BedroomCount     *int     `json:"bedroom_count,omitempty"`
	LivingRoomCount  *int     `json:"living_room_count,omitempty"`
	BathroomCount    *int     `json:"bathroom_count,omitempty"`
	BuildingAge      *int     `json:"building_age,omitempty"`
	OrientationScore *float64 `json:"orientation_score,omitempty"`
	AreaEncoded      *int     `json:"area_encoded,omitempty"`
	CommunityArea    *float64 `json:"community_area,omitempty"`
	CommunityHomes   *int     `json:"community_homes,omitempty"`
	PlotRatio        *float64 `json:"plot_ratio,omitempty"`
	GreeningRate     *float64 `json:"greening_rate,omitempty"`
	PropertyFee      *float64 `json:"property_fee,omitempty"`
}

// PricePredictionRequest is the JSON payload for POST /profile/price-predict.
type PricePredictionRequest struct {
	City     string                  `json:"city"`
	Features PricePredictionFeatures `json:"features"`
}

// PricePredictionResponse carries the model's estimate.
type PricePredictionResponse struct {
	City                         string                  `json:"city"`
	Features                     PricePredictionFeatures `json:"features"`
	PredictedPricePerSquareMeter float64                 `json:"predictedPricePerSquareMeter"`
	Unit                         string                  `json:"unit"`
	Message                      string                  `json:"message"`
}

// BehaviorData records how a listing was browsed.
type BehaviorData struct {
	Duration int    `json:"duration"`
	Device   string `json:"device"`
}

// SimplePriceInfo is the trimmed price pair used in history/favorite rows.
type SimplePriceInfo struct {
	TotalPrice float64 `json:"total_price"`
	UnitPrice  float64 `json:"unit_price"`
}

// SimpleLayoutInfo is the trimmed layout pair used in history/favorite rows.
type SimpleLayoutInfo struct {
	BedroomCount int     `json:"bedroom_count"`
	Area         float64 `json:"area"`
}

// BrowsingHistoryItem is a server-owned browsing record keyed by historyId.
type BrowsingHistoryItem struct {
	HistoryID  int64            `json:"historyId"`
	PropertyID int64            `json:"propertyId"`
	Title      string           `json:"title"`
	Behavior   BehaviorData     `json:"behaviorData"`
	PriceInfo  SimplePriceInfo  `json:"priceInfo"`
	LayoutInfo SimpleLayoutInfo `json:"layoutInfo"`
	CreatedAt  string           `json:"createdAt"`
}

// HistoryResponse is returned by GET /profile/history.
type HistoryResponse struct {
	Items   []BrowsingHistoryItem `json:"items"`
	Count   *int                  `json:"count"`
	Message string                `json:"message"`
}

// FavoriteItem is a server-owned favorite record keyed by favoriteId.
type FavoriteItem struct {
	FavoriteID int64            `json:"favoriteId"`
	PropertyID int64            `json:"propertyId"`
	Title      string           `json:"title"`
	PriceInfo  SimplePriceInfo  `json:"priceInfo"`
	LayoutInfo SimpleLayoutInfo `json:"layoutInfo"`
	CreatedAt  string           `json:"createdAt"`
}

// FavoritesResponse is returned by GET /profile/favorites.
type FavoritesResponse struct {
	Items   []FavoriteItem `json:"items"`
	Count   *int           `json:"count"`
	Message string         `json:"message"`
}

// MessageResponse is the minimal acknowledgement body (logout and friends).
type MessageResponse struct {
	Message string `json:"message"`
}

// SearchHistoryEntry is a client-owned recent-search record. The ID is the
// creation timestamp in milliseconds; entries are kept most-recent-first.
type SearchHistoryEntry struct {
	ID      int64  `json:"id"`
	Keyword string `json:"keyword"`
	Time    string `json:"time"`
}

// SessionInfo is the persisted userInfo blob surviving a restart.
type SessionInfo struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	UserProfile string `json:"userProfile"`
}
