package store

import "github.com/zhaohz/homeseek/internal/models"

// FallbackPolicy decides what a store shows when a read fails: fixed
// placeholder content or an empty result. Which one is right is a product
// decision, so it is configuration rather than per-store hardcoded logic.
type FallbackPolicy int

const (
	// FallbackPlaceholder substitutes fixed demo content so the page never
	// renders an error state.
	FallbackPlaceholder FallbackPolicy = iota
	// FallbackEmpty clears the field group to its zero state.
	FallbackEmpty
)

const placeholderCover = "https://img95.699pic.com/photo/50149/6896.jpg_wh860.jpg"

// placeholderSearchResults is the one-item result set shown when a search
// fails or returns a malformed body.
func placeholderSearchResults() []models.PropertyDetail {
	return []models.PropertyDetail{
		{
			PropertyID:    1,
			Title:         "Renovated two-bedroom",
			CommunityName: "Sunshine Residences",
			PriceInfo:     models.PriceInfo{TotalPrice: 450, UnitPrice: 60000},
			LayoutInfo: models.LayoutInfo{
				BedroomCount:    2,
				LivingRoomCount: 1,
				BathroomCount:   1,
				Area:            85,
			},
			BasicInfo:    models.BasicInfo{PropertyType: "apartment", BuildYear: 2018},
			LocationInfo: models.LocationInfo{Province: "Guangdong", City: "Shenzhen", District: "Nanshan"},
			Cover:        placeholderCover,
			Tags:         []string{"near metro", "renovated"},
		},
	}
}

// placeholderRecommendations is the card set shown when a recommendation
// load fails.
func placeholderRecommendations() []models.PropertyCard {
	return []models.PropertyCard{
		{
			PropertyID: 101,
			Title:      "City Garden renovated three-bedroom",
			Summary:    "Nanshan · 89.5㎡ · 3br 2lr 2ba",
			TotalPrice: 650.5,
			Cover:      placeholderCover,
			DetailURL:  "https://example.com/property/101",
			Tags:       []string{"near metro", "school district", "north-south"},
		},
	}
}

func placeholderFavorites() []models.FavoriteItem {
	return []models.FavoriteItem{
		{
			FavoriteID: 1,
			PropertyID: 101,
			Title:      "City Garden renovated three-bedroom",
			PriceInfo:  models.SimplePriceInfo{TotalPrice: 650.5, UnitPrice: 72000},
			LayoutInfo: models.SimpleLayoutInfo{BedroomCount: 3, Area: 89.5},
		},
	}
}

func placeholderBrowsingHistory() []models.BrowsingHistoryItem {
	return []models.BrowsingHistoryItem{
		{
			HistoryID:  1,
			PropertyID: 1,
			Title:      "Renovated two-bedroom",
			Behavior:   models.BehaviorData{Duration: 120, Device: "web"},
			PriceInfo:  models.SimplePriceInfo{TotalPrice: 450, UnitPrice: 60000},
			LayoutInfo: models.SimpleLayoutInfo{BedroomCount: 2, Area: 85},
		},
	}
}
