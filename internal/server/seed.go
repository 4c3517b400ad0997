package server

import "github.com/zhaohz/homeseek/internal/models"

// seedProperties returns the demo listing fixtures served by the stub.
func seedProperties() []models.PropertyDetail {
	return []models.PropertyDetail{
		{
			PropertyID:    1,
			Title:         "Renovated two-bedroom near the metro",
			Status:        "for_sale",
			CommunityName: "Sunshine Residences",
			ViewCount:     412,
			FavoriteCount: 35,
			UpdatedAt:     "2026-08-01",
			PriceInfo:     models.PriceInfo{TotalPrice: 450, UnitPrice: 52900},
			LayoutInfo:    models.LayoutInfo{BedroomCount: 2, LivingRoomCount: 1, BathroomCount: 1, Area: 85},
			BasicInfo:     models.BasicInfo{PropertyType: "apartment", BuildYear: 2018},
			LocationInfo:  models.LocationInfo{Province: "Guangdong", City: "Shenzhen", District: "Nanshan"},
			Cover:         "https://example.com/covers/1.jpg",
			Tags:          []string{"near metro", "renovated"},
		},
		{
			PropertyID:    2,
			Title:         "South-facing three-bedroom with a view",
			Status:        "for_sale",
			CommunityName: "City Garden",
			ViewCount:     980,
			FavoriteCount: 88,
			UpdatedAt:     "2026-08-10",
			PriceInfo:     models.PriceInfo{TotalPrice: 650.5, UnitPrice: 72600},
			LayoutInfo:    models.LayoutInfo{BedroomCount: 3, LivingRoomCount: 2, BathroomCount: 2, Area: 89.5},
			BasicInfo:     models.BasicInfo{PropertyType: "apartment", BuildYear: 2015},
			LocationInfo:  models.LocationInfo{Province: "Guangdong", City: "Shenzhen", District: "Nanshan"},
			Cover:         "https://example.com/covers/2.jpg",
			Tags:          []string{"school district", "north-south"},
		},
		{
			PropertyID:    3,
			Title:         "Compact loft in the tech park",
			Status:        "for_sale",
			CommunityName: "Innovation Lofts",
			ViewCount:     233,
			FavoriteCount: 12,
			UpdatedAt:     "2026-07-21",
			PriceInfo:     models.PriceInfo{TotalPrice: 298, UnitPrice: 61400},
			LayoutInfo:    models.LayoutInfo{BedroomCount: 1, LivingRoomCount: 1, BathroomCount: 1, Area: 48.5},
			BasicInfo:     models.BasicInfo{PropertyType: "loft", BuildYear: 2020},
			LocationInfo:  models.LocationInfo{Province: "Guangdong", City: "Shenzhen", District: "Futian"},
			Cover:         "https://example.com/covers/3.jpg",
			Tags:          []string{"loft", "tech park"},
		},
		{
			PropertyID:    4,
			Title:         "Family four-bedroom by the lake",
			Status:        "sold",
			CommunityName: "Lakeside Manor",
			ViewCount:     1520,
			FavoriteCount: 143,
			UpdatedAt:     "2026-06-30",
			PriceInfo:     models.PriceInfo{TotalPrice: 1180, UnitPrice: 81300},
			LayoutInfo:    models.LayoutInfo{BedroomCount: 4, LivingRoomCount: 2, BathroomCount: 3, Area: 145},
			BasicInfo:     models.BasicInfo{PropertyType: "house", BuildYear: 2012},
			LocationInfo:  models.LocationInfo{Province: "Guangdong", City: "Shenzhen", District: "Bao'an"},
			Cover:         "https://example.com/covers/4.jpg",
			Tags:          []string{"lake view", "family"},
		},
	}
}
