package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the fixed set of sections an article can be filed under.
type Category string

const (
	CategoryHomeDecor      Category = "home-decor"
	CategoryTravelDeals    Category = "travel-deals"
	CategoryHomeAppliances Category = "home-appliances"
	CategoryGardenPlanting Category = "garden-planting"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryHomeDecor,
	CategoryTravelDeals,
	CategoryHomeAppliances,
	CategoryGardenPlanting,
}

var categoryLabels = map[Category]string{
	CategoryHomeDecor:      "Home Decor",
	CategoryTravelDeals:    "Travel Deals",
	CategoryHomeAppliances: "Home Appliances",
	CategoryGardenPlanting: "Garden & Planting",
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human readable name, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Article is a published article document. It is written once and never updated.
type Article struct {
	ID       uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title    string    `json:"title" gorm:"size:255;not null"`
	Category Category  `json:"category" gorm:"type:varchar(32);not null;index"`
	Excerpt  string    `json:"excerpt" gorm:"size:255;not null"`
	Tags     []string  `json:"tags" gorm:"type:json;serializer:json"`
	Content  string    `json:"content" gorm:"type:longtext"`
	ImageURL string    `json:"imageUrl" gorm:"size:1024"`
	// CreatedAt is an ISO-8601 UTC timestamp with millisecond precision.
	CreatedAt string `json:"createdAt" gorm:"type:varchar(32);not null;index;autoCreateTime:false"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
