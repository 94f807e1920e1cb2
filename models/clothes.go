package models

import "time"

// GarmentRecord is one physical wardrobe item as supplied by the wardrobe store.
type GarmentRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"` // top, bottom, outer, shoes, accessories
	Color    string   `json:"color"`
	// nil when the item was never recorded as worn
	LastWornDate   *time.Time `json:"last_worn_date"`
	ImageReference *string    `json:"image_reference"`
}

// ScoredGarment is a GarmentRecord with the score computed for a single recommendation call.
type ScoredGarment struct {
	GarmentRecord
	Score int `json:"score"`
}

type Weather struct {
	TemperatureCelsius float64 `json:"temperature_celsius"`
	Condition          string  `json:"condition"` // e.g. Clear, Clouds, Rain
}

// OutfitResult holds the core slots first (top, bottom, shoes, outer) followed by accessories.
type OutfitResult struct {
	Items          []GarmentRecord `json:"items"`
	Reason         string          `json:"reason"`
	MainItemCount  int             `json:"main_item_count"`
	AccessoryCount int             `json:"accessory_count"`
}

// MinimumOutfitSize is the item count under which an outfit is considered limited.
const MinimumOutfitSize = 3

func (o OutfitResult) Limited() bool {
	return len(o.Items) < MinimumOutfitSize
}

func (o OutfitResult) CoreItems() []GarmentRecord {
	return o.Items[:o.MainItemCount]
}

func (o OutfitResult) Accessories() []GarmentRecord {
	return o.Items[o.MainItemCount:]
}

type OccasionOutfit struct {
	Occasion Occasion     `json:"occasion"`
	Outfit   OutfitResult `json:"outfit"`
}
