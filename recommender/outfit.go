package recommender

import (
	"fmt"
	"log"
	"math"
	"slices"
	"sync"
	"time"

	"outfitapi/models"
)

const (
	// outerwear is worn below this temperature, looser than ColdOuterThreshold
	OuterInclusionThreshold = 25.0
	MaxAccessories          = 2
)

// ExploreWeather is the neutral weather used to compare occasions side by side.
var ExploreWeather = models.Weather{TemperatureCelsius: 22, Condition: "Clear"}

// Recommender assembles outfits from a wardrobe. It holds no mutable state and is
// safe for concurrent use.
type Recommender struct {
	occasions OccasionTable
	now       func() time.Time
}

func New() *Recommender {
	return NewWithTable(DefaultOccasionTable(), time.Now)
}

// NewWithTable builds a recommender with a custom occasion table and clock.
// A nil clock falls back to time.Now.
func NewWithTable(table OccasionTable, now func() time.Time) *Recommender {
	if table == nil {
		table = OccasionTable{}
	}
	if now == nil {
		now = time.Now
	}
	return &Recommender{occasions: table, now: now}
}

// RecommendOutfit suggests an outfit with the default occasion table at the current time.
func RecommendOutfit(wardrobe []models.GarmentRecord, weather models.Weather, occasion models.Occasion) models.OutfitResult {
	return New().Recommend(wardrobe, weather, occasion)
}

func (r *Recommender) Now() time.Time {
	return r.now()
}

func (r *Recommender) Recommend(wardrobe []models.GarmentRecord, weather models.Weather, occasion models.Occasion) models.OutfitResult {
	return r.RecommendAt(wardrobe, weather, occasion, r.now())
}

// RecommendAt suggests an outfit with every item scored against referenceDate.
func (r *Recommender) RecommendAt(wardrobe []models.GarmentRecord, weather models.Weather, occasion models.Occasion, referenceDate time.Time) models.OutfitResult {
	scored := r.scoreAll(wardrobe, referenceDate, weather, occasion)

	mainItems := make([]models.GarmentRecord, 0, len(models.CoreSlots))
	for _, slot := range models.CoreSlots {
		best, ok := SelectBest(scored, slot)
		if !ok {
			continue
		}
		if slot == models.CategoryOuter && weather.TemperatureCelsius >= OuterInclusionThreshold {
			continue
		}
		mainItems = append(mainItems, best.GarmentRecord)
	}

	accessories := topAccessories(scored, MaxAccessories)

	items := make([]models.GarmentRecord, 0, len(mainItems)+len(accessories))
	items = append(items, mainItems...)
	for _, accessory := range accessories {
		items = append(items, accessory.GarmentRecord)
	}

	result := models.OutfitResult{
		Items:          items,
		Reason:         Reason(occasion, weather),
		MainItemCount:  len(mainItems),
		AccessoryCount: len(accessories),
	}
	if result.Limited() {
		log.Printf("[Outfit] Limited wardrobe options available for outfit generation: %d of %d items for %s", len(items), models.MinimumOutfitSize, occasion)
	}
	return result
}

// SelectBest returns the highest scored item of a category. Ties go to the item
// seen first; ok is false when the category has no items.
func SelectBest(scored []models.ScoredGarment, category models.Category) (best models.ScoredGarment, ok bool) {
	for _, item := range scored {
		if item.Category != category {
			continue
		}
		if !ok || item.Score > best.Score {
			best = item
			ok = true
		}
	}
	return best, ok
}

func topAccessories(scored []models.ScoredGarment, limit int) []models.ScoredGarment {
	var accessories []models.ScoredGarment
	for _, item := range scored {
		if item.Category == models.CategoryAccessories {
			accessories = append(accessories, item)
		}
	}
	slices.SortStableFunc(accessories, func(a, b models.ScoredGarment) int {
		return b.Score - a.Score
	})
	if len(accessories) > limit {
		accessories = accessories[:limit]
	}
	return accessories
}

// Reason renders the justification shown next to a suggestion.
func Reason(occasion models.Occasion, weather models.Weather) string {
	return fmt.Sprintf("Suggested for %s • %s, %.0f°C", occasion, weather.Condition, roundHalfUp(weather.TemperatureCelsius))
}

// roundHalfUp rounds .5 toward positive infinity and never yields negative zero.
func roundHalfUp(value float64) float64 {
	rounded := math.Floor(value + 0.5)
	if rounded == 0 {
		return 0
	}
	return rounded
}

// Explore suggests one outfit per occasion, all scored against the same instant.
// An empty occasion list means every known occasion.
func (r *Recommender) Explore(wardrobe []models.GarmentRecord, weather models.Weather, occasions []models.Occasion) []models.OccasionOutfit {
	if len(occasions) == 0 {
		occasions = models.KnownOccasions()
	}
	referenceDate := r.now()

	var wg sync.WaitGroup
	outfits := make([]models.OccasionOutfit, len(occasions))
	for i, occasion := range occasions {
		wg.Add(1)
		go func(index int, occasion models.Occasion) {
			defer wg.Done()
			outfits[index] = models.OccasionOutfit{
				Occasion: occasion,
				Outfit:   r.RecommendAt(wardrobe, weather, occasion, referenceDate),
			}
		}(i, occasion)
	}
	wg.Wait()
	return outfits
}

// MarkWorn returns a copy of the wardrobe where the given items were worn on the
// calendar day of on. Unknown ids are ignored.
func MarkWorn(wardrobe []models.GarmentRecord, ids []string, on time.Time) []models.GarmentRecord {
	year, month, day := on.Date()
	wornOn := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	updated := make([]models.GarmentRecord, len(wardrobe))
	for i, item := range wardrobe {
		if slices.Contains(ids, item.ID) {
			worn := wornOn
			item.LastWornDate = &worn
		}
		updated[i] = item
	}
	return updated
}
