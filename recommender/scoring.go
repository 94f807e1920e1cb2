package recommender

import (
	"time"

	"outfitapi/languageutil"
	"outfitapi/models"
)

const (
	// outerwear gets ColdOuterBonus below this temperature
	ColdOuterThreshold = 20.0
	ColdOuterBonus     = 10
	// shoes lose RainShoePenalty when the sky condition mentions rain
	RainShoePenalty = 5
	rainKeyword     = "rain"
)

// neverWorn stands in for a missing last worn date so day arithmetic stays uniform.
var neverWorn = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 24 * 60 * 60

// KeywordRule adds Bonus once when any keyword is found in the item name.
type KeywordRule struct {
	Keywords []string
	Bonus    int
}

// OccasionTable maps occasion -> category -> keyword rules.
type OccasionTable map[models.Occasion]map[models.Category][]KeywordRule

func DefaultOccasionTable() OccasionTable {
	return OccasionTable{
		models.OccasionWork: {
			models.CategoryTop:    {{Keywords: []string{"shirt", "blazer"}, Bonus: 8}},
			models.CategoryBottom: {{Keywords: []string{"chino", "trouser"}, Bonus: 5}},
			models.CategoryShoes:  {{Keywords: []string{"loafer", "boot"}, Bonus: 5}},
		},
		models.OccasionCasual: {
			models.CategoryTop:    {{Keywords: []string{"t-shirt", "polo"}, Bonus: 8}},
			models.CategoryBottom: {{Keywords: []string{"jean", "short"}, Bonus: 5}},
		},
	}
}

// Bonus returns the occasion bonus for an item with the given category and name.
func (t OccasionTable) Bonus(occasion models.Occasion, category models.Category, name string) int {
	bonus := 0
	for _, rule := range t[occasion][category] {
		if languageutil.ContainsAnyFold(name, rule.Keywords) {
			bonus += rule.Bonus
		}
	}
	return bonus
}

// DaysSince returns whole days from lastWorn to referenceDate, truncated toward zero.
func DaysSince(lastWorn *time.Time, referenceDate time.Time) int {
	last := neverWorn
	if lastWorn != nil {
		last = *lastWorn
	}
	return int((referenceDate.Unix() - last.Unix()) / secondsPerDay)
}

// Score rates how suitable an item is for today: higher means more likely to be picked.
func (r *Recommender) Score(item models.GarmentRecord, referenceDate time.Time, weather models.Weather, occasion models.Occasion) int {
	score := DaysSince(item.LastWornDate, referenceDate)

	if item.Category == models.CategoryOuter && weather.TemperatureCelsius < ColdOuterThreshold {
		score += ColdOuterBonus
	}
	if item.Category == models.CategoryShoes && languageutil.ContainsFold(weather.Condition, rainKeyword) {
		score -= RainShoePenalty
	}

	score += r.occasions.Bonus(occasion, item.Category, item.Name)
	return score
}

func (r *Recommender) scoreAll(wardrobe []models.GarmentRecord, referenceDate time.Time, weather models.Weather, occasion models.Occasion) []models.ScoredGarment {
	scored := make([]models.ScoredGarment, 0, len(wardrobe))
	for _, item := range wardrobe {
		scored = append(scored, models.ScoredGarment{
			GarmentRecord: item,
			Score:         r.Score(item, referenceDate, weather, occasion),
		})
	}
	return scored
}
