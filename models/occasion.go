package models

import (
	"time"

	"github.com/go-playground/validator"
)

// Occasion is free text; only the known values carry scoring bonuses.
type Occasion string

const (
	OccasionWork   Occasion = "Work"
	OccasionCasual Occasion = "Casual"
	OccasionParty  Occasion = "Party"
	OccasionDate   Occasion = "Date"
	OccasionSport  Occasion = "Sport"
)

func KnownOccasions() []Occasion {
	return []Occasion{OccasionWork, OccasionCasual, OccasionParty, OccasionDate, OccasionSport}
}

func (o Occasion) Emoji() string {
	switch o {
	case OccasionWork:
		return "💼"
	case OccasionCasual:
		return "👕"
	case OccasionParty:
		return "🎉"
	case OccasionDate:
		return "🌹"
	case OccasionSport:
		return "🏃"
	}
	return "✨"
}

// DateLayout is the calendar date format used for last worn dates on the wire.
const DateLayout = "2006-01-02"

func ValidateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
