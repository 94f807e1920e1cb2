package models

import (
	"github.com/go-playground/validator"
)

type Category string

const (
	CategoryTop         Category = "top"
	CategoryBottom      Category = "bottom"
	CategoryOuter       Category = "outer"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

// CoreSlots is the fixed slot order of an assembled outfit.
var CoreSlots = []Category{CategoryTop, CategoryBottom, CategoryShoes, CategoryOuter}

func (c Category) Known() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryOuter, CategoryShoes, CategoryAccessories:
		return true
	}
	return false
}

func ValidateCategory(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).Known()
}
