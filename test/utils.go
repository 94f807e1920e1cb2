package test

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"outfitapi/models"
	"outfitapi/services"

	"github.com/golang-jwt/jwt/v4"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString(services.JWTSecret())
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	req := NewJSONRequest(method, target, param)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateUserToken(userPk)))
	return req
}

// Date parses a YYYY-MM-DD day, panicking on malformed fixtures.
func Date(value string) *time.Time {
	day, err := time.Parse(models.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return &day
}

// Garment builds a wardrobe item; an empty lastWorn means never worn.
func Garment(id, name, category, color, lastWorn, image string) models.GarmentRecord {
	item := models.GarmentRecord{
		ID:             id,
		Name:           name,
		Category:       models.Category(category),
		Color:          color,
		ImageReference: services.StrPointer(image),
	}
	if lastWorn != "" {
		item.LastWornDate = Date(lastWorn)
	}
	return item
}

// FakeWardrobe is the sample wardrobe shipped with the mobile app.
func FakeWardrobe() []models.GarmentRecord {
	return []models.GarmentRecord{
		Garment("t1", "White Shirt", "top", "white", "2025-09-25", "img/white-shirt.jpg"),
		Garment("t2", "Black T-Shirt", "top", "black", "2025-09-22", "img/black-shirt.jpg"),
		Garment("t3", "Blue Polo", "top", "blue", "2025-09-18", "img/blue-polo.jpg"),
		Garment("t4", "Red Hoodie", "top", "red", "2025-09-15", "img/red-hoodie.jpg"),
		Garment("t5", "Green Sweater", "top", "green", "2025-09-10", "img/green-sweater.jpg"),
		Garment("t6", "Striped Shirt", "top", "white/blue", "2025-09-12", "img/striped-shirt.jpg"),
		Garment("t7", "Yellow Tank Top", "top", "yellow", "2025-09-08", "img/yellow-tank.png"),
		Garment("t8", "Grey Long Sleeve", "top", "grey", "2025-09-05", "img/grey-long-sleeve.jpg"),
		Garment("b1", "Blue Jeans", "bottom", "blue", "2025-09-20", "img/blue-jeans.jpg"),
		Garment("b2", "Black Chinos", "bottom", "black", "2025-09-17", "img/black-chinos.jpg"),
		Garment("b3", "Grey Sweatpants", "bottom", "grey", "2025-09-14", "img/gray-sweatpants.jpg"),
		Garment("b4", "Khaki Shorts", "bottom", "khaki", "2025-09-11", "img/khaki-shorts.jpg"),
		Garment("b5", "White Skirt", "bottom", "white", "2025-09-09", "img/white-skirt.jpg"),
		Garment("b6", "Red Leggings", "bottom", "red", "2025-09-07", "img/red-leggings.jpg"),
		Garment("b7", "Green Cargo Pants", "bottom", "green", "2025-09-06", "img/green-cargo.jpg"),
		Garment("b8", "Blue Denim Shorts", "bottom", "blue", "2025-09-04", "img/blue-denim-shorts.jpg"),
		Garment("o1", "Grey Jacket", "outer", "grey", "2025-09-21", "img/grey-jacket.jpg"),
		Garment("o2", "Black Blazer", "outer", "black", "2025-09-19", "img/black-blazer.jpg"),
		Garment("o3", "Blue Windbreaker", "outer", "blue", "2025-09-16", "img/blue-windbreaker.jpg"),
		Garment("o4", "Red Coat", "outer", "red", "2025-09-13", "img/red-coat.jpg"),
		Garment("o5", "Green Parka", "outer", "green", "2025-09-03", "img/green-parka.jpg"),
		Garment("o6", "White Cardigan", "outer", "white", "2025-09-02", "img/white-cardigan.jpg"),
		Garment("o7", "Black Leather Jacket", "outer", "black", "2025-09-01", "img/black-leather-jacket.jpg"),
		Garment("o8", "Blue Denim Jacket", "outer", "blue", "2025-08-31", "img/blue-denim-jacket.jpg"),
		Garment("s1", "Black Sneakers", "shoes", "black", "2025-09-24", "img/black-sneakers.jpg"),
		Garment("s2", "White Trainers", "shoes", "white", "2025-09-23", "img/white-trainers.jpg"),
		Garment("s3", "Brown Boots", "shoes", "brown", "2025-09-21", "img/brown-boots.jpg"),
		Garment("s4", "Red Heels", "shoes", "red", "2025-09-19", "img/red-heels.jpg"),
		Garment("s5", "Blue Loafers", "shoes", "blue", "2025-09-17", "img/blue-loafers.jpg"),
		Garment("s6", "Green Sandals", "shoes", "green", "2025-09-15", "img/green-sandals.jpg"),
		Garment("a1", "Black Bodybag", "accessories", "black", "2025-09-23", "img/black-bodybag.jpg"),
		Garment("a2", "Brown Bodybag", "accessories", "brown", "2025-09-20", "img/brown-bodybag.jpg"),
		Garment("a3", "Gray Fannypack", "accessories", "gray", "2025-09-18", "img/gray-fannypack.jpg"),
		Garment("a4", "Black Snapback Hat", "accessories", "black", "2025-09-16", "img/black-snapback-hat.jpg"),
		Garment("a5", "Brown Cowboy Hat", "accessories", "brown", "2025-09-14", "img/brown-cowboy-hat.jpg"),
		Garment("a6", "Camo Skullcap", "accessories", "camo", "2025-09-12", "img/camo-skullcap.jpg"),
		Garment("a7", "Gray Cap", "accessories", "gray", "2025-09-10", "img/gray-cap.jpg"),
		Garment("a8", "White Bucket Hat", "accessories", "white", "2025-09-08", "img/white-bucket-hat.jpg"),
		Garment("a9", "Dark Sunglasses", "accessories", "black", "2025-09-06", "img/dark-sunglasses.jpg"),
		Garment("a10", "Polarized Blue Sunglasses", "accessories", "blue", "2025-09-04", "img/polarized-blue-sunglasses.jpg"),
		Garment("a11", "White Smart Glasses", "accessories", "white", "2025-09-02", "img/white-smart-glasses.jpg"),
		Garment("a12", "Black Curb Chain Necklace", "accessories", "black", "2025-08-30", "img/black-curb-chain-necklace.jpg"),
		Garment("a13", "Black Pearl Pendant", "accessories", "black", "2025-08-28", "img/black-pearl-pendant.jpg"),
		Garment("a14", "Silver Arrowhead Necklace", "accessories", "silver", "2025-08-26", "img/silver-arrowhead-necklace.jpg"),
	}
}
