package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"outfitapi/models"
	"outfitapi/recommender"
	"outfitapi/test"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceDate = time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

func setupTestServer() *echo.Echo {
	outfitRecommender := recommender.NewWithTable(recommender.DefaultOccasionTable(), func() time.Time {
		return referenceDate
	})
	return SetupServer(outfitRecommender, nil, nil)
}

func wardrobeIn(items []models.GarmentRecord) []GarmentIn {
	var result []GarmentIn
	for _, item := range items {
		garment := GarmentIn{
			ID:             item.ID,
			Name:           item.Name,
			Category:       string(item.Category),
			Color:          item.Color,
			ImageReference: item.ImageReference,
		}
		if item.LastWornDate != nil {
			garment.LastWornDate = StrPointer(item.LastWornDate.Format(models.DateLayout))
		}
		result = append(result, garment)
	}
	return result
}

func responseIds(items []GarmentResponse) []string {
	var result []string
	for _, item := range items {
		result = append(result, item.ID)
	}
	return result
}

func TestHealthOk(t *testing.T) {
	e := setupTestServer()

	req := test.NewJSONRequest("GET", "/health", "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRecommendOutfitOk(t *testing.T) {
	e := setupTestServer()
	reqBody := RecommendOutfitIn{
		Wardrobe: wardrobeIn(test.FakeWardrobe()),
		Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(15), Condition: "Rain"},
		Occasion: "Work",
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/recommend", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "Expected status code 200 OK, got %d: %s", rec.Code, rec.Body.String())
	var response OutfitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []string{"t6", "b8", "s5", "o8", "a14", "a13"}, responseIds(response.Items))
	assert.Equal(t, "Suggested for Work • Rain, 15°C", response.Reason)
	assert.Equal(t, 4, response.MainItemCount)
	assert.Equal(t, 2, response.AccessoryCount)
	assert.False(t, response.Limited)

	top := response.Items[0]
	assert.Equal(t, "Striped Shirt", top.Name)
	assert.Equal(t, "top", top.Category)
	require.NotNil(t, top.LastWornDate)
	assert.Equal(t, "2025-09-12", *top.LastWornDate)
	require.NotNil(t, top.ImageReference)
	assert.Equal(t, "img/striped-shirt.jpg", *top.ImageReference)
}

func TestRecommendOutfitReason(t *testing.T) {
	e := setupTestServer()
	reqBody := RecommendOutfitIn{
		Wardrobe: wardrobeIn(test.FakeWardrobe()),
		Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(21.6), Condition: "Clear"},
		Occasion: "Casual",
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/recommend", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response OutfitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Suggested for Casual • Clear, 22°C", response.Reason)
}

func TestRecommendOutfitFreezingTemperatureIsValid(t *testing.T) {
	e := setupTestServer()
	reqBody := RecommendOutfitIn{
		Wardrobe: wardrobeIn(test.FakeWardrobe()),
		Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(0), Condition: "Snow"},
		Occasion: "Sport",
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/recommend", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response OutfitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Suggested for Sport • Snow, 0°C", response.Reason)
	assert.Equal(t, 4, response.MainItemCount)
}

func TestRecommendOutfitAccessoriesOnly(t *testing.T) {
	e := setupTestServer()
	reqBody := RecommendOutfitIn{
		Wardrobe: []GarmentIn{
			{ID: "a1", Name: "Gray Cap", Category: "accessories"},
			{ID: "a2", Name: "Dark Sunglasses", Category: "accessories", LastWornDate: StrPointer("2025-09-20")},
			{ID: "a3", Name: "Black Bodybag", Category: "accessories"},
		},
		Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(18), Condition: "Clouds"},
		Occasion: "Party",
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/recommend", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response OutfitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []string{"a1", "a3"}, responseIds(response.Items))
	assert.Equal(t, 0, response.MainItemCount)
	assert.True(t, response.Limited)
}

func TestRecommendOutfitEmptyWardrobe(t *testing.T) {
	e := setupTestServer()
	reqBody := RecommendOutfitIn{
		Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(18), Condition: "Clouds"},
		Occasion: "Date",
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/recommend", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []interface{}{}, response["items"])
	assert.Equal(t, "Suggested for Date • Clouds, 18°C", response["reason"])
}

func TestRecommendOutfitInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		body     RecommendOutfitIn
		contains string
	}{
		{
			name: "unknown category",
			body: RecommendOutfitIn{
				Wardrobe: []GarmentIn{{ID: "x1", Name: "Scarf", Category: "scarves"}},
				Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(10)},
				Occasion: "Work",
			},
			contains: "Category",
		},
		{
			name: "malformed last worn date",
			body: RecommendOutfitIn{
				Wardrobe: []GarmentIn{{ID: "t1", Name: "Tee", Category: "top", LastWornDate: StrPointer("25/09/2025")}},
				Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(10)},
				Occasion: "Work",
			},
			contains: "LastWornDate",
		},
		{
			name: "missing item id",
			body: RecommendOutfitIn{
				Wardrobe: []GarmentIn{{Name: "Tee", Category: "top"}},
				Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(10)},
				Occasion: "Work",
			},
			contains: "ID",
		},
		{
			name:     "missing weather",
			body:     RecommendOutfitIn{Occasion: "Work"},
			contains: "Weather",
		},
		{
			name:     "missing temperature",
			body:     RecommendOutfitIn{Weather: &WeatherIn{Condition: "Clear"}, Occasion: "Work"},
			contains: "TemperatureCelsius",
		},
		{
			name:     "missing occasion",
			body:     RecommendOutfitIn{Weather: &WeatherIn{TemperatureCelsius: Float64Pointer(10)}},
			contains: "Occasion",
		},
	}
	e := setupTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := test.NewJSONAuthRequest("POST", "/outfits/recommend", "42", tt.body)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var response map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Contains(t, response["error"], tt.contains)
		})
	}
}

func TestRecommendOutfitInvalidBody(t *testing.T) {
	e := setupTestServer()

	req := test.NewJSONAuthRequest("POST", "/outfits/recommend", "42", "not an object")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Invalid request body", response["error"])
}

func TestRecommendOutfitUnauthorized(t *testing.T) {
	e := setupTestServer()
	reqBody := RecommendOutfitIn{
		Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(18), Condition: "Clouds"},
		Occasion: "Work",
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/recommend", "", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Unauthorized", response["error"])
}

func TestListOccasionsOk(t *testing.T) {
	e := setupTestServer()

	req := test.NewJSONAuthRequest("GET", "/outfits/occasions", "42", "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response []OccasionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 5)
	assert.Equal(t, "Work", response[0].Name)
	assert.Equal(t, "Sport", response[4].Name)
	assert.NotEmpty(t, response[0].Emoji)
}

func TestExploreOutfitsDefaults(t *testing.T) {
	e := setupTestServer()
	reqBody := ExploreOutfitsIn{Wardrobe: wardrobeIn(test.FakeWardrobe())}

	req := test.NewJSONAuthRequest("POST", "/outfits/explore", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response []OccasionOutfitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 5)
	assert.Equal(t, "Casual", response[1].Occasion)
	assert.Equal(t, "Suggested for Casual • Clear, 22°C", response[1].Outfit.Reason)
	assert.Equal(t, []string{"t8", "b8", "s6", "o8", "a14", "a13"}, responseIds(response[1].Outfit.Items))
}

func TestExploreOutfitsCustomOccasions(t *testing.T) {
	e := setupTestServer()
	reqBody := ExploreOutfitsIn{
		Wardrobe:  wardrobeIn(test.FakeWardrobe()),
		Weather:   &WeatherIn{TemperatureCelsius: Float64Pointer(28), Condition: "Clear"},
		Occasions: []string{"Date", "Brunch"},
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/explore", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response []OccasionOutfitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "Brunch", response[1].Occasion)
	assert.Equal(t, "Suggested for Brunch • Clear, 28°C", response[1].Outfit.Reason)
	assert.Equal(t, 3, response[1].Outfit.MainItemCount)
}

func TestAcceptOutfitOk(t *testing.T) {
	e := setupTestServer()
	reqBody := AcceptOutfitIn{
		Wardrobe: []GarmentIn{
			{ID: "t1", Name: "White Shirt", Category: "top", LastWornDate: StrPointer("2025-09-25")},
			{ID: "b1", Name: "Blue Jeans", Category: "bottom"},
		},
		ItemIDs: []string{"b1"},
		WornOn:  StrPointer("2025-10-02"),
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/accept", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response WardrobeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Wardrobe, 2)
	assert.Equal(t, "2025-09-25", *response.Wardrobe[0].LastWornDate)
	assert.Equal(t, "2025-10-02", *response.Wardrobe[1].LastWornDate)
}

func TestAcceptOutfitDefaultsToToday(t *testing.T) {
	e := setupTestServer()
	reqBody := AcceptOutfitIn{
		Wardrobe: []GarmentIn{{ID: "b1", Name: "Blue Jeans", Category: "bottom"}},
		ItemIDs:  []string{"b1"},
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/accept", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response WardrobeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "2025-10-01", *response.Wardrobe[0].LastWornDate)
}

func TestAcceptOutfitRequiresItems(t *testing.T) {
	e := setupTestServer()
	reqBody := AcceptOutfitIn{
		Wardrobe: []GarmentIn{{ID: "b1", Name: "Blue Jeans", Category: "bottom"}},
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/accept", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "ItemIDs")
}

func TestDailyOutfitWithoutBroker(t *testing.T) {
	e := setupTestServer()
	reqBody := RecommendOutfitIn{
		Wardrobe: wardrobeIn(test.FakeWardrobe()),
		Weather:  &WeatherIn{TemperatureCelsius: Float64Pointer(15), Condition: "Rain"},
		Occasion: "Work",
	}

	req := test.NewJSONAuthRequest("POST", "/outfits/daily", "42", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	req = test.NewJSONAuthRequest("GET", "/outfits/daily/some-task", "42", "")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDailyOutfitValidatesBeforeQueueing(t *testing.T) {
	e := setupTestServer()

	req := test.NewJSONAuthRequest("POST", "/outfits/daily", "42", RecommendOutfitIn{Occasion: "Work"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
