package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"outfitapi/models"
	"outfitapi/recommender"
	"outfitapi/services"
	"outfitapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// queued results stay readable for a day
const dailyOutfitRetention = 24 * time.Hour

// Request structs for validation
type GarmentIn struct {
	ID             string  `json:"id" validate:"required,max=64"`
	Name           string  `json:"name" validate:"max=100"`
	Category       string  `json:"category" validate:"required,category"` // top, bottom, outer, shoes, accessories
	Color          string  `json:"color" validate:"max=50"`
	LastWornDate   *string `json:"last_worn_date" validate:"omitempty,isodate"`
	ImageReference *string `json:"image_reference" validate:"omitempty,max=500"`
}

type WeatherIn struct {
	TemperatureCelsius *float64 `json:"temperature_celsius" validate:"required"`
	Condition          string   `json:"condition" validate:"max=100"`
}

type RecommendOutfitIn struct {
	Wardrobe []GarmentIn `json:"wardrobe" validate:"max=1000,dive"`
	Weather  *WeatherIn  `json:"weather" validate:"required"`
	Occasion string      `json:"occasion" validate:"required,max=50"`
}

type ExploreOutfitsIn struct {
	Wardrobe []GarmentIn `json:"wardrobe" validate:"max=1000,dive"`
	// defaults to the explore weather when omitted
	Weather   *WeatherIn `json:"weather" validate:"omitempty"`
	Occasions []string   `json:"occasions" validate:"max=20,dive,required,max=50"`
}

type AcceptOutfitIn struct {
	Wardrobe []GarmentIn `json:"wardrobe" validate:"max=1000,dive"`
	ItemIDs  []string    `json:"item_ids" validate:"required,min=1,dive,required"`
	WornOn   *string     `json:"worn_on" validate:"omitempty,isodate"`
}

// Response structs
type GarmentResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Color          string  `json:"color"`
	LastWornDate   *string `json:"last_worn_date"`
	ImageReference *string `json:"image_reference"`
}

type OutfitResponse struct {
	Items          []GarmentResponse `json:"items"`
	Reason         string            `json:"reason"`
	MainItemCount  int               `json:"main_item_count"`
	AccessoryCount int               `json:"accessory_count"`
	Limited        bool              `json:"limited"`
}

type OccasionOutfitResponse struct {
	Occasion string         `json:"occasion"`
	Outfit   OutfitResponse `json:"outfit"`
}

type OccasionResponse struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type WardrobeResponse struct {
	Wardrobe []GarmentResponse `json:"wardrobe"`
}

type DailyOutfitCreatedResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

type DailyOutfitStatusResponse struct {
	TaskID string          `json:"task_id"`
	Status string          `json:"status"` // pending, completed, failed
	Outfit *OutfitResponse `json:"outfit,omitempty"`
}

type OutfitController struct {
	Recommender    *recommender.Recommender
	AsynqClient    *asynq.Client
	AsynqInspector *asynq.Inspector
}

func (controller *OutfitController) OutfitRoutes(g *echo.Group) {
	g.GET("/occasions", controller.ListOccasions)
	g.POST("/recommend", controller.RecommendOutfit)
	g.POST("/explore", controller.ExploreOutfits)
	g.POST("/accept", controller.AcceptOutfit)
	g.POST("/daily", controller.CreateDailyOutfit)
	g.GET("/daily/:taskId", controller.GetDailyOutfit)
}

func (controller *OutfitController) ListOccasions(c echo.Context) error {
	occasions := []OccasionResponse{}
	for _, occasion := range models.KnownOccasions() {
		occasions = append(occasions, OccasionResponse{Name: string(occasion), Emoji: occasion.Emoji()})
	}
	return c.JSON(http.StatusOK, occasions)
}

func (controller *OutfitController) RecommendOutfit(c echo.Context) error {
	var req RecommendOutfitIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	wardrobe, err := toWardrobe(req.Wardrobe)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result := controller.Recommender.Recommend(wardrobe, req.Weather.toModel(), models.Occasion(req.Occasion))
	if result.Limited() {
		reportLimitedOutfit(c, result)
	}
	return c.JSON(http.StatusOK, toOutfitResponse(result))
}

func (controller *OutfitController) ExploreOutfits(c echo.Context) error {
	var req ExploreOutfitsIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	wardrobe, err := toWardrobe(req.Wardrobe)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	weather := recommender.ExploreWeather
	if req.Weather != nil {
		weather = req.Weather.toModel()
	}
	var occasions []models.Occasion
	for _, occasion := range req.Occasions {
		occasions = append(occasions, models.Occasion(occasion))
	}

	outfits := controller.Recommender.Explore(wardrobe, weather, occasions)
	response := make([]OccasionOutfitResponse, 0, len(outfits))
	for _, outfit := range outfits {
		response = append(response, OccasionOutfitResponse{
			Occasion: string(outfit.Occasion),
			Outfit:   toOutfitResponse(outfit.Outfit),
		})
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *OutfitController) AcceptOutfit(c echo.Context) error {
	var req AcceptOutfitIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	wardrobe, err := toWardrobe(req.Wardrobe)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	wornOn := controller.Recommender.Now()
	if req.WornOn != nil {
		day, err := time.Parse(models.DateLayout, *req.WornOn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "worn_on must be a YYYY-MM-DD date"})
		}
		wornOn = day
	}

	updated := recommender.MarkWorn(wardrobe, req.ItemIDs, wornOn)
	return c.JSON(http.StatusOK, WardrobeResponse{Wardrobe: toGarmentResponses(updated)})
}

func (controller *OutfitController) CreateDailyOutfit(c echo.Context) error {
	var req RecommendOutfitIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	userId, ok := c.Get("currentUser").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	if controller.AsynqClient == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"message": "Service is not available, please try again a bit later"})
	}
	wardrobe, err := toWardrobe(req.Wardrobe)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	task, err := tasks.NewOutfitRecommendationTask(tasks.OutfitRecommendationPayload{
		UserID:        userId,
		Wardrobe:      wardrobe,
		Weather:       req.Weather.toModel(),
		Occasion:      models.Occasion(req.Occasion),
		ReferenceDate: controller.Recommender.Now(),
	})
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not start outfit generation, please try again"})
	}
	info, err := controller.AsynqClient.Enqueue(task,
		asynq.MaxRetry(3),
		asynq.Queue(services.OutfitQueue),
		asynq.Retention(dailyOutfitRetention),
	)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not start outfit generation, please try again"})
	}
	log.Printf("[Queue] Outfit task submitted, User: %s Task ID: %s", userId, info.ID)

	return c.JSON(http.StatusCreated, DailyOutfitCreatedResponse{TaskID: info.ID, Status: "pending"})
}

func (controller *OutfitController) GetDailyOutfit(c echo.Context) error {
	userId, ok := c.Get("currentUser").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	if controller.AsynqInspector == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"message": "Service is not available, please try again a bit later"})
	}
	taskId := c.Param("taskId")

	info, err := controller.AsynqInspector.GetTaskInfo(services.OutfitQueue, taskId)
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Outfit not found"})
	}
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get outfit status"})
	}
	payload, err := tasks.ParseOutfitRecommendationPayload(info.Payload)
	if err != nil || payload.UserID != userId {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Outfit not found"})
	}

	return controller.dailyOutfitStatus(c, info)
}

func (controller *OutfitController) dailyOutfitStatus(c echo.Context, info *asynq.TaskInfo) error {
	switch info.State {
	case asynq.TaskStateCompleted:
		result, err := tasks.ParseOutfitRecommendationResult(info.Result)
		if err != nil {
			sentry.CaptureException(fmt.Errorf("[Queue] unreadable outfit result for task %s: %w", info.ID, err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to read outfit"})
		}
		outfit := toOutfitResponse(result)
		return c.JSON(http.StatusOK, DailyOutfitStatusResponse{TaskID: info.ID, Status: "completed", Outfit: &outfit})
	case asynq.TaskStateArchived:
		return c.JSON(http.StatusOK, DailyOutfitStatusResponse{TaskID: info.ID, Status: "failed"})
	default:
		return c.JSON(http.StatusAccepted, DailyOutfitStatusResponse{TaskID: info.ID, Status: "pending"})
	}
}

func reportLimitedOutfit(c echo.Context, result models.OutfitResult) {
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "outfit",
		Message:  fmt.Sprintf("Limited outfit with %d items: %s", len(result.Items), result.Reason),
		Level:    sentry.LevelWarning,
		Data:     map[string]interface{}{"user": c.Get("currentUser")},
	})
}

func (w *WeatherIn) toModel() models.Weather {
	weather := models.Weather{Condition: w.Condition}
	if w.TemperatureCelsius != nil {
		weather.TemperatureCelsius = *w.TemperatureCelsius
	}
	return weather
}

func toWardrobe(items []GarmentIn) ([]models.GarmentRecord, error) {
	wardrobe := make([]models.GarmentRecord, 0, len(items))
	for _, item := range items {
		garment := models.GarmentRecord{
			ID:             item.ID,
			Name:           item.Name,
			Category:       models.Category(item.Category),
			Color:          item.Color,
			ImageReference: item.ImageReference,
		}
		if item.LastWornDate != nil && *item.LastWornDate != "" {
			day, err := time.Parse(models.DateLayout, *item.LastWornDate)
			if err != nil {
				return nil, fmt.Errorf("item %s: last_worn_date must be a YYYY-MM-DD date", item.ID)
			}
			garment.LastWornDate = &day
		}
		wardrobe = append(wardrobe, garment)
	}
	return wardrobe, nil
}

func toGarmentResponses(items []models.GarmentRecord) []GarmentResponse {
	responses := make([]GarmentResponse, 0, len(items))
	for _, item := range items {
		response := GarmentResponse{
			ID:             item.ID,
			Name:           item.Name,
			Category:       string(item.Category),
			Color:          item.Color,
			ImageReference: item.ImageReference,
		}
		if item.LastWornDate != nil {
			response.LastWornDate = StrPointer(item.LastWornDate.Format(models.DateLayout))
		}
		responses = append(responses, response)
	}
	return responses
}

func toOutfitResponse(result models.OutfitResult) OutfitResponse {
	return OutfitResponse{
		Items:          toGarmentResponses(result.Items),
		Reason:         result.Reason,
		MainItemCount:  result.MainItemCount,
		AccessoryCount: result.AccessoryCount,
		Limited:        result.Limited(),
	}
}
