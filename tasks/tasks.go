package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"outfitapi/models"
	"outfitapi/recommender"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
)

const TypeOutfitRecommendation = "outfit:recommend"

// OutfitRecommendationPayload carries everything needed to rebuild the outfit.
// ReferenceDate is fixed when the task is enqueued so retries yield the same result.
type OutfitRecommendationPayload struct {
	UserID        string                 `json:"user_id"`
	Wardrobe      []models.GarmentRecord `json:"wardrobe"`
	Weather       models.Weather         `json:"weather"`
	Occasion      models.Occasion        `json:"occasion"`
	ReferenceDate time.Time              `json:"reference_date"`
}

func NewOutfitRecommendationTask(payload OutfitRecommendationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOutfitRecommendation, data), nil
}

func ParseOutfitRecommendationPayload(data []byte) (OutfitRecommendationPayload, error) {
	var payload OutfitRecommendationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, fmt.Errorf("decode outfit payload: %w", err)
	}
	return payload, nil
}

func ParseOutfitRecommendationResult(data []byte) (models.OutfitResult, error) {
	var result models.OutfitResult
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode outfit result: %w", err)
	}
	return result, nil
}

// ComputeOutfitRecommendation runs the recommender for a task payload and returns
// the JSON encoded OutfitResult.
func ComputeOutfitRecommendation(data []byte, outfitRecommender *recommender.Recommender) ([]byte, error) {
	payload, err := ParseOutfitRecommendationPayload(data)
	if err != nil {
		// malformed payloads never succeed on retry
		return nil, fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	log.Printf("[Queue] Outfit for user %s: %d items, %s", payload.UserID, len(payload.Wardrobe), payload.Occasion)

	result := outfitRecommender.RecommendAt(payload.Wardrobe, payload.Weather, payload.Occasion, payload.ReferenceDate)
	return json.Marshal(result)
}

func HandleOutfitRecommendationTask(ctx context.Context, t *asynq.Task, outfitRecommender *recommender.Recommender) error {
	result, err := ComputeOutfitRecommendation(t.Payload(), outfitRecommender)
	if err != nil {
		sentry.CaptureException(err)
		return err
	}
	writer := t.ResultWriter()
	if writer == nil {
		return nil
	}
	if _, err := writer.Write(result); err != nil {
		sentry.CaptureException(fmt.Errorf("[Queue] failed to store outfit result for task %s: %w", writer.TaskID(), err))
		return err
	}
	return nil
}
