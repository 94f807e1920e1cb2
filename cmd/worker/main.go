package main

import (
	"context"
	"log"
	"time"

	"outfitapi/recommender"
	"outfitapi/services"
	"outfitapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
)

func main() {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         services.GetEnv("SENTRY_DSN", ""),
		Environment: services.GetEnv("ENV", "local"),
		Release:     "outfitapi-worker@1.0.0",
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Flush(2 * time.Second)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: services.BrokerAddress()},
		asynq.Config{
			Concurrency: services.GetEnvInt("WORKER_CONCURRENCY", 10),
			Queues: map[string]int{
				services.OutfitQueue: 10,
			},
		},
	)

	outfitRecommender := recommender.New()
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeOutfitRecommendation, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleOutfitRecommendationTask(ctx, t, outfitRecommender)
	})

	log.Printf("[Queue] Worker listening on %s", services.OutfitQueue)
	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
