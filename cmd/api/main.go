package main

import (
	"log"
	"time"

	"outfitapi/controllers"
	"outfitapi/recommender"
	"outfitapi/services"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	err := sentry.Init(sentry.ClientOptions{
		// An empty DSN disables event delivery.
		Dsn:              services.GetEnv("SENTRY_DSN", ""),
		Environment:      services.GetEnv("ENV", "local"),
		Release:          "outfitapi@1.0.0",
		Debug:            false,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	redisOpt := asynq.RedisClientOpt{Addr: services.BrokerAddress()}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()
	asynqInspector := asynq.NewInspector(redisOpt)
	defer asynqInspector.Close()

	e := controllers.SetupServer(recommender.New(), asynqClient, asynqInspector)
	e.Debug = services.GetEnv("ENV", "local") == "local"

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(3)))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	e.Logger.Fatal(e.Start(":" + services.GetEnv("PORT", "8083")))
}
