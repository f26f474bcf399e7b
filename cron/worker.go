// Package cron runs the periodic background jobs: weather refresh, weather
// event scanning, daily farmer summaries and notification cleanup.
package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"croppulse/config"
	userRepo "croppulse/database/repository/user"
	weatherRepo "croppulse/database/repository/weather"
	"croppulse/models"
	alertSvc "croppulse/services/alert"
	"croppulse/services/notification"
	weatherSvc "croppulse/services/weather"
	"croppulse/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Task type names.
const (
	TypeWeatherRefresh      = "weather:refresh"
	TypeAlertScan           = "alerts:scan"
	TypeDailySummary        = "summary:daily"
	TypeNotificationCleanup = "notifications:cleanup"
)

// readNotificationRetention is how long read notifications are kept.
const readNotificationRetention = 30 * 24 * time.Hour

// Deps carries everything the periodic jobs need.
type Deps struct {
	Weather    weatherSvc.WeatherService
	Alerts     alertSvc.AlertService
	Stations   weatherRepo.WeatherRepository
	Accounts   userRepo.AccountRepository
	NotifRepo  userRepo.NotificationRepository
	Dispatcher notification.Dispatcher
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitScheduler registers the periodic jobs and starts the scheduler in the
// background.
func InitScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{Location: time.UTC})

	entries := []struct {
		cronspec string
		taskType string
	}{
		{"0 * * * *", TypeWeatherRefresh},
		{"*/30 * * * *", TypeAlertScan},
		{"0 6 * * *", TypeDailySummary},
		{"0 2 * * 0", TypeNotificationCleanup},
	}
	for _, e := range entries {
		if _, err := scheduler.Register(e.cronspec, asynq.NewTask(e.taskType, nil)); err != nil {
			log.Fatalf("[Scheduler] failed to register %s: %v", e.taskType, err)
		}
	}

	go func() {
		log.Println("[Scheduler] starting periodic job scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[Scheduler] scheduler stopped: %v", err)
		}
	}()
}

// InitWorker runs the async worker in background.
func InitWorker(deps Deps) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeWeatherRefresh, handleWeatherRefresh(deps))
	mux.HandleFunc(TypeAlertScan, handleAlertScan(deps))
	mux.HandleFunc(TypeDailySummary, handleDailySummary(deps))
	mux.HandleFunc(TypeNotificationCleanup, handleNotificationCleanup(deps))

	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleWeatherRefresh(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		logger := utils.GetLogger()
		refreshed, err := deps.Weather.RefreshAll(ctx)
		if err != nil {
			logger.Error("weather refresh job failed", zap.Error(err))
			return err
		}
		logger.Info("weather refresh job done", zap.Int("stations", refreshed))
		return nil
	}
}

func handleAlertScan(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		logger := utils.GetLogger()
		if _, err := deps.Alerts.ExpireStale(ctx); err != nil {
			logger.Warn("stale alert expiry failed", zap.Error(err))
		}
		raised, err := deps.Alerts.ScanWeatherEvents(ctx)
		if err != nil {
			logger.Error("weather event scan failed", zap.Error(err))
			return err
		}
		logger.Info("weather event scan done", zap.Int("alerts_raised", raised))
		return nil
	}
}

// handleDailySummary pushes a morning weather summary to farmers in every
// county with a monitored station.
func handleDailySummary(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		logger := utils.GetLogger()

		stations, err := deps.Stations.ListActiveStations(ctx)
		if err != nil {
			return err
		}
		seen := map[string]bool{}
		for _, st := range stations {
			if seen[st.County] {
				continue
			}
			seen[st.County] = true

			forecasts, err := deps.Weather.Forecast(ctx, st.County, 1)
			if err != nil || len(forecasts) == 0 {
				logger.Warn("no forecast for daily summary", zap.String("county", st.County))
				continue
			}
			f := forecasts[0]
			body := fmt.Sprintf("Today in %s: %s, %.0f-%.0f°C, %d%% chance of rain.",
				st.County, f.Description, f.TempMin, f.TempMax, f.POP)

			farmers, err := deps.Accounts.ListActiveByRolesAndCounty(ctx,
				[]models.Role{models.RoleFarmer}, st.County)
			if err != nil {
				logger.Warn("could not list farmers for summary",
					zap.String("county", st.County), zap.Error(err))
				continue
			}
			if _, err := deps.Dispatcher.Dispatch(ctx, farmers, notification.Message{
				Type:     models.NotificationTypeSystem,
				Priority: models.PriorityLow,
				Title:    "Daily weather summary",
				Body:     body,
				Data:     map[string]any{"county": st.County},
			}); err != nil {
				logger.Warn("daily summary dispatch failed",
					zap.String("county", st.County), zap.Error(err))
			}
		}
		return nil
	}
}

func handleNotificationCleanup(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		logger := utils.GetLogger()
		cutoff := time.Now().UTC().Add(-readNotificationRetention)
		deleted, err := deps.NotifRepo.DeleteReadOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("notification cleanup failed", zap.Error(err))
			return err
		}
		logger.Info("notification cleanup done", zap.Int("deleted", deleted))
		return nil
	}
}
