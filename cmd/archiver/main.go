package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-booking-api/config"
	"health-booking-api/internal/domain/entity"
	domainRepo "health-booking-api/internal/domain/repository"
	"health-booking-api/internal/infrastructure/cache"
	"health-booking-api/internal/infrastructure/database"
	"health-booking-api/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const readBlock = 5 * time.Second

// The archiver drains the appointment event stream into the durable
// archive table. Reads restart from the beginning on boot; the archive
// insert is idempotent on the stream entry ID, so replays are harmless.
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	log := logrus.StandardLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Events.BusName == "" {
		log.Fatal("APPOINTMENT_EVENT_BUS_NAME is required for the archiver")
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	archiveRepo := repository.NewEventArchiveRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infof("Archiver consuming stream %s", cfg.Events.BusName)

	lastID := "0"
	for {
		streams, err := redisClient.XRead(ctx, &redis.XReadArgs{
			Streams: []string{cfg.Events.BusName, lastID},
			Block:   readBlock,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Archiver shutting down")
				return
			}
			if err == redis.Nil {
				continue
			}
			log.Errorf("Failed to read stream: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				if err := archiveMessage(ctx, archiveRepo, message); err != nil {
					log.Errorf("Failed to archive event %s: %v", message.ID, err)
					continue
				}
				lastID = message.ID
			}
		}
	}
}

func archiveMessage(ctx context.Context, repo domainRepo.EventArchiveRepository, message redis.XMessage) error {
	eventType, _ := message.Values["detailType"].(string)

	payload := entity.JSONMap{}
	if detail, ok := message.Values["detail"].(string); ok {
		if err := json.Unmarshal([]byte(detail), &payload); err != nil {
			payload = entity.JSONMap{"raw": detail}
		}
	}

	return repo.Create(ctx, &entity.EventArchive{
		StreamID:  message.ID,
		EventType: eventType,
		Payload:   payload,
	})
}
