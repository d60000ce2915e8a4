package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"health-booking-api/config"
	"health-booking-api/internal/domain/entity"
	"health-booking-api/internal/infrastructure/cache"
	"health-booking-api/internal/infrastructure/database"
	"health-booking-api/internal/repository"
	"health-booking-api/internal/service"
	"health-booking-api/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
)

const doctorCount = 12

var specialties = []string{
	"Cardiology", "Dermatology", "General Medicine", "Pulmonology",
	"Gastroenterology", "Orthopedics", "Neurology", "Pediatrics",
	"Ophthalmology", "ENT",
}

var cities = []string{"Paris", "Lyon", "Marseille", "Toulouse", "Nice", "Virtual"}

// Seeds a demo data set: the configured default patient and doctor plus
// a batch of generated doctors with published availability grids.
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	log := logrus.StandardLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
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

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	groups := service.NewGroupDirectory(redisClient)
	grid := usecase.DefaultSlotGrid(time.Now().UTC())

	users := []*entity.User{
		demoUser(cfg.Auth.DefaultPatientID, entity.RolePatient, nil),
		demoUser(cfg.Auth.DefaultDoctorID, entity.RoleDoctor, &entity.DoctorProfile{
			Specialty:  "General Medicine",
			City:       "Virtual",
			AvailSlots: grid,
		}),
	}
	for i := 0; i < doctorCount; i++ {
		users = append(users, fakeDoctor(grid))
	}

	for _, user := range users {
		if err := userRepo.Upsert(ctx, user); err != nil {
			log.Fatalf("Failed to seed user %s: %v", user.UserID, err)
		}
		if err := groups.AddToGroup(ctx, user.Role, user.Email); err != nil {
			log.Warnf("Failed to assign %s to group %s: %v", user.Email, user.Role, err)
		}
		log.Infof("Seeded %s: %s", user.Role, user.UserID)
	}

	log.Infof("Seed complete: %d users", len(users))
}

func demoUser(id string, role entity.Role, profile *entity.DoctorProfile) *entity.User {
	lastName := "Patient"
	if role == entity.RoleDoctor {
		lastName = "Doctor"
	}
	return &entity.User{
		UserID:        id,
		Email:         id,
		Role:          role,
		FirstName:     "Demo",
		LastName:      lastName,
		DoctorProfile: profile,
		CreatedAt:     time.Now().UTC(),
	}
}

func fakeDoctor(grid []string) *entity.User {
	firstName := gofakeit.FirstName()
	lastName := gofakeit.LastName()
	email := fmt.Sprintf("dr.%s.%s@example.com",
		strings.ToLower(firstName), strings.ToLower(lastName))

	return &entity.User{
		UserID:    email,
		Email:     email,
		Role:      entity.RoleDoctor,
		FirstName: firstName,
		LastName:  lastName,
		DoctorProfile: &entity.DoctorProfile{
			Specialty:  gofakeit.RandomString(specialties),
			City:       gofakeit.RandomString(cities),
			AvailSlots: grid,
		},
		CreatedAt: time.Now().UTC(),
	}
}
