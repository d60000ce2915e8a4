package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Events  EventsConfig
	Predict PredictConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig selects the authorization policy for the whole process.
// DemoMode disables role enforcement and supplies default identities;
// it must never be enabled in production environments.
type AuthConfig struct {
	DemoMode         bool
	DefaultPatientID string
	DefaultDoctorID  string
}

// EventsConfig names the Redis stream used as the appointment event bus.
// An empty BusName degrades event emission to a logged warning.
type EventsConfig struct {
	BusName string
}

type PredictConfig struct {
	ModelURL string
	Timeout  time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine when everything comes from the
		// real environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "dev")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DEFAULT_PATIENT_ID", "patient.demo@example.com")
	viper.SetDefault("DEFAULT_DOCTOR_ID", "doctor.demo@example.com")

	predictTimeout, err := time.ParseDuration(viper.GetString("PREDICT_TIMEOUT"))
	if err != nil {
		predictTimeout = 15 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			DemoMode:         viper.GetBool("DEMO_MODE"),
			DefaultPatientID: viper.GetString("DEFAULT_PATIENT_ID"),
			DefaultDoctorID:  viper.GetString("DEFAULT_DOCTOR_ID"),
		},
		Events: EventsConfig{
			BusName: viper.GetString("APPOINTMENT_EVENT_BUS_NAME"),
		},
		Predict: PredictConfig{
			ModelURL: viper.GetString("PREDICT_MODEL_URL"),
			Timeout:  predictTimeout,
		},
	}

	return config, nil
}
