package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	defaultModel       = "gemini-2.5-flash"
	defaultWorkerCount = 3
)

type Config struct {
	DBUrl        string
	RabbitMQUrl  string
	R2           R2Config
	GoogleApiKey string
	Model        string
	WorkerCount  int
	LogLevel     log.Level
}

// loadConfig reads the worker configuration through getenv, reporting every
// missing required variable at once.
func loadConfig(getenv func(string) string) (Config, error) {
	var missing []string
	required := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		DBUrl:       required("DB_URL"),
		RabbitMQUrl: required("RABBITMQ_URL"),
		R2: R2Config{
			AccountID: required("R2_ACCOUNT_ID"),
			Bucket:    required("R2_BUCKET"),
			AccessKey: required("R2_ACCESS_KEY"),
			SecretKey: required("R2_SECRET_KEY"),
		},
		GoogleApiKey: required("GOOGLE_API_KEY"),
		Model:        defaultModel,
		WorkerCount:  defaultWorkerCount,
		LogLevel:     log.InfoLevel,
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("empty %s in environment", strings.Join(missing, ", "))
	}

	if m := strings.TrimSpace(getenv("GEMINI_MODEL")); m != "" {
		cfg.Model = m
	}
	if n := strings.TrimSpace(getenv("WORKER_COUNT")); n != "" {
		count, err := strconv.Atoi(n)
		if err != nil || count < 1 {
			return Config{}, fmt.Errorf("invalid WORKER_COUNT %q", n)
		}
		cfg.WorkerCount = count
	}
	if l := strings.TrimSpace(getenv("LOG_LEVEL")); l != "" {
		level, err := log.ParseLevel(l)
		if err != nil {
			return Config{}, errors.Join(fmt.Errorf("invalid LOG_LEVEL %q", l), err)
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

func loadConfigFromEnv() (Config, error) {
	return loadConfig(os.Getenv)
}
