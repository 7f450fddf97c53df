package app

import (
	"time"

	"github.com/clintwin/clintwin-backend/internal/akinator"
	"github.com/clintwin/clintwin-backend/internal/platform/envutil"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

type Config struct {
	Port             string
	MedicinesDBPath  string
	InteractionsPath string
	AttributesPath   string
	PhrasingEnabled  bool
	SessionMaxIdle   time.Duration
	JanitorInterval  time.Duration
	Akinator         akinator.Config
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:             envutil.String("PORT", "8000"),
		MedicinesDBPath:  envutil.String("MEDICINES_DB_PATH", "data/medicines.json"),
		InteractionsPath: envutil.String("INTERACTIONS_DB_PATH", "data/interactions.json"),
		AttributesPath:   envutil.String("ATTRIBUTES_PATH", ""),
		PhrasingEnabled:  envutil.Bool("LLM_PHRASING_ENABLED", true),
		SessionMaxIdle:   time.Duration(envutil.Int("SESSION_MAX_IDLE_MINUTES", 30)) * time.Minute,
		JanitorInterval:  time.Duration(envutil.Int("SESSION_SWEEP_MINUTES", 5)) * time.Minute,
		Akinator:         akinator.ConfigFromEnv(),
	}
	log.Info("Configuration loaded",
		"port", cfg.Port,
		"medicines_db", cfg.MedicinesDBPath,
		"phrasing_enabled", cfg.PhrasingEnabled,
		"min_questions", cfg.Akinator.MinQuestions,
		"max_questions", cfg.Akinator.MaxQuestions,
	)
	return cfg
}
