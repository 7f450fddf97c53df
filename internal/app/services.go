package app

import (
	"gorm.io/gorm"

	"github.com/clintwin/clintwin-backend/internal/akinator"
	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/data/repos/history"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/services"
)

type Repos struct {
	Scans     history.ScanRepo
	Favorites history.FavoriteRepo
	Reminders history.ReminderRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Scans:     history.NewScanRepo(db, log),
		Favorites: history.NewFavoriteRepo(db, log),
		Reminders: history.NewReminderRepo(db, log),
	}
}

type Services struct {
	Catalog      *catalog.Store
	Interactions *services.InteractionService
	Medicines    *services.MedicineService
	Dosage       *services.DosageService
	Image        *services.ImageService
	History      *services.HistoryService
	Engine       *akinator.Engine
	Sessions     *akinator.MemoryStore
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, repos Repos) Services {
	log.Info("Wiring services...")

	cat := catalog.Load(cfg.MedicinesDBPath, log)
	interactions := catalog.LoadInteractions(cfg.InteractionsPath, log)
	attrs := akinator.LoadAttributes(cfg.AttributesPath, log)

	var phraser akinator.Phraser
	if clients.Phrasing != nil {
		phraser = clients.Phrasing
	}
	composer := akinator.NewComposer(attrs, phraser, log)
	sessions := akinator.NewMemoryStore(log)
	engine := akinator.NewEngine(cfg.Akinator, cat, attrs, composer, sessions, log)

	return Services{
		Catalog:      cat,
		Interactions: services.NewInteractionService(cat, interactions, log),
		Medicines:    services.NewMedicineService(cat, clients.Cache, log),
		Dosage:       services.NewDosageService(cat, log),
		Image:        services.NewImageService(cat, clients.OCR, log),
		History:      services.NewHistoryService(cat, repos.Scans, repos.Favorites, repos.Reminders, log),
		Engine:       engine,
		Sessions:     sessions,
	}
}
