package app

import (
	"github.com/clintwin/clintwin-backend/internal/http/handlers"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

type Handlers struct {
	Akinator     *handlers.AkinatorHandler
	Medicines    *handlers.MedicinesHandler
	Interactions *handlers.InteractionsHandler
	Dosage       *handlers.DosageHandler
	Image        *handlers.ImageHandler
	History      *handlers.HistoryHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Akinator:     handlers.NewAkinatorHandler(services.Engine, log),
		Medicines:    handlers.NewMedicinesHandler(services.Medicines, log),
		Interactions: handlers.NewInteractionsHandler(services.Interactions, log),
		Dosage:       handlers.NewDosageHandler(services.Dosage, log),
		Image:        handlers.NewImageHandler(services.Image, log),
		History:      handlers.NewHistoryHandler(services.History, log),
	}
}
