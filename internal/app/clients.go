package app

import (
	"fmt"

	"github.com/clintwin/clintwin-backend/internal/clients/phrasing"
	"github.com/clintwin/clintwin-backend/internal/clients/rediscache"
	"github.com/clintwin/clintwin-backend/internal/clients/vision"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

type Clients struct {
	Cache     rediscache.Cache
	RateStore rediscache.RateStore
	OCR       vision.TextExtractor
	Phrasing  *phrasing.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	cache, err := rediscache.New(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init cache: %w", err)
	}

	clients := Clients{
		Cache:     cache,
		RateStore: rediscache.NewRateStore(cache, log),
		OCR:       vision.NewTextExtractor(log),
	}
	if cfg.PhrasingEnabled {
		clients.Phrasing = phrasing.NewClient(log)
	}
	return clients, nil
}

func (c Clients) Close() {
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.OCR != nil {
		_ = c.OCR.Close()
	}
}
