package jobs

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/pkg/redis"
)

const bankCatalogCacheKey = "idrx:banks"

var (
	catalogRedisSet = redis.Set
)

type bankCatalogSource interface {
	GetBanks(ctx context.Context) ([]idrx.BankInfo, error)
}

// BankCatalogRefreshJob keeps the Redis bank-catalog cache warm so
// interactive requests rarely pay the provider round trip.
type BankCatalogRefreshJob struct {
	provider bankCatalogSource
	interval time.Duration
	cacheTTL time.Duration
	stop     chan struct{}
}

func NewBankCatalogRefreshJob(provider bankCatalogSource, interval time.Duration) *BankCatalogRefreshJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &BankCatalogRefreshJob{
		provider: provider,
		interval: interval,
		// outlive one missed refresh so a transient provider outage does
		// not empty the cache
		cacheTTL: 2 * interval,
		stop:     make(chan struct{}),
	}
}

func (j *BankCatalogRefreshJob) Start(ctx context.Context) {
	log.Println("Starting bank catalog refresh job...")

	j.refresh(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Bank catalog refresh job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("Bank catalog refresh job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *BankCatalogRefreshJob) Stop() {
	close(j.stop)
}

func (j *BankCatalogRefreshJob) refresh(ctx context.Context) {
	banks, err := j.provider.GetBanks(ctx)
	if err != nil {
		log.Printf("Error refreshing bank catalog: %v", err)
		return
	}

	payload, err := json.Marshal(banks)
	if err != nil {
		log.Printf("Error encoding bank catalog: %v", err)
		return
	}

	if err := catalogRedisSet(ctx, bankCatalogCacheKey, string(payload), j.cacheTTL); err != nil {
		log.Printf("Error caching bank catalog: %v", err)
		return
	}

	log.Printf("Refreshed bank catalog (%d banks)", len(banks))
}
