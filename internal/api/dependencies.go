package api

import (
	"time"

	"airnav/groundcheck/internal/common"
	"airnav/groundcheck/internal/config"
	"airnav/groundcheck/internal/db/repositories"
	"airnav/groundcheck/internal/logging"
	"airnav/groundcheck/internal/metrics"
	"airnav/groundcheck/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Repositories struct {
	GroundCheck *repositories.GroundCheckRepository
	Stats       *repositories.GroundCheckStatsRepository
}

type Services struct {
	GroundCheck  *services.GroundCheckService
	Export       *services.GroundCheckExportService
	DeleteTokens *common.DeleteTokenSigner
	TokenStore   common.TokenStore
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	Redis    *redis.Client
}

// InitDependencies wires repositories and services. Redis backs the used
// delete-token store when enabled; otherwise, or when Redis cannot be
// reached, tokens are tracked in process memory.
func InitDependencies(cfg *config.Config, pg *gorm.DB, sqlDB *sqlx.DB, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		GroundCheck: repositories.NewGroundCheckRepository(pg),
		Stats:       repositories.NewGroundCheckStatsRepository(sqlDB),
	}

	var (
		tokenStore  common.TokenStore
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		client, err := common.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory token store", "error", err)
			_ = client.Close()
		} else {
			redisClient = client
			tokenStore = common.NewRedisTokenStore(client)
		}
	}
	if tokenStore == nil {
		tokenStore = common.NewMemoryTokenStore(time.Minute)
	}

	groundCheckSvc := services.NewGroundCheckService(pg, repos.GroundCheck, repos.Stats, metricsReg)

	svcs := &Services{
		GroundCheck:  groundCheckSvc,
		Export:       services.NewGroundCheckExportService(groundCheckSvc),
		DeleteTokens: common.NewDeleteTokenSigner([]byte(cfg.Delete.Secret), cfg.Delete.TTL, tokenStore),
		TokenStore:   tokenStore,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		Redis:    redisClient,
	}, nil
}

// Close releases connections held by the dependencies.
func (d *Dependencies) Close() error {
	return d.Services.TokenStore.Close()
}
