package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyAirports       = "metadata:airports"
	keyFlights        = "metadata:flights"
	keyArrivalsPrefix = "arrivals:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func (r *cacheRepository) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	var airports []domain.Airport
	found, err := r.getJSON(ctx, keyAirports, &airports)
	if err != nil || !found {
		return nil, err
	}
	// пустой справочник тоже попадание в кеш
	if airports == nil {
		airports = []domain.Airport{}
	}
	return airports, nil
}

func (r *cacheRepository) SetAirports(ctx context.Context, airports []domain.Airport, ttl time.Duration) error {
	return r.setJSON(ctx, keyAirports, airports, ttl)
}

func (r *cacheRepository) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	found, err := r.getJSON(ctx, keyFlights, &flights)
	if err != nil || !found {
		return nil, err
	}
	if flights == nil {
		flights = []domain.Flight{}
	}
	return flights, nil
}

func (r *cacheRepository) SetFlights(ctx context.Context, flights []domain.Flight, ttl time.Duration) error {
	return r.setJSON(ctx, keyFlights, flights, ttl)
}

// GetArrivals получает табло прилётов из кеша, nil при промахе
func (r *cacheRepository) GetArrivals(ctx context.Context, airportCode string) (*domain.AirportArrivals, error) {
	var arrivals domain.AirportArrivals
	found, err := r.getJSON(ctx, keyArrivalsPrefix+airportCode, &arrivals)
	if err != nil || !found {
		return nil, err
	}
	return &arrivals, nil
}

func (r *cacheRepository) SetArrivals(ctx context.Context, arrivals *domain.AirportArrivals, ttl time.Duration) error {
	return r.setJSON(ctx, keyArrivalsPrefix+arrivals.AirportCode, arrivals, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return r.Set(ctx, key, data, ttl)
}
