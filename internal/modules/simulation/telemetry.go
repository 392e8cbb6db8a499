// README: Live telemetry store backed by Redis GEO and state snapshots.
package simulation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fleetsim/internal/types"
)

const (
	positionsGeoKey = "fleet:positions"
	stateKeyPrefix  = "fleet:driver:%s:state"
	// Snapshots expire quickly; a driver that stops publishing disappears
	// from the dashboard rather than showing a frozen ghost.
	stateTTL = time.Minute
)

type TelemetryStore struct {
	redis *redis.Client
}

func NewTelemetryStore(redis *redis.Client) *TelemetryStore {
	return &TelemetryStore{redis: redis}
}

func (t *TelemetryStore) Publish(ctx context.Context, st DriverState) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return err
	}
	pipe := t.redis.Pipeline()
	pipe.GeoAdd(ctx, positionsGeoKey, &redis.GeoLocation{
		Name:      string(st.DriverID),
		Longitude: st.Position.Lng,
		Latitude:  st.Position.Lat,
	})
	pipe.Set(ctx, stateKey(st.DriverID), payload, stateTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (t *TelemetryStore) Remove(ctx context.Context, driverID types.ID) error {
	pipe := t.redis.Pipeline()
	pipe.ZRem(ctx, positionsGeoKey, string(driverID))
	pipe.Del(ctx, stateKey(driverID))
	_, err := pipe.Exec(ctx)
	return err
}

// State returns the last published snapshot, and whether one exists.
func (t *TelemetryStore) State(ctx context.Context, driverID types.ID) (DriverState, bool, error) {
	val, err := t.redis.Get(ctx, stateKey(driverID)).Result()
	if err == redis.Nil {
		return DriverState{}, false, nil
	}
	if err != nil {
		return DriverState{}, false, err
	}
	var st DriverState
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return DriverState{}, false, err
	}
	return st, true, nil
}

// Nearby returns driver IDs within radiusKm of p, nearest first.
func (t *TelemetryStore) Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]types.ID, error) {
	results, err := t.redis.GeoSearch(ctx, positionsGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.Lng,
		Latitude:   p.Lat,
		Radius:     radiusKm,
		RadiusUnit: "km",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = types.ID(r)
	}
	return ids, nil
}

func stateKey(driverID types.ID) string {
	return fmt.Sprintf(stateKeyPrefix, string(driverID))
}
