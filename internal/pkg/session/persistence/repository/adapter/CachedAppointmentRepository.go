package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	cacheport "mindline/internal/infrastructure/cache/port"
	session "mindline/internal/pkg/session/application/domain"
	repository "mindline/internal/pkg/session/persistence/repository/port"
)

// CachedAppointmentRepository is a read-through cache in front of another
// AppointmentRepository. Every message send resolves the booking for its
// window check, so hot appointments are kept in Redis for a short TTL. The
// window has minutes-scale granularity; brief staleness is acceptable.
//
// A confirmed "not found" is not cached, so a booking created moments later
// becomes visible on the next lookup.
type CachedAppointmentRepository struct {
	inner repository.AppointmentRepository
	cache cacheport.Cache
	ttl   time.Duration
}

func NewCachedAppointmentRepository(inner repository.AppointmentRepository, cache cacheport.Cache, ttl time.Duration) *CachedAppointmentRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedAppointmentRepository{inner: inner, cache: cache, ttl: ttl}
}

var _ repository.AppointmentRepository = (*CachedAppointmentRepository)(nil)

func (r *CachedAppointmentRepository) FindByID(ctx context.Context, id string) (*session.Appointment, error) {
	key := cacheKey(id)

	if raw, err := r.cache.Get(ctx, key); err == nil {
		var a session.Appointment
		if err := json.Unmarshal([]byte(raw), &a); err == nil {
			return &a, nil
		}
		// Unreadable entry: drop it and fall through to the source of truth.
		_, _ = r.cache.Del(ctx, key)
	} else if !errors.Is(err, cacheport.ErrMiss) {
		// Cache transport errors degrade to a direct read.
		return r.inner.FindByID(ctx, id)
	}

	a, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(a); err == nil {
		_ = r.cache.Set(ctx, key, string(raw), r.ttl)
	}
	return a, nil
}

func cacheKey(id string) string {
	return "appointment:" + id
}
