package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "mindline/internal/infrastructure/queue/port"
)

// TrackPageTaskType is the queue task name for recording API traffic.
const TrackPageTaskType = "analytics:track"

// TrackPageTaskPayload is one observed request. UserID is empty for
// unauthenticated traffic.
type TrackPageTaskPayload struct {
	UserID     string    `json:"userId,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	DurationMS int64     `json:"durationMs"`
	ObservedAt time.Time `json:"observedAt"`
}

// RegisterTrackPageTask binds the page-view writer to the worker server.
// Inserts are append-only; a retried task writes a duplicate row, which is
// acceptable for traffic counts.
func RegisterTrackPageTask(srv qport.Server, pool *pgxpool.Pool) {
	srv.Register(TrackPageTaskType, func(ctx context.Context, t qport.Task) error {
		var p TrackPageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		_, err := pool.Exec(ctx, `
			INSERT INTO analytics.page_view (user_id, method, path, status, duration_ms, observed_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			nullableID(p.UserID), p.Method, p.Path, p.Status, p.DurationMS, p.ObservedAt)
		return err
	})
}

func nullableID(s string) any {
	if s == "" {
		return nil
	}
	return s
}
