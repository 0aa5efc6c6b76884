package usecase

import (
	"context"
	"time"

	"skillboard/internal/pkg/oid"
)

// ReportCache is the read-through cache in front of the reporting queries.
// Implementations degrade to a miss when the backing store is unavailable.
type ReportCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func distributionCacheKey(jobID oid.ID) string {
	return "reports:jobs:" + jobID.String() + ":skills:distribution"
}

func teamStatsCacheKey(managerID oid.ID) string {
	return "reports:managers:" + managerID.String() + ":team-stats"
}
