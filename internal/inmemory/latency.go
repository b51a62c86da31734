package inmemory

import (
	"context"
	"time"
)

type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	// OpQuery covers filters and aggregations computed over the collection.
	OpQuery Operation = "query"
)

// Latency simulates the round trip to a remote service before an operation runs.
type Latency interface {
	Wait(ctx context.Context, op Operation) error
}

// NoLatency resolves immediately. Only a cancelled context makes it fail.
type NoLatency struct{}

func (NoLatency) Wait(ctx context.Context, _ Operation) error {
	return ctx.Err()
}

// Profile waits a fixed duration per operation. Operations missing from the profile do not wait.
type Profile map[Operation]time.Duration

// DefaultProfile mimics a remote budgeting API: reads are faster than writes.
func DefaultProfile() Profile {
	return Profile{
		OpList:   300 * time.Millisecond,
		OpGet:    200 * time.Millisecond,
		OpCreate: 400 * time.Millisecond,
		OpUpdate: 300 * time.Millisecond,
		OpDelete: 300 * time.Millisecond,
		OpQuery:  250 * time.Millisecond,
	}
}

func (p Profile) Wait(ctx context.Context, op Operation) error {
	d := p[op]
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
