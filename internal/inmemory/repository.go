package inmemory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// ErrNotFound is returned when an operation addresses an identifier that is not in the collection.
var ErrNotFound = errors.New("not found")

// Entity is a record kind that can be stored in a Repository.
// WithEntityId returns a copy of the record carrying the given identifier.
type Entity[T any] interface {
	EntityId() int
	WithEntityId(id int) T
}

// Observer is notified after every repository operation.
type Observer interface {
	ObserveOperation(entity string, op Operation, elapsed time.Duration, err error)
}

type Config struct {
	Latency  Latency
	IdPolicy IdPolicy
	Observer Observer
}

// Repository is a process-local CRUD store over one collection of records.
// Mutations are serialized, and every returned value is a copy detached from the collection.
type Repository[T Entity[T]] struct {
	name     string
	latency  Latency
	policy   IdPolicy
	observer Observer
	order    func(a, b T) int

	mu      sync.RWMutex
	records []T
	// lastId is the highest identifier ever held by the collection.
	lastId int
}

// New creates a repository for the entity kind called name, seeded with the given records.
// Seed records must carry unique positive identifiers.
func New[T Entity[T]](name string, cfg Config, seed ...T) (*Repository[T], error) {
	latency := cfg.Latency
	if latency == nil {
		latency = NoLatency{}
	}
	policy := cfg.IdPolicy
	if policy == "" {
		policy = IdPolicyMonotonic
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%s repository: unknown id policy %q", name, policy)
	}

	records := make([]T, 0, len(seed))
	seen := make(map[int]struct{}, len(seed))
	lastId := 0
	for _, record := range seed {
		id := record.EntityId()
		if id <= 0 {
			return nil, fmt.Errorf("%s repository: seed record has invalid id %d", name, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s repository: duplicate seed id %d", name, id)
		}
		seen[id] = struct{}{}
		lastId = max(lastId, id)
		records = append(records, record)
	}

	return &Repository[T]{
		name:     name,
		latency:  latency,
		policy:   policy,
		observer: cfg.Observer,
		records:  records,
		lastId:   lastId,
	}, nil
}

// OrderBy makes List return records sorted by cmp. Records comparing equal keep collection order.
func (r *Repository[T]) OrderBy(cmp func(a, b T) int) *Repository[T] {
	r.order = cmp
	return r
}

func (r *Repository[T]) Name() string {
	return r.name
}

// Snapshot returns a copy of all records in collection order. It skips the simulated latency
// and is not reported to the observer.
func (r *Repository[T]) Snapshot() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyRecords()
}

func (r *Repository[T]) List(ctx context.Context) (records []T, err error) {
	defer r.observe(OpList, time.Now(), &err)
	if err = r.latency.Wait(ctx, OpList); err != nil {
		return nil, err
	}

	r.mu.RLock()
	records = r.copyRecords()
	r.mu.RUnlock()

	if r.order != nil {
		slices.SortStableFunc(records, r.order)
	}
	return records, nil
}

func (r *Repository[T]) Get(ctx context.Context, id int) (record T, err error) {
	defer r.observe(OpGet, time.Now(), &err)
	if err = r.latency.Wait(ctx, OpGet); err != nil {
		return record, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx == -1 {
		return record, r.notFound(id)
	}
	return r.records[idx], nil
}

// Create stores record under a freshly assigned identifier. Any identifier already set on record is ignored.
func (r *Repository[T]) Create(ctx context.Context, record T) (created T, err error) {
	defer r.observe(OpCreate, time.Now(), &err)
	if err = r.latency.Wait(ctx, OpCreate); err != nil {
		return created, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	created = record.WithEntityId(r.nextId())
	r.records = append(r.records, created)
	return created, nil
}

// Update applies mutate to a copy of the stored record and stores the result.
// The identifier is restored after mutate runs, so it can never be changed.
func (r *Repository[T]) Update(ctx context.Context, id int, mutate func(*T)) (updated T, err error) {
	defer r.observe(OpUpdate, time.Now(), &err)
	if err = r.latency.Wait(ctx, OpUpdate); err != nil {
		return updated, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx == -1 {
		return updated, r.notFound(id)
	}
	updated = r.records[idx]
	if mutate != nil {
		mutate(&updated)
	}
	updated = updated.WithEntityId(id)
	r.records[idx] = updated
	return updated, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int) (deleted bool, err error) {
	defer r.observe(OpDelete, time.Now(), &err)
	if err = r.latency.Wait(ctx, OpDelete); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx == -1 {
		return false, r.notFound(id)
	}
	r.records = slices.Delete(r.records, idx, idx+1)
	return true, nil
}

// Filter returns the records matching pred in collection order. A nil pred matches every record.
func (r *Repository[T]) Filter(ctx context.Context, pred func(T) bool) (records []T, err error) {
	defer r.observe(OpQuery, time.Now(), &err)
	if err = r.latency.Wait(ctx, OpQuery); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if pred == nil {
		return r.copyRecords(), nil
	}
	records = make([]T, 0)
	for _, record := range r.records {
		if pred(record) {
			records = append(records, record)
		}
	}
	return records, nil
}

// nextId must be called with the write lock held.
func (r *Repository[T]) nextId() int {
	highest := 0
	for _, record := range r.records {
		highest = max(highest, record.EntityId())
	}
	if r.policy == IdPolicyMonotonic {
		highest = max(highest, r.lastId)
	}
	r.lastId = max(r.lastId, highest+1)
	return highest + 1
}

func (r *Repository[T]) indexOf(id int) int {
	return slices.IndexFunc(r.records, func(record T) bool {
		return record.EntityId() == id
	})
}

func (r *Repository[T]) copyRecords() []T {
	records := make([]T, len(r.records))
	copy(records, r.records)
	return records
}

func (r *Repository[T]) notFound(id int) error {
	return fmt.Errorf("%s %d: %w", r.name, id, ErrNotFound)
}

func (r *Repository[T]) observe(op Operation, start time.Time, err *error) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveOperation(r.name, op, time.Since(start), *err)
}
