package store

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, record Record) (Record, error)
	Update(ctx context.Context, id string, record Record) (Record, error)
	Delete(ctx context.Context, id string) (Record, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	records []Record
	nextID  int
}

func NewInMemoryRepository(seed []Record) *InMemoryRepository {
	repo := &InMemoryRepository{
		records: make([]Record, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, record := range seed {
		repo.records = append(repo.records, record)
		if n, err := strconv.Atoi(record.ID); err == nil && n > maxID {
			maxID = n
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]Record, len(r.records))
	copy(records, r.records)
	return records, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}

	return Record{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, record Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = strconv.Itoa(r.nextID)
	r.nextID++

	r.records = append(r.records, record)
	return record, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, update Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, record := range r.records {
		if record.ID == id {
			update.ID = id
			r.records[i] = update
			return update, nil
		}
	}

	return Record{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, record := range r.records {
		if record.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return record, nil
		}
	}

	return Record{}, ErrNotFound
}
