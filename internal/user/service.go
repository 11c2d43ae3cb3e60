package user

import (
	"context"
	"time"
)

// Store is the record client contract the views depend on.
type Store interface {
	Mutator
	List(ctx context.Context) []User
	Get(ctx context.Context, id string) *User
	Delete(ctx context.Context, id string) any
}

// Service holds the list view state shared by all requests: the cached
// collection plus the display settings.
type Service struct {
	store    Store
	users    *Collection
	loc      *time.Location
	pageSize int
}

func NewService(store Store, loc *time.Location, pageSize int) *Service {
	if loc == nil {
		loc = time.Local
	}
	if !validPageSize(pageSize) {
		pageSize = 10
	}
	return &Service{
		store:    store,
		users:    NewCollection(),
		loc:      loc,
		pageSize: pageSize,
	}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) PageSize() int {
	return s.pageSize
}

// Refresh refetches the whole collection.
func (s *Service) Refresh(ctx context.Context) {
	s.users.Refresh(ctx, s.store.List)
}

func (s *Service) Loading() bool {
	return s.users.Loading()
}

// List refetches and returns the requested page.
func (s *Service) List(ctx context.Context, q Query) Page {
	s.Refresh(ctx)
	return Apply(s.users.Snapshot(), q.Normalize(s.pageSize), s.loc)
}

// Find looks a record up in the cache first and falls back to the store.
func (s *Service) Find(ctx context.Context, id string) *User {
	if u, ok := s.users.Find(id); ok {
		return &u
	}
	return s.store.Get(ctx, id)
}

// Submit sends a touched form through the store and refetches afterwards.
func (s *Service) Submit(ctx context.Context, form *Form) (Outcome, error) {
	return form.Submit(ctx, s.store, s.Refresh)
}

// Delete removes id and refetches.
func (s *Service) Delete(ctx context.Context, id string) {
	s.store.Delete(ctx, id)
	s.Refresh(ctx)
}
