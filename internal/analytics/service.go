package analytics

import (
	"context"
	"time"

	"github.com/wichananm65/user-dashboard/internal/user"
)

// Lister is the read side of the record client.
type Lister interface {
	List(ctx context.Context) []user.User
}

// Service keeps the dashboard tab's own copy of the collection, separate
// from the list view's.
type Service struct {
	lister Lister
	users  *user.Collection
	loc    *time.Location
	now    func() time.Time
}

func NewService(lister Lister, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		lister: lister,
		users:  user.NewCollection(),
		loc:    loc,
		now:    time.Now,
	}
}

// Summary refetches the collection and recomputes every aggregate.
func (s *Service) Summary(ctx context.Context) Summary {
	s.users.Refresh(ctx, s.lister.List)
	return Summarize(s.users.Snapshot(), s.now(), s.loc)
}
