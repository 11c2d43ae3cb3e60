package store

import (
	"context"
	"time"
)

// TimestampLayout is how createdAt is stamped: UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores draft as a new record and stamps createdAt.
func (s *Service) Create(ctx context.Context, draft Draft) (Record, error) {
	record := fromDraft(draft)
	record.CreatedAt = s.now().UTC().Format(TimestampLayout)
	return s.repo.Create(ctx, record)
}

// Update replaces every editable field. createdAt is kept from the stored
// record.
func (s *Service) Update(ctx context.Context, id string, draft Draft) (Record, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	record := fromDraft(draft)
	record.CreatedAt = current.CreatedAt
	return s.repo.Update(ctx, id, record)
}

func (s *Service) Delete(ctx context.Context, id string) (Record, error) {
	return s.repo.Delete(ctx, id)
}

func fromDraft(d Draft) Record {
	return Record{
		Name:     d.Name,
		Email:    d.Email,
		Avatar:   d.Avatar,
		Gender:   d.Gender,
		Location: d.Location,
		Age:      d.Age,
	}
}
