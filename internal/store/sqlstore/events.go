package sqlstore

import (
	"context"
	"time"

	"clubhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStore struct{ db *gorm.DB }

func (s *EventStore) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.UpdatedAt = e.CreatedAt
	if err := s.db.WithContext(ctx).Create(newEventRow(e)).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *EventStore) List(ctx context.Context) ([]*domain.Event, error) {
	var rows []eventRow
	if err := s.db.WithContext(ctx).Order("date_time DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Event, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].event())
	}
	return out, nil
}
