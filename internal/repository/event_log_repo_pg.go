package repository

import (
	"context"

	"gorm.io/gorm"

	"northpole/wishhub/internal/model"
)

type pgEventLogRepository struct {
	db *gorm.DB
}

func NewPGEventLogRepository(db *gorm.DB) EventLogRepository {
	return &pgEventLogRepository{db: db}
}

func (r *pgEventLogRepository) Append(ctx context.Context, event *model.WishEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *pgEventLogRepository) ListRecent(ctx context.Context, limit int) ([]model.WishEvent, error) {
	var events []model.WishEvent
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
