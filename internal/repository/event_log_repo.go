package repository

import (
	"context"

	"northpole/wishhub/internal/model"
)

type EventLogRepository interface {
	Append(ctx context.Context, event *model.WishEvent) error
	ListRecent(ctx context.Context, limit int) ([]model.WishEvent, error)
}
