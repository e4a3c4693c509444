package repository

import (
	"context"

	"github.com/nijaru/video-api/models"
)

// VideoRepository is the persistence contract for video records. Lists are
// ordered by ascending id so pagination is deterministic.
type VideoRepository interface {
	Find(ctx context.Context, id int64) (*models.Video, error)
	List(ctx context.Context, limit, offset int) ([]*models.Video, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, id int64, patch models.VideoPatch) (*models.Video, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}
