package video

import (
	"context"

	"github.com/nijaru/video-api/models"
)

type Service interface {
	// Get returns the video with the given id
	Get(ctx context.Context, id int64) (*models.Video, error)

	// List returns one page of videos ordered by id
	List(ctx context.Context, page models.PageRequest) (*models.VideoPage, error)

	// Create stores a new video under a client-chosen id. The payload is only
	// validated once the id is known to be free.
	Create(ctx context.Context, id int64, payload []byte) (*models.Video, error)

	// Update applies the fields present in payload to an existing video
	Update(ctx context.Context, id int64, payload []byte) (*models.Video, error)

	// Delete removes a video permanently
	Delete(ctx context.Context, id int64) error
}
