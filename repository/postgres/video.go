package postgres

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nijaru/video-api/errors"
	"github.com/nijaru/video-api/models"
	"github.com/nijaru/video-api/repository"
)

var _ repository.VideoRepository = (*Repository)(nil)

const (
	insertVideoSQL = "INSERT INTO videos (id, name, views, likes) VALUES ($1, $2, $3, $4)"
	getVideoSQL    = "SELECT id, name, views, likes FROM videos WHERE id = $1"
	listVideosSQL  = "SELECT id, name, views, likes FROM videos ORDER BY id ASC LIMIT $1 OFFSET $2"
	countVideosSQL = "SELECT COUNT(*) FROM videos"
	updateVideoSQL = "UPDATE videos SET name = COALESCE($2, name), views = COALESCE($3, views), likes = COALESCE($4, likes) WHERE id = $1 RETURNING id, name, views, likes"
	deleteVideoSQL = "DELETE FROM videos WHERE id = $1"
)

// Repository implements repository.VideoRepository on PostgreSQL.
type Repository struct {
	pool Pool
}

func NewRepository(pool Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Find(ctx context.Context, id int64) (*models.Video, error) {
	const op = "PostgresRepository.Find"

	var video models.Video
	err := r.pool.QueryRow(ctx, getVideoSQL, id).Scan(&video.ID, &video.Name, &video.Views, &video.Likes)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound(op, nil, fmt.Sprintf("Video with ID %d not found", id))
		}
		return nil, handlePostgreSQLError(err, op, id)
	}
	return &video, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	const op = "PostgresRepository.List"

	rows, err := r.pool.Query(ctx, listVideosSQL, limit, offset)
	if err != nil {
		return nil, handlePostgreSQLError(err, op, 0)
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		var video models.Video
		if err := rows.Scan(&video.ID, &video.Name, &video.Views, &video.Likes); err != nil {
			return nil, handlePostgreSQLError(err, op, 0)
		}
		videos = append(videos, &video)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgreSQLError(err, op, 0)
	}

	return videos, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	const op = "PostgresRepository.Count"

	var total int64
	if err := r.pool.QueryRow(ctx, countVideosSQL).Scan(&total); err != nil {
		return 0, handlePostgreSQLError(err, op, 0)
	}
	return int(total), nil
}

func (r *Repository) Create(ctx context.Context, video *models.Video) error {
	const op = "PostgresRepository.Create"

	_, err := r.pool.Exec(ctx, insertVideoSQL, video.ID, video.Name, video.Views, video.Likes)
	if err != nil {
		return handlePostgreSQLError(err, op, video.ID)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, id int64, patch models.VideoPatch) (*models.Video, error) {
	const op = "PostgresRepository.Update"

	var video models.Video
	err := r.pool.QueryRow(ctx, updateVideoSQL, id, patch.Name, patch.Views, patch.Likes).
		Scan(&video.ID, &video.Name, &video.Views, &video.Likes)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound(op, nil, fmt.Sprintf("Video with ID %d not found", id))
		}
		return nil, handlePostgreSQLError(err, op, id)
	}
	return &video, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	const op = "PostgresRepository.Delete"

	tag, err := r.pool.Exec(ctx, deleteVideoSQL, id)
	if err != nil {
		return handlePostgreSQLError(err, op, id)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound(op, nil, fmt.Sprintf("Video with ID %d not found", id))
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return errors.Internal("PostgresRepository.Ping", err, "Database unavailable")
	}
	return nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}
