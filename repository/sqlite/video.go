package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/nijaru/video-api/errors"
	"github.com/nijaru/video-api/models"
	"github.com/nijaru/video-api/repository"
)

var _ repository.VideoRepository = (*Repository)(nil)

type Repository struct {
	db         *sql.DB
	statements PreparedStatements
}

// NewRepository prepares the video statements against db. The repository takes
// ownership of db and closes it in Close.
func NewRepository(ctx context.Context, db *sql.DB) (*Repository, error) {
	r := &Repository{db: db}
	if err := r.statements.Prepare(ctx, db); err != nil {
		r.statements.Close()
		return nil, err
	}
	return r, nil
}

// Open is InitDB followed by NewRepository.
func Open(ctx context.Context, dbPath string, config DBConfig) (*Repository, error) {
	db, err := InitDB(dbPath, config)
	if err != nil {
		return nil, err
	}

	repo, err := NewRepository(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *Repository) Find(ctx context.Context, id int64) (*models.Video, error) {
	const op = "SQLiteRepository.Find"

	video, err := scanVideo(r.statements.get.QueryRowContext(ctx, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, fmt.Sprintf("Video with ID %d not found", id))
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query video")
	}
	return video, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	const op = "SQLiteRepository.List"

	rows, err := r.statements.list.QueryContext(ctx, limit, offset)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to list videos")
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, errors.Internal(op, err, "Failed to scan video row")
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Internal(op, err, "Failed to iterate video rows")
	}

	return videos, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	const op = "SQLiteRepository.Count"

	var total int
	if err := r.statements.count.QueryRowContext(ctx).Scan(&total); err != nil {
		return 0, errors.Internal(op, err, "Failed to count videos")
	}
	return total, nil
}

func (r *Repository) Create(ctx context.Context, video *models.Video) error {
	const op = "SQLiteRepository.Create"

	_, err := r.statements.insert.ExecContext(ctx,
		video.ID,
		video.Name,
		video.Views,
		video.Likes,
	)
	if err != nil {
		return translateError(op, err, video.ID)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, id int64, patch models.VideoPatch) (*models.Video, error) {
	const op = "SQLiteRepository.Update"

	var updated *models.Video
	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.StmtContext(ctx, r.statements.update).ExecContext(ctx,
			patch.Name,
			patch.Views,
			patch.Likes,
			id,
		)
		if err != nil {
			return translateError(op, err, id)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return errors.Internal(op, err, "Failed to read affected rows")
		}
		if affected == 0 {
			return errors.NotFound(op, nil, fmt.Sprintf("Video with ID %d not found", id))
		}

		updated, err = scanVideo(tx.StmtContext(ctx, r.statements.get).QueryRowContext(ctx, id))
		if err != nil {
			return errors.Internal(op, err, "Failed to reload video")
		}
		return nil
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, err
		}
		return nil, errors.Internal(op, err, "Failed to update video")
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	const op = "SQLiteRepository.Delete"

	res, err := r.statements.delete.ExecContext(ctx, id)
	if err != nil {
		return errors.Internal(op, err, "Failed to delete video")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Internal(op, err, "Failed to read affected rows")
	}
	if affected == 0 {
		return errors.NotFound(op, nil, fmt.Sprintf("Video with ID %d not found", id))
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return errors.Internal("SQLiteRepository.Ping", err, "Database unavailable")
	}
	return nil
}

func (r *Repository) Close() error {
	stmtErr := r.statements.Close()
	if err := r.db.Close(); err != nil {
		return err
	}
	return stmtErr
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(row scanner) (*models.Video, error) {
	video := &models.Video{}
	if err := row.Scan(&video.ID, &video.Name, &video.Views, &video.Likes); err != nil {
		return nil, err
	}
	return video, nil
}

// translateError maps SQLite constraint failures onto client-facing errors.
func translateError(op string, err error, id int64) error {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return errors.Conflict(op, err, fmt.Sprintf("Video with ID %d already exists", id))
		case sqlite3.ErrConstraintCheck:
			return errors.InvalidInput(op, err, "'views' and 'likes' must be non-negative integers")
		case sqlite3.ErrConstraintNotNull:
			return errors.InvalidInput(op, err, "Required field is missing")
		}
	}
	return errors.Internal(op, err, "Database operation failed")
}
