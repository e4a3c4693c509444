package video

import (
	"context"
	"fmt"

	"github.com/nijaru/video-api/errors"
	"github.com/nijaru/video-api/models"
	"github.com/nijaru/video-api/repository"
	"github.com/nijaru/video-api/validation"
	"github.com/sirupsen/logrus"
)

type Repository = repository.VideoRepository

type service struct {
	repo      Repository
	validator *validation.Validator
	logger    *logrus.Logger
}

func NewService(repo Repository, validator *validation.Validator, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

func (s *service) Get(ctx context.Context, id int64) (*models.Video, error) {
	return s.repo.Find(ctx, id)
}

func (s *service) List(ctx context.Context, page models.PageRequest) (*models.VideoPage, error) {
	const op = "VideoService.List"

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"operation": op,
		"page":      page.Page,
		"per_page":  page.PerPage,
		"total":     total,
		"returned":  len(items),
	}).Debug("Listed videos")

	return &models.VideoPage{
		Items:   items,
		Page:    page.Page,
		PerPage: page.PerPage,
		Total:   total,
		Pages:   models.PageCount(total, page.PerPage),
	}, nil
}

func (s *service) Create(ctx context.Context, id int64, payload []byte) (*models.Video, error) {
	const op = "VideoService.Create"

	if err := s.ensureAbsent(ctx, op, id); err != nil {
		return nil, err
	}

	input, err := s.validator.ValidateCreate(payload)
	if err != nil {
		return nil, err
	}

	video := input.ToVideo(id)
	// The primary key still guards against a concurrent create of the same id.
	if err := s.repo.Create(ctx, video); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"operation": op,
		"video_id":  id,
	}).Info("Video created")

	return video, nil
}

func (s *service) Update(ctx context.Context, id int64, payload []byte) (*models.Video, error) {
	const op = "VideoService.Update"

	existing, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := s.validator.ValidateUpdate(payload)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"operation": op,
		"video_id":  id,
	}).Info("Video updated")

	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	const op = "VideoService.Delete"

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"operation": op,
		"video_id":  id,
	}).Info("Video deleted")

	return nil
}

func (s *service) ensureAbsent(ctx context.Context, op string, id int64) error {
	_, err := s.repo.Find(ctx, id)
	switch {
	case err == nil:
		return errors.Conflict(op, nil, fmt.Sprintf("Video with ID %d already exists", id))
	case errors.IsNotFound(err):
		return nil
	default:
		return err
	}
}
