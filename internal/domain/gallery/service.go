package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/imaging"
	"github.com/petsalon/salon-api/internal/pkg/logger"
	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
	"github.com/petsalon/salon-api/internal/pkg/storage"
	"github.com/petsalon/salon-api/internal/pkg/validator"
)

var (
	ErrImageTooLarge   = apperror.Validation("Image exceeds maximum size of 10MB")
	ErrImageType       = apperror.Validation("Image must be JPEG, PNG or GIF")
	ErrImageEmpty      = apperror.Validation("Image is empty")
	ErrImageUnreadable = apperror.Validation("Image could not be processed")
	ErrStorageDisabled = errors.New("gallery: object storage is not configured")
)

// Service handles gallery business logic
type Service struct {
	repo      Repository
	storage   storage.Storage
	processor *imaging.Processor
}

// NewService creates gallery service. store may be nil when uploads are not needed.
func NewService(repo Repository, store storage.Storage, processor *imaging.Processor) *Service {
	if processor == nil {
		processor = imaging.NewProcessor(imaging.DefaultConfig())
	}
	return &Service{
		repo:      repo,
		storage:   store,
		processor: processor,
	}
}

// List returns active items, optionally of one category
func (s *Service) List(ctx context.Context, category *string) ([]ItemResponse, error) {
	items, err := s.repo.ListActive(ctx, category)
	if err != nil {
		return nil, err
	}

	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = it.ToResponse()
	}
	return resp, nil
}

// Add creates a gallery item. A non-nil image is normalised and uploaded first;
// the upload is removed again if the row cannot be stored.
func (s *Service) Add(ctx context.Context, req *AddRequest, image io.Reader) (int64, error) {
	if err := validator.Check(req); err != nil {
		return 0, err
	}

	log := logger.FromContext(ctx)

	item := &Item{
		Title:       req.Title,
		Description: sqltypes.NullString(req.Description),
		Category:    req.Category,
		Featured:    sqltypes.Flag(req.Featured),
	}

	var key string
	if image != nil {
		var err error
		key, err = s.upload(ctx, image)
		if err != nil {
			return 0, err
		}
		item.ImageURL = sqltypes.NullString(s.storage.GetURL(key))
	}

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		if key != "" {
			if delErr := s.storage.Delete(ctx, key); delErr != nil {
				log.Warn().Err(delErr).Str("key", key).Msg("Failed to remove orphaned gallery image")
			}
		}
		return 0, err
	}

	log.Info().
		Int64("gallery_id", id).
		Str("category", req.Category).
		Str("key", key).
		Msg("Gallery item added")
	return id, nil
}

func (s *Service) upload(ctx context.Context, image io.Reader) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	data, _, err := storage.ReadImage(image, storage.MaxImageSize)
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return "", ErrImageTooLarge
	case errors.Is(err, storage.ErrInvalidMimeType):
		return "", ErrImageType
	case errors.Is(err, storage.ErrEmptyFile):
		return "", ErrImageEmpty
	case err != nil:
		return "", err
	}

	processed, err := s.processor.Process(data)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("Gallery image rejected")
		return "", ErrImageUnreadable
	}

	key := "gallery/" + uuid.NewString() + processed.Ext
	if err := s.storage.Put(ctx, key, bytes.NewReader(processed.Data), processed.ContentType); err != nil {
		return "", fmt.Errorf("gallery: upload image: %w", err)
	}
	return key, nil
}
