package repository

import (
	"context"
	"path/filepath"
	"time"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/repository"
	"slidemarket/pkg/errors"
)

type jsonFilePendingUploadRepository struct {
	collection *jsonCollection[entity.PendingUpload]
}

func NewJSONFilePendingUploadRepository(dataDir string) repository.PendingUploadRepository {
	return &jsonFilePendingUploadRepository{
		collection: newJSONCollection[entity.PendingUpload](filepath.Join(dataDir, "pending_uploads.json")),
	}
}

func (r *jsonFilePendingUploadRepository) Create(ctx context.Context, upload *entity.PendingUpload) error {
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now()
	}
	return r.collection.mutate(func(records []*entity.PendingUpload) ([]*entity.PendingUpload, error) {
		return append(records, upload), nil
	})
}

func (r *jsonFilePendingUploadRepository) Get(ctx context.Context, userID int64, slideID string) (*entity.PendingUpload, error) {
	var found *entity.PendingUpload
	err := r.collection.view(func(records []*entity.PendingUpload) error {
		for _, u := range records {
			if u.UserID == userID && u.SlideID == slideID {
				found = u
				return nil
			}
		}
		return errors.NotFound("Pending upload", nil)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *jsonFilePendingUploadRepository) Remove(ctx context.Context, userID int64, slideID string) (*entity.PendingUpload, error) {
	var removed *entity.PendingUpload
	err := r.collection.mutate(func(records []*entity.PendingUpload) ([]*entity.PendingUpload, error) {
		kept := records[:0]
		for _, u := range records {
			if u.UserID == userID && u.SlideID == slideID {
				removed = u
				continue
			}
			kept = append(kept, u)
		}
		if removed == nil {
			return nil, errors.NotFound("Pending upload", nil)
		}
		return kept, nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
