package repository

import (
	"context"

	"slidemarket/internal/domain/entity"
)

type PendingUploadRepository interface {
	Create(ctx context.Context, upload *entity.PendingUpload) error
	Get(ctx context.Context, userID int64, slideID string) (*entity.PendingUpload, error)
	// Remove deletes the pending upload and returns it. A second caller racing
	// on the same key gets NotFound, so a decision is applied at most once.
	Remove(ctx context.Context, userID int64, slideID string) (*entity.PendingUpload, error)
}
